package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"youtracktolinear/config"
	"youtracktolinear/models"
	"youtracktolinear/utils"
)

// YouTrackClient はYouTrack REST APIクライアントです
type YouTrackClient struct {
	config *config.Config
	client *http.Client
}

// NewYouTrackClient は新しいYouTrackクライアントを作成します
func NewYouTrackClient(cfg *config.Config) *YouTrackClient {
	return &YouTrackClient{
		config: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// get はYouTrack APIへGETリクエストを送り、レスポンスボディとヘッダーを返します
func (y *YouTrackClient) get(endpoint string, params url.Values) ([]byte, http.Header, error) {
	apiURL := fmt.Sprintf("%s/api%s", y.config.YouTrackURL, endpoint)
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	req, err := http.NewRequest("GET", apiURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("リクエスト作成エラー: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+y.config.YouTrackToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("リクエスト送信エラー: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("レスポンス読み取りエラー: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, nil, fmt.Errorf("認証に失敗しました。APIトークンを確認してください")
	case resp.StatusCode == http.StatusForbidden:
		return nil, nil, fmt.Errorf("アクセスが拒否されました。トークンの権限を確認してください")
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil, fmt.Errorf("リソースが見つかりません: %s", endpoint)
	case resp.StatusCode != http.StatusOK:
		return nil, nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	return body, resp.Header, nil
}

// CheckAuth はYouTrack APIの認証を確認します。
// まずユーザープロファイルで確認し、トークンの権限が足りない場合は
// イシューの取得を試します。
func (y *YouTrackClient) CheckAuth() error {
	params := url.Values{}
	params.Set("fields", "login,name")

	body, _, err := y.get("/users/me", params)
	if err == nil {
		var user struct {
			Login string `json:"login"`
		}
		if jsonErr := json.Unmarshal(body, &user); jsonErr == nil && user.Login != "" {
			utils.LogInfo("YouTrackに接続しました (ユーザー: %s)", user.Login)
		} else {
			utils.LogInfo("YouTrackに接続しました")
		}
		return nil
	}
	utils.LogDebug("ユーザープロファイルの取得に失敗したためイシュー取得で確認します: %v", err)

	fallback := url.Values{}
	fallback.Set("$top", "1")
	fallback.Set("fields", "idReadable")
	if _, _, err := y.get("/issues", fallback); err != nil {
		return fmt.Errorf("認証確認エラー: %w", err)
	}

	utils.LogInfo("YouTrackに接続しました (イシュー取得権限を確認)")
	return nil
}

// CountIssues は条件に一致するイシューの総数を取得します。
// X-YouTrack-TotalCountヘッダーが無い場合は -1 を返します。
// 件数が不明でもページングは空ページに達するまで継続できます。
func (y *YouTrackClient) CountIssues(query string) (int, error) {
	params := url.Values{}
	params.Set("$top", "1")
	if query != "" {
		params.Set("query", query)
	}

	_, header, err := y.get("/issues", params)
	if err != nil {
		return 0, err
	}

	total := header.Get("X-YouTrack-TotalCount")
	if total == "" {
		return -1, nil
	}
	count, err := strconv.Atoi(total)
	if err != nil {
		utils.LogDebug("X-YouTrack-TotalCountヘッダーを解釈できません: %q", total)
		return -1, nil
	}
	return count, nil
}

// buildQuery は設定のプロジェクトキーと指定されたクエリを組み合わせます
func (y *YouTrackClient) buildQuery(query string) string {
	key := y.config.YouTrackProjectKey
	switch {
	case key != "" && query == "":
		return fmt.Sprintf("project: {%s}", key)
	case key != "" && query != "":
		return fmt.Sprintf("project: {%s} and (%s)", key, query)
	default:
		return query
	}
}

// fetchPage は指定位置から1ページ分のイシューを取得します
func (y *YouTrackClient) fetchPage(query string, skip int) ([]models.YouTrackIssue, error) {
	params := url.Values{}
	params.Set("fields", y.config.YouTrackFields)
	params.Set("$top", strconv.Itoa(y.config.YouTrackBatchSize))
	params.Set("$skip", strconv.Itoa(skip))
	if query != "" {
		params.Set("query", query)
	}

	body, _, err := y.get("/issues", params)
	if err != nil {
		return nil, err
	}

	var issues []models.YouTrackIssue
	if err := json.Unmarshal(body, &issues); err != nil {
		return nil, fmt.Errorf("レスポンス解析エラー: %w", err)
	}
	return issues, nil
}

// FetchIssues は条件に一致するすべてのイシューをページング取得します。
// プロジェクトキーが設定されている場合はクエリに組み込みます。
// ページは順番に取得し、取得した順序のまま返します。
func (y *YouTrackClient) FetchIssues(query string) ([]models.YouTrackIssue, error) {
	composed := y.buildQuery(query)
	if composed != "" {
		utils.LogInfo("検索クエリ: %s", composed)
	}

	total, err := y.CountIssues(composed)
	if err != nil {
		return nil, err
	}
	if total >= 0 {
		utils.LogInfo("エクスポート対象: %d 件", total)
	} else {
		utils.LogInfo("イシューの総数が取得できないため、空ページに達するまで取得を続けます")
	}

	issues := make([]models.YouTrackIssue, 0)
	skip := 0
	for total < 0 || len(issues) < total {
		page, err := y.fetchPage(composed, skip)
		if err != nil {
			return nil, fmt.Errorf("イシュー取得エラー ($skip=%d): %w", skip, err)
		}
		if len(page) == 0 {
			break
		}

		issues = append(issues, page...)
		skip += len(page)
		utils.LogDebug("ページ取得: %d 件 (累計 %d 件)", len(page), len(issues))

		// バッチサイズ未満のページは最終ページとみなす
		if len(page) < y.config.YouTrackBatchSize {
			break
		}
	}

	utils.LogInfo("%d 件のイシューを取得しました", len(issues))
	return issues, nil
}
