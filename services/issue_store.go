package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"youtracktolinear/config"
	"youtracktolinear/models"
	"youtracktolinear/utils"
)

// IssueStore はエクスポート済みイシューの中間JSONファイルを読み書きします。
// エクスポートと変換は別々に実行できるため、このファイルが両者の受け渡し点になります。
type IssueStore struct {
	config *config.Config
}

// NewIssueStore は新しいイシューストアを作成します
func NewIssueStore(cfg *config.Config) *IssueStore {
	return &IssueStore{config: cfg}
}

// SaveIssues はイシューを中間JSONファイルへ保存します。
// 出力ディレクトリが存在しない場合は作成し、既存のファイルは上書きします。
func (s *IssueStore) SaveIssues(issues []models.YouTrackIssue) error {
	if err := os.MkdirAll(filepath.Dir(s.config.IssuesJSON), 0755); err != nil {
		return fmt.Errorf("出力ディレクトリ作成エラー: %w", err)
	}

	// nilのままJSON化すると "null" になるため空配列に揃える
	if issues == nil {
		issues = []models.YouTrackIssue{}
	}

	data, err := json.MarshalIndent(issues, "", "  ")
	if err != nil {
		return fmt.Errorf("JSONエンコードエラー: %w", err)
	}

	if err := os.WriteFile(s.config.IssuesJSON, data, 0644); err != nil {
		return fmt.Errorf("中間ファイル書き込みエラー: %w", err)
	}

	utils.LogInfo("%d 件のイシューを %s に保存しました", len(issues), s.config.IssuesJSON)
	return nil
}

// LoadIssues は中間JSONファイルからイシューを読み込みます。
// ファイルが存在しない場合は、先にエクスポートを実行するよう案内するエラーを返します。
func (s *IssueStore) LoadIssues() ([]models.YouTrackIssue, error) {
	data, err := os.ReadFile(s.config.IssuesJSON)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("中間ファイルが見つかりません: %s (先に issue_export を実行してください)", s.config.IssuesJSON)
		}
		return nil, fmt.Errorf("中間ファイル読み込みエラー: %w", err)
	}

	var issues []models.YouTrackIssue
	if err := json.Unmarshal(data, &issues); err != nil {
		return nil, fmt.Errorf("中間ファイル解析エラー: %w", err)
	}

	utils.LogInfo("%s から %d 件のイシューを読み込みました", s.config.IssuesJSON, len(issues))
	return issues, nil
}
