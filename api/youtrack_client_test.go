package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"youtracktolinear/config"
	"youtracktolinear/models"
)

func newTestConfig(serverURL string, batchSize int) *config.Config {
	return &config.Config{
		YouTrackURL:       serverURL,
		YouTrackToken:     "test-token",
		YouTrackBatchSize: batchSize,
		YouTrackFields:    config.DefaultYouTrackFields,
	}
}

// issuesHandler はページング付きでイシュー一覧を返し、受け取ったリクエストを記録します
type issuesHandler struct {
	issues      []models.YouTrackIssue
	totalHeader bool

	mu      sync.Mutex
	skips   []string
	queries []string
	auths   []string
}

func (h *issuesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	h.mu.Lock()
	h.auths = append(h.auths, r.Header.Get("Authorization"))
	h.queries = append(h.queries, query.Get("query"))
	if query.Has("$skip") {
		h.skips = append(h.skips, query.Get("$skip"))
	}
	h.mu.Unlock()

	if h.totalHeader {
		w.Header().Set("X-YouTrack-TotalCount", strconv.Itoa(len(h.issues)))
	}

	// $skipなしは件数確認のリクエスト
	if !query.Has("$skip") {
		fmt.Fprint(w, "[]")
		return
	}

	skip, _ := strconv.Atoi(query.Get("$skip"))
	top, _ := strconv.Atoi(query.Get("$top"))

	end := skip + top
	if skip > len(h.issues) {
		skip = len(h.issues)
	}
	if end > len(h.issues) {
		end = len(h.issues)
	}
	_ = json.NewEncoder(w).Encode(h.issues[skip:end])
}

// Skips は受け取った$skipパラメータを受信順に返します
func (h *issuesHandler) Skips() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.skips...)
}

// Queries は受け取ったqueryパラメータを受信順に返します
func (h *issuesHandler) Queries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.queries...)
}

// Auths は受け取ったAuthorizationヘッダーを受信順に返します
func (h *issuesHandler) Auths() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.auths...)
}

func makeIssues(n int) []models.YouTrackIssue {
	issues := make([]models.YouTrackIssue, 0, n)
	for i := 1; i <= n; i++ {
		issues = append(issues, models.YouTrackIssue{
			IDReadable: fmt.Sprintf("PROJ-%d", i),
			Summary:    fmt.Sprintf("イシュー %d", i),
		})
	}
	return issues
}

func TestCheckAuth_Success(t *testing.T) {
	t.Parallel()

	authHeader := make(chan string, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/me", func(w http.ResponseWriter, r *http.Request) {
		authHeader <- r.Header.Get("Authorization")
		fmt.Fprint(w, `{"login":"alice","name":"Alice"}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewYouTrackClient(newTestConfig(server.URL, 100))
	require.NoError(t, client.CheckAuth())
	assert.Equal(t, "Bearer test-token", <-authHeader)
}

// プロファイル取得の権限がないトークンでもイシュー取得で認証を確認できる
func TestCheckAuth_FallsBackToIssues(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/me", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	mux.HandleFunc("/api/issues", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "[]")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewYouTrackClient(newTestConfig(server.URL, 100))
	assert.NoError(t, client.CheckAuth())
}

func TestCheckAuth_Unauthorized(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewYouTrackClient(newTestConfig(server.URL, 100))
	err := client.CheckAuth()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "認証に失敗しました")
}

func TestFetchIssues_SinglePage(t *testing.T) {
	t.Parallel()

	handler := &issuesHandler{issues: makeIssues(3), totalHeader: true}
	mux := http.NewServeMux()
	mux.Handle("/api/issues", handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewYouTrackClient(newTestConfig(server.URL, 100))
	issues, err := client.FetchIssues("")
	require.NoError(t, err)

	require.Len(t, issues, 3)
	assert.Equal(t, "PROJ-1", issues[0].IDReadable)
	assert.Equal(t, "PROJ-3", issues[2].IDReadable)
	assert.Equal(t, []string{"0"}, handler.Skips())
}

// バッチサイズより多いイシューを$skipをずらしながら順番に取得する
func TestFetchIssues_Pagination(t *testing.T) {
	t.Parallel()

	handler := &issuesHandler{issues: makeIssues(5), totalHeader: true}
	mux := http.NewServeMux()
	mux.Handle("/api/issues", handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewYouTrackClient(newTestConfig(server.URL, 2))
	issues, err := client.FetchIssues("")
	require.NoError(t, err)

	require.Len(t, issues, 5)
	for i, issue := range issues {
		assert.Equal(t, fmt.Sprintf("PROJ-%d", i+1), issue.IDReadable)
	}
	assert.Equal(t, []string{"0", "2", "4"}, handler.Skips())
}

// 件数ヘッダーがないサーバーでも空ページに達するまで取得を続ける
func TestFetchIssues_WithoutTotalCountHeader(t *testing.T) {
	t.Parallel()

	handler := &issuesHandler{issues: makeIssues(3), totalHeader: false}
	mux := http.NewServeMux()
	mux.Handle("/api/issues", handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewYouTrackClient(newTestConfig(server.URL, 2))
	issues, err := client.FetchIssues("")
	require.NoError(t, err)

	require.Len(t, issues, 3)
	assert.Equal(t, []string{"0", "2"}, handler.Skips())
}

func TestFetchIssues_NoResults(t *testing.T) {
	t.Parallel()

	handler := &issuesHandler{issues: nil, totalHeader: true}
	mux := http.NewServeMux()
	mux.Handle("/api/issues", handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewYouTrackClient(newTestConfig(server.URL, 100))
	issues, err := client.FetchIssues("")
	require.NoError(t, err)

	assert.Empty(t, issues)
	// 件数が0のためページ取得は行われない
	assert.Empty(t, handler.Skips())
}

func TestFetchIssues_SendsBearerTokenAndQuery(t *testing.T) {
	t.Parallel()

	handler := &issuesHandler{issues: makeIssues(1), totalHeader: true}
	mux := http.NewServeMux()
	mux.Handle("/api/issues", handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := newTestConfig(server.URL, 100)
	cfg.YouTrackProjectKey = "PROJ"
	client := NewYouTrackClient(cfg)

	_, err := client.FetchIssues("State: Open")
	require.NoError(t, err)

	auths := handler.Auths()
	require.NotEmpty(t, auths)
	for _, auth := range auths {
		assert.Equal(t, "Bearer test-token", auth)
	}
	for _, query := range handler.Queries() {
		assert.Equal(t, "project: {PROJ} and (State: Open)", query)
	}
}

func TestFetchIssues_ServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewYouTrackClient(newTestConfig(server.URL, 100))
	_, err := client.FetchIssues("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestFetchIssues_Forbidden(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewYouTrackClient(newTestConfig(server.URL, 100))
	_, err := client.FetchIssues("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "アクセスが拒否されました")
}

func TestCountIssues_HeaderMissing(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "[]")
	}))
	defer server.Close()

	client := NewYouTrackClient(newTestConfig(server.URL, 100))
	count, err := client.CountIssues("")
	require.NoError(t, err)
	assert.Equal(t, -1, count)
}

func TestCountIssues_HeaderUnparsable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-YouTrack-TotalCount", "たくさん")
		fmt.Fprint(w, "[]")
	}))
	defer server.Close()

	client := NewYouTrackClient(newTestConfig(server.URL, 100))
	count, err := client.CountIssues("")
	require.NoError(t, err)
	assert.Equal(t, -1, count)
}

func TestBuildQuery(t *testing.T) {
	t.Parallel()

	t.Run("プロジェクトキーのみ", func(t *testing.T) {
		t.Parallel()

		cfg := newTestConfig("http://example.com", 100)
		cfg.YouTrackProjectKey = "PROJ"
		client := NewYouTrackClient(cfg)
		assert.Equal(t, "project: {PROJ}", client.buildQuery(""))
	})

	t.Run("プロジェクトキーとクエリの組み合わせ", func(t *testing.T) {
		t.Parallel()

		cfg := newTestConfig("http://example.com", 100)
		cfg.YouTrackProjectKey = "PROJ"
		client := NewYouTrackClient(cfg)
		assert.Equal(t, "project: {PROJ} and (State: Open)", client.buildQuery("State: Open"))
	})

	t.Run("クエリのみ", func(t *testing.T) {
		t.Parallel()

		client := NewYouTrackClient(newTestConfig("http://example.com", 100))
		assert.Equal(t, "State: Open", client.buildQuery("State: Open"))
	})

	t.Run("どちらも指定なし", func(t *testing.T) {
		t.Parallel()

		client := NewYouTrackClient(newTestConfig("http://example.com", 100))
		assert.Equal(t, "", client.buildQuery(""))
	})
}
