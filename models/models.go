package models

// YouTrackUser はYouTrackのユーザー（報告者・担当者）を表します
type YouTrackUser struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// YouTrackNamedValue は名前のみを持つYouTrackの値（優先度・状態・タグ）を表します
type YouTrackNamedValue struct {
	Name string `json:"name,omitempty"`
}

// YouTrackIssue はYouTrack REST APIから取得したイシューを表します。
// created / updated / resolved はYouTrackの形式どおりエポックミリ秒です。
type YouTrackIssue struct {
	IDReadable  string               `json:"idReadable"`
	Summary     string               `json:"summary"`
	Description string               `json:"description,omitempty"`
	Created     int64                `json:"created,omitempty"`
	Updated     int64                `json:"updated,omitempty"`
	Resolved    int64                `json:"resolved,omitempty"`
	Reporter    *YouTrackUser        `json:"reporter,omitempty"`
	Assignee    *YouTrackUser        `json:"assignee,omitempty"`
	Priority    *YouTrackNamedValue  `json:"priority,omitempty"`
	State       *YouTrackNamedValue  `json:"state,omitempty"`
	Tags        []YouTrackNamedValue `json:"tags,omitempty"`
}

// LinearCSVHeaders はLinearインポート用CSVのヘッダーです。
// 列の順序と名前はLinearのインポート画面が期待する形式のため変更できません。
var LinearCSVHeaders = []string{
	"Title",
	"Description",
	"Created At",
	"Updated At",
	"Identifier",
	"Creator Email",
	"Assignee Email",
	"Priority",
	"State",
	"Labels",
}

// LinearRow はLinearインポート用CSVの1行を表します
type LinearRow struct {
	Title         string
	Description   string
	CreatedAt     string
	UpdatedAt     string
	Identifier    string
	CreatorEmail  string
	AssigneeEmail string
	Priority      string
	State         string
	Labels        string
}

// Fields はLinearCSVHeadersと同じ順序でフィールド値を返します
func (r LinearRow) Fields() []string {
	return []string{
		r.Title,
		r.Description,
		r.CreatedAt,
		r.UpdatedAt,
		r.Identifier,
		r.CreatorEmail,
		r.AssigneeEmail,
		r.Priority,
		r.State,
		r.Labels,
	}
}

// SkippedIssue は変換をスキップしたイシューの情報を表します
type SkippedIssue struct {
	// Index は中間ファイル内での位置（1始まり）です
	Index int
	// ID はイシューのID（不明な場合は空文字列）です
	ID string
	// Reason はスキップ理由です
	Reason string
}
