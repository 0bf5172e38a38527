package services

import (
	"fmt"
	"strings"

	"youtracktolinear/config"
	"youtracktolinear/models"
	"youtracktolinear/utils"
)

// Transformer はYouTrackイシューをLinearインポート用の行へ変換します。
// ユーザーやステータスの照合を行わない最小マッピングのため、
// タイトルと説明以外の列は設定されたデフォルトのState以外すべて空になります。
type Transformer struct {
	config *config.Config
}

// NewTransformer は新しいトランスフォーマーを作成します
func NewTransformer(cfg *config.Config) *Transformer {
	return &Transformer{config: cfg}
}

// CleanDescription は説明文のYouTrackマークアップをMarkdownへ整形します
func (t *Transformer) CleanDescription(description string) string {
	return ConvertMarkup(description)
}

// TransformIssue は1件のYouTrackイシューをLinearの行へ変換します。
// タイトルは summary を優先し、空の場合は idReadable で代替します。
// どちらも空のときのみエラーを返します。
func (t *Transformer) TransformIssue(issue models.YouTrackIssue) (models.LinearRow, error) {
	title := strings.TrimSpace(issue.Summary)
	if title == "" {
		title = strings.TrimSpace(issue.IDReadable)
	}
	if title == "" {
		return models.LinearRow{}, fmt.Errorf("タイトルに使える値がありません (summary と idReadable が両方とも空)")
	}

	return models.LinearRow{
		Title:       title,
		Description: t.CleanDescription(issue.Description),
		State:       t.config.LinearDefaultState,
	}, nil
}

// TransformIssues は複数のイシューをまとめて変換します。
// 変換できないイシューは警告を出してスキップし、残りの処理を継続します。
// 戻り値は変換済みの行と、スキップしたイシューの一覧です。
func (t *Transformer) TransformIssues(issues []models.YouTrackIssue) ([]models.LinearRow, []models.SkippedIssue) {
	utils.LogInfo("%d 件のイシューを変換します", len(issues))

	rows := make([]models.LinearRow, 0, len(issues))
	skipped := make([]models.SkippedIssue, 0)

	for i, issue := range issues {
		row, err := t.TransformIssue(issue)
		if err != nil {
			label := issue.IDReadable
			if label == "" {
				label = "(ID不明)"
			}
			utils.LogWarn("イシューをスキップします (位置 %d, %s): %v", i+1, label, err)
			skipped = append(skipped, models.SkippedIssue{
				Index:  i + 1,
				ID:     issue.IDReadable,
				Reason: err.Error(),
			})
			continue
		}
		rows = append(rows, row)
	}

	utils.LogInfo("変換完了: %d 行 (スキップ %d 件)", len(rows), len(skipped))
	return rows, skipped
}
