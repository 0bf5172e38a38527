package services

import (
	"fmt"
	"time"

	"youtracktolinear/api"
	"youtracktolinear/config"
	"youtracktolinear/utils"
)

// MigrationService はYouTrackからLinearへの移行処理全体を統括します。
// エクスポート（YouTrack → 中間JSON）と変換（中間JSON → Linear CSV）の
// 2段階を個別にも連続でも実行できます。
type MigrationService struct {
	config         *config.Config
	youtrackClient *api.YouTrackClient
	issueStore     *IssueStore
	transformer    *Transformer
	csvWriter      *LinearCSVWriter
}

// NewMigrationService は新しい移行サービスを作成します
func NewMigrationService(cfg *config.Config, youtrackClient *api.YouTrackClient) *MigrationService {
	return &MigrationService{
		config:         cfg,
		youtrackClient: youtrackClient,
		issueStore:     NewIssueStore(cfg),
		transformer:    NewTransformer(cfg),
		csvWriter:      NewLinearCSVWriter(cfg),
	}
}

// ExportIssues はYouTrackからイシューを取得し、中間JSONファイルへ保存します。
// 戻り値はエクスポートした件数です。
func (m *MigrationService) ExportIssues(query string) (int, error) {
	startTime := time.Now()
	defer utils.TrackTime(startTime, "イシューエクスポート")

	issues, err := m.youtrackClient.FetchIssues(query)
	if err != nil {
		return 0, fmt.Errorf("YouTrackイシュー取得エラー: %w", err)
	}

	if err := m.issueStore.SaveIssues(issues); err != nil {
		return 0, err
	}

	return len(issues), nil
}

// TransformIssues は中間JSONファイルを読み込み、Linearインポート用CSVを書き出します。
// CSVの書き出しは全件の変換が終わってから行うため、途中でエラーになっても
// 不完全なCSVファイルは残りません。戻り値は出力行数とスキップ件数です。
func (m *MigrationService) TransformIssues() (int, int, error) {
	startTime := time.Now()
	defer utils.TrackTime(startTime, "CSV変換")

	issues, err := m.issueStore.LoadIssues()
	if err != nil {
		return 0, 0, err
	}

	rows, skipped := m.transformer.TransformIssues(issues)

	if err := m.csvWriter.WriteLinearCSV(rows); err != nil {
		return 0, 0, err
	}

	LogImportSteps(m.config)
	return len(rows), len(skipped), nil
}

// RunMigration は移行処理を実行します。
// exportOnly はエクスポートのみ、transformOnly は変換のみを実行します。
// query はYouTrackの検索クエリで、プロジェクトキーとは別に絞り込みを追加します。
func (m *MigrationService) RunMigration(exportOnly, transformOnly bool, query string) error {
	startTime := time.Now()
	defer utils.TrackTime(startTime, "移行処理全体")

	if !transformOnly {
		if err := m.youtrackClient.CheckAuth(); err != nil {
			return fmt.Errorf("YouTrack認証エラー: %w", err)
		}

		count, err := m.ExportIssues(query)
		if err != nil {
			return err
		}
		utils.LogInfo("エクスポート完了: %d 件", count)
	}

	if exportOnly {
		return nil
	}

	written, skippedCount, err := m.TransformIssues()
	if err != nil {
		return err
	}
	utils.LogInfo("移行処理が完了しました: 出力 %d 行、スキップ %d 件", written, skippedCount)
	return nil
}

// LogImportSteps はLinearへ手動インポートする残りの手順を表示します
func LogImportSteps(cfg *config.Config) {
	utils.LogInfo("次の手順:")
	utils.LogInfo("  1. Linear の Settings → Import/Export を開く")
	if cfg.LinearTeamKey != "" {
		utils.LogInfo("  2. チーム %s へ %s をアップロードする", cfg.LinearTeamKey, cfg.LinearCSV)
	} else {
		utils.LogInfo("  2. %s をアップロードする", cfg.LinearCSV)
	}
	utils.LogInfo("  3. 列のマッピングを確認してインポートを実行する")
}
