package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"youtracktolinear/api"
	"youtracktolinear/config"
	"youtracktolinear/services"
	"youtracktolinear/utils"
)

func main() {
	// コマンドラインフラグの定義
	exportOnly := flag.Bool("export-only", false, "YouTrackからのエクスポートのみを実行する")
	transformOnly := flag.Bool("transform-only", false, "Linear CSVへの変換のみを実行する")
	query := flag.String("query", "", "YouTrackの検索クエリ (プロジェクトキーによる絞り込みに追加される)")
	state := flag.String("state", "", "全行に設定するState列の値 (デフォルト: 環境変数 LINEAR_DEFAULT_STATE)")
	verbose := flag.Bool("verbose", false, "デバッグログを表示する")
	help := flag.Bool("help", false, "ヘルプを表示する")

	// フラグのパース
	flag.Parse()

	// ヘルプフラグが指定された場合はヘルプを表示
	if *help {
		printHelp()
		return
	}

	if *exportOnly && *transformOnly {
		utils.LogError("-export-only と -transform-only は同時に指定できません")
		os.Exit(1)
	}

	utils.SetVerbose(*verbose)

	// 開始時間の記録
	startTime := time.Now()

	// 設定の読み込み
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("設定の読み込みに失敗しました: %v", err)
		os.Exit(1)
	}

	// 変換のみの場合はYouTrackへ接続しないため認証情報を必須としない
	if !*transformOnly {
		if err := cfg.ValidateForExport(); err != nil {
			utils.LogError("設定エラー: %v", err)
			os.Exit(1)
		}
	}

	// State列の上書き（指定された場合のみ）
	if *state != "" {
		cfg.LinearDefaultState = *state
	}

	utils.LogInfo("YouTrack → Linear 移行ツール (v1.0.0)")

	// 必要なサービスの初期化
	youtrackClient := api.NewYouTrackClient(cfg)
	migrationService := services.NewMigrationService(cfg, youtrackClient)

	// 移行の実行
	err = migrationService.RunMigration(*exportOnly, *transformOnly, *query)
	if err != nil {
		utils.LogError("移行処理に失敗しました: %v", err)
		os.Exit(1)
	}

	// 合計実行時間の表示
	elapsed := time.Since(startTime)
	utils.LogInfo("すべての処理が完了しました。合計実行時間: %s", elapsed)
}

// ヘルプメッセージを表示する関数
func printHelp() {
	fmt.Printf(`
YouTrack → Linear 移行ツール

使用方法:
  %s [オプション]

オプション:
  -export-only        YouTrackからのエクスポートのみを実行する
  -transform-only     Linear CSVへの変換のみを実行する
  -query <クエリ>     YouTrackの検索クエリ (例: "State: Open")
  -state <値>         全行に設定するState列の値 (例: Backlog)
  -verbose            デバッグログを表示する
  -help               このヘルプを表示する

環境変数:
  YOUTRACK_URL          YouTrackのベースURL (必須)
  YOUTRACK_TOKEN        YouTrackの永続APIトークン (必須)
  YOUTRACK_PROJECT_KEY  エクスポート対象のプロジェクトキー
  YOUTRACK_BATCH_SIZE   1ページあたりの取得件数 (デフォルト: 100)
  LINEAR_TEAM_KEY       インポート先のLinearチームキー (表示のみに使用)
  LINEAR_DEFAULT_STATE  全行に設定するState列の値
  OUTPUT_DIR            出力ディレクトリ (デフォルト: ./output)
  ISSUES_JSON           中間JSONファイルのパス (デフォルト: <OUTPUT_DIR>/youtrack_issues.json)
  LINEAR_CSV            Linear CSVファイルのパス (デフォルト: <OUTPUT_DIR>/linear_issues.csv)

例:
  # エクスポートと変換をまとめて実行
  %s

  # エクスポートのみを実行
  %s -export-only

  # 変換のみを実行（中間JSONファイルが必要）
  %s -transform-only

  # 未解決のイシューだけを移行する
  %s -query "State: Unresolved"
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0])
}
