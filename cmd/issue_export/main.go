package main

import (
	"flag"
	"fmt"
	"os"

	"youtracktolinear/api"
	"youtracktolinear/config"
	"youtracktolinear/services"
	"youtracktolinear/utils"
)

func main() {
	// コマンドラインフラグの定義
	query := flag.String("query", "", "YouTrackの検索クエリ (プロジェクトキーによる絞り込みに追加される)")
	output := flag.String("output", "", "中間JSONファイルの出力先 (デフォルト: 環境変数 ISSUES_JSON)")
	verbose := flag.Bool("verbose", false, "デバッグログを表示する")
	help := flag.Bool("help", false, "ヘルプを表示する")

	// フラグのパース
	flag.Parse()

	// ヘルプフラグが指定された場合はヘルプを表示
	if *help {
		printHelp()
		return
	}

	utils.SetVerbose(*verbose)
	utils.LogInfo("YouTrackイシューエクスポートツール")

	// 設定の読み込み
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("設定の読み込みに失敗しました: %v", err)
		os.Exit(1)
	}
	if err := cfg.ValidateForExport(); err != nil {
		utils.LogError("設定エラー: %v", err)
		os.Exit(1)
	}

	// フラグで出力先を上書き
	if *output != "" {
		cfg.IssuesJSON = *output
	}

	queryLabel := *query
	if queryLabel == "" {
		queryLabel = "すべてのイシュー"
	}
	utils.LogInfo("クエリ: %s", queryLabel)
	utils.LogInfo("出力先: %s", cfg.IssuesJSON)

	// YouTrackクライアントの初期化と認証チェック
	youtrackClient := api.NewYouTrackClient(cfg)
	if err := youtrackClient.CheckAuth(); err != nil {
		utils.LogError("YouTrack認証エラー: %v", err)
		os.Exit(1)
	}

	// イシューのエクスポート
	migrationService := services.NewMigrationService(cfg, youtrackClient)
	count, err := migrationService.ExportIssues(*query)
	if err != nil {
		utils.LogError("エクスポートに失敗しました: %v", err)
		os.Exit(1)
	}

	utils.LogInfo("エクスポート完了: %d 件を %s に保存しました", count, cfg.IssuesJSON)
	utils.LogInfo("次は csv_transform を実行して Linear インポート用CSVを生成してください。")
}

// ヘルプメッセージを表示する関数
func printHelp() {
	fmt.Printf(`
YouTrackイシューエクスポートツール

使用方法:
  %s [オプション]

オプション:
  -query <クエリ>     YouTrackの検索クエリ (例: "State: Open")
  -output <パス>      中間JSONファイルの出力先
  -verbose            デバッグログを表示する
  -help               このヘルプを表示する

環境変数:
  YOUTRACK_URL          YouTrackのベースURL (必須)
  YOUTRACK_TOKEN        YouTrackの永続APIトークン (必須)
  YOUTRACK_PROJECT_KEY  エクスポート対象のプロジェクトキー
  YOUTRACK_BATCH_SIZE   1ページあたりの取得件数 (デフォルト: 100)
  OUTPUT_DIR            出力ディレクトリ (デフォルト: ./output)
  ISSUES_JSON           中間JSONファイルのパス

説明:
  このツールはYouTrackからイシューをページング取得し、中間JSONファイルに
  保存します。プロジェクトキーが設定されている場合は、そのプロジェクトの
  イシューだけを対象にします。
`, os.Args[0])
}
