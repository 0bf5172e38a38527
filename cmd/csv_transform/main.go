package main

import (
	"flag"
	"fmt"
	"os"

	"youtracktolinear/config"
	"youtracktolinear/services"
	"youtracktolinear/utils"
)

func main() {
	// コマンドラインフラグの定義
	input := flag.String("input", "", "中間JSONファイルのパス (デフォルト: 環境変数 ISSUES_JSON)")
	output := flag.String("output", "", "Linear CSVファイルの出力先 (デフォルト: 環境変数 LINEAR_CSV)")
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

	utils.SetVerbose(*verbose)
	utils.LogInfo("Linear CSV変換ツール")

	// 設定の読み込み
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("設定の読み込みに失敗しました: %v", err)
		os.Exit(1)
	}

	// フラグで設定を上書き
	if *input != "" {
		cfg.IssuesJSON = *input
	}
	if *output != "" {
		cfg.LinearCSV = *output
	}
	if *state != "" {
		cfg.LinearDefaultState = *state
	}

	utils.LogInfo("入力: %s", cfg.IssuesJSON)
	utils.LogInfo("出力: %s", cfg.LinearCSV)

	// 中間ファイルの読み込み
	issueStore := services.NewIssueStore(cfg)
	issues, err := issueStore.LoadIssues()
	if err != nil {
		utils.LogError("%v", err)
		os.Exit(1)
	}

	// イシューの変換
	transformer := services.NewTransformer(cfg)
	rows, skipped := transformer.TransformIssues(issues)

	// CSVの書き出し
	csvWriter := services.NewLinearCSVWriter(cfg)
	if err := csvWriter.WriteLinearCSV(rows); err != nil {
		utils.LogError("CSVの書き出しに失敗しました: %v", err)
		os.Exit(1)
	}

	// スキップがあっても処理自体は成功として扱う
	if len(skipped) > 0 {
		utils.LogWarn("%d 件のイシューをスキップしました", len(skipped))
	}
	utils.LogInfo("変換完了: %d 行を %s に出力しました", len(rows), cfg.LinearCSV)
	services.LogImportSteps(cfg)
}

// ヘルプメッセージを表示する関数
func printHelp() {
	fmt.Printf(`
Linear CSV変換ツール

使用方法:
  %s [オプション]

オプション:
  -input <パス>       中間JSONファイルのパス
  -output <パス>      Linear CSVファイルの出力先
  -state <値>         全行に設定するState列の値 (例: Backlog)
  -verbose            デバッグログを表示する
  -help               このヘルプを表示する

環境変数:
  LINEAR_TEAM_KEY       インポート先のLinearチームキー (表示のみに使用)
  LINEAR_DEFAULT_STATE  全行に設定するState列の値
  OUTPUT_DIR            出力ディレクトリ (デフォルト: ./output)
  ISSUES_JSON           中間JSONファイルのパス
  LINEAR_CSV            Linear CSVファイルのパス

説明:
  このツールは issue_export が保存した中間JSONファイルを読み込み、
  LinearのCSVインポート形式に変換します。タイトルと説明のみを移行する
  最小マッピングのため、担当者や優先度などの列は空になります。
  タイトルを決定できないイシューは警告を出してスキップします。
`, os.Args[0])
}
