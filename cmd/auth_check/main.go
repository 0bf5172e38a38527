package main

import (
	"flag"
	"fmt"
	"os"

	"youtracktolinear/api"
	"youtracktolinear/config"
	"youtracktolinear/utils"
)

func main() {
	// ヘルプフラグの定義
	help := flag.Bool("help", false, "ヘルプを表示する")
	verbose := flag.Bool("verbose", false, "デバッグログを表示する")

	// フラグのパース
	flag.Parse()

	// ヘルプフラグが指定された場合はヘルプを表示
	if *help {
		printHelp()
		return
	}

	utils.SetVerbose(*verbose)
	utils.LogInfo("YouTrack認証確認ツール")

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

	// YouTrackクライアントの初期化
	youtrackClient := api.NewYouTrackClient(cfg)

	// 認証チェック
	utils.LogInfo("YouTrack APIの認証を確認しています...")
	err = youtrackClient.CheckAuth()
	if err != nil {
		utils.LogError("YouTrack認証エラー: %v", err)
		utils.LogError("YOUTRACK_URL と YOUTRACK_TOKEN を確認してください。")
		os.Exit(1)
	}

	utils.LogInfo("YouTrack認証成功！ 接続先: %s", cfg.YouTrackURL)
	utils.LogInfo("YouTrack APIの認証情報は正常です。")
}

// ヘルプメッセージを表示する関数
func printHelp() {
	fmt.Printf(`
YouTrack認証確認ツール

使用方法:
  %s [オプション]

オプション:
  -verbose            デバッグログを表示する
  -help               このヘルプを表示する

環境変数:
  YOUTRACK_URL        YouTrackのベースURL (必須)
  YOUTRACK_TOKEN      YouTrackの永続APIトークン (必須)

説明:
  このツールはYouTrack APIの認証情報が正しく設定されているかを確認します。
  認証が成功すれば、issue_export も正常に動作する可能性が高いです。
`, os.Args[0])
}
