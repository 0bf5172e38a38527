package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultYouTrackFields はYouTrack APIから取得するフィールドの一覧です
const DefaultYouTrackFields = "idReadable,summary,description,created,updated,resolved," +
	"reporter(name,email),assignee(name,email),priority(name),state(name),tags(name)"

// Config はアプリケーション全体の設定を保持します
type Config struct {
	// YouTrack API設定
	YouTrackURL        string
	YouTrackToken      string
	YouTrackProjectKey string
	YouTrackBatchSize  int
	YouTrackFields     string

	// Linearインポート設定
	LinearTeamKey      string
	LinearDefaultState string

	// ファイルパス
	OutputDir  string
	IssuesJSON string
	LinearCSV  string
}

// LoadConfig は環境変数から設定を読み込みます
func LoadConfig() (*Config, error) {
	// .envファイルを読み込む
	_ = godotenv.Load()

	outputDir := getEnvWithDefault("OUTPUT_DIR", "./output")

	config := &Config{
		YouTrackURL:        strings.TrimRight(os.Getenv("YOUTRACK_URL"), "/"),
		YouTrackToken:      os.Getenv("YOUTRACK_TOKEN"),
		YouTrackProjectKey: os.Getenv("YOUTRACK_PROJECT_KEY"),
		YouTrackBatchSize:  getEnvAsIntWithDefault("YOUTRACK_BATCH_SIZE", 100),
		YouTrackFields:     getEnvWithDefault("YOUTRACK_FIELDS", DefaultYouTrackFields),
		LinearTeamKey:      os.Getenv("LINEAR_TEAM_KEY"),
		LinearDefaultState: os.Getenv("LINEAR_DEFAULT_STATE"),
		OutputDir:          outputDir,
		IssuesJSON:         getEnvWithDefault("ISSUES_JSON", filepath.Join(outputDir, "youtrack_issues.json")),
		LinearCSV:          getEnvWithDefault("LINEAR_CSV", filepath.Join(outputDir, "linear_issues.csv")),
	}

	if config.YouTrackBatchSize < 1 {
		return nil, fmt.Errorf("YOUTRACK_BATCH_SIZE は1以上を指定してください: %d", config.YouTrackBatchSize)
	}

	return config, nil
}

// ValidateForExport はエクスポートに必要な設定が揃っているかを検証します
func (c *Config) ValidateForExport() error {
	if c.YouTrackURL == "" {
		return fmt.Errorf("YOUTRACK_URL が設定されていません")
	}
	if !strings.HasPrefix(c.YouTrackURL, "http://") && !strings.HasPrefix(c.YouTrackURL, "https://") {
		return fmt.Errorf("YOUTRACK_URL は http:// または https:// で始まる必要があります: %s", c.YouTrackURL)
	}
	if c.YouTrackToken == "" {
		return fmt.Errorf("YOUTRACK_TOKEN が設定されていません")
	}
	return nil
}

// デフォルト値付きで環境変数を取得
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// デフォルト値付きで環境変数を整数として取得
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
