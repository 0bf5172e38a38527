package services

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"youtracktolinear/config"
	"youtracktolinear/models"
	"youtracktolinear/utils"
)

// LinearCSVWriter はLinearインポート用CSVファイルの書き出しを担当します
type LinearCSVWriter struct {
	config *config.Config
}

// NewLinearCSVWriter は新しいCSVライターを作成します
func NewLinearCSVWriter(cfg *config.Config) *LinearCSVWriter {
	return &LinearCSVWriter{config: cfg}
}

// WriteLinearCSV は変換済みの行をLinearインポート用CSVへ書き出します。
// ヘッダー行は行数にかかわらず必ず出力し、既存のファイルは上書きします。
func (w *LinearCSVWriter) WriteLinearCSV(rows []models.LinearRow) error {
	utils.LogInfo("Linear CSVファイル '%s' を作成します", w.config.LinearCSV)

	if err := os.MkdirAll(filepath.Dir(w.config.LinearCSV), 0755); err != nil {
		return fmt.Errorf("出力ディレクトリ作成エラー: %w", err)
	}

	file, err := os.Create(w.config.LinearCSV)
	if err != nil {
		return fmt.Errorf("CSVファイル作成エラー: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(models.LinearCSVHeaders); err != nil {
		return fmt.Errorf("CSVヘッダー書き込みエラー: %w", err)
	}

	for _, row := range rows {
		if err := writer.Write(row.Fields()); err != nil {
			return fmt.Errorf("CSV行書き込みエラー: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV書き込みエラー: %w", err)
	}

	utils.LogInfo("CSV書き込み完了: %d 行を出力しました", len(rows))
	return nil
}
