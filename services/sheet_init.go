package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"drapequote/tabular"
)

// InitSheets writes the header row of every sheet whose first row is
// empty. Sheets that already carry a header are left untouched. The sheets
// themselves must exist.
func InitSheets(ctx context.Context, backend tabular.Backend, logger *zap.Logger) error {
	for _, s := range Schemas() {
		rows, err := backend.Read(ctx, s.Name, s.RowSpan(1))
		if err != nil {
			return fmt.Errorf("read %s header: %w", s.Name, err)
		}
		if len(rows) > 0 && len(rows[0]) > 0 {
			logger.Debug("sheets: header present", zap.String("sheet", s.Name))
			continue
		}

		header := make([]any, len(s.Columns))
		for i, c := range s.Columns {
			header[i] = c
		}
		if err := backend.Update(ctx, s.Name, s.RowSpan(1), header); err != nil {
			return fmt.Errorf("write %s header: %w", s.Name, err)
		}
		logger.Info("sheets: header written", zap.String("sheet", s.Name), zap.Int("columns", len(s.Columns)))
	}
	return nil
}
