package sheets

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ExpectedHeaders are the first-row labels for columns A-D, in the exact
// order of the daily report row. Columns beyond D are maintained by hand in
// the sheet and never written here.
var ExpectedHeaders = []any{
	"Date",
	"Creators Contacted",
	"Agencies Contacted",
	"Affiliates/Partners Contacted",
}

// UpsertDateRow writes the report row for one date: when column A already
// holds the date the existing row is updated in place, otherwise the row is
// appended. An empty sheet gets the header row first.
func UpsertDateRow(ctx context.Context, c Client, worksheet, date string, row []any) error {
	header, err := c.GetValues(ctx, fmt.Sprintf("%s!A1:D1", worksheet))
	if err != nil {
		return eris.Wrap(err, "sheets: read header row")
	}
	if len(header.Values) == 0 {
		if err := c.UpdateValues(ctx, fmt.Sprintf("%s!A1:D1", worksheet), [][]any{ExpectedHeaders}); err != nil {
			return eris.Wrap(err, "sheets: write headers")
		}
		zap.L().Info("wrote headers to empty sheet", zap.String("worksheet", worksheet))
	}

	dateCol, err := c.GetValues(ctx, fmt.Sprintf("%s!A:A", worksheet))
	if err != nil {
		return eris.Wrap(err, "sheets: read date column")
	}

	for i, cells := range dateCol.Values {
		if len(cells) > 0 && cells[0] == date {
			rowIndex := i + 1 // ranges are 1-based
			rangeRef := fmt.Sprintf("%s!A%d:D%d", worksheet, rowIndex, rowIndex)
			if err := c.UpdateValues(ctx, rangeRef, [][]any{row}); err != nil {
				return eris.Wrap(err, "sheets: update row")
			}
			zap.L().Info("updated existing report row",
				zap.String("date", date), zap.Int("row", rowIndex))
			return nil
		}
	}

	if err := c.AppendValues(ctx, fmt.Sprintf("%s!A:D", worksheet), [][]any{row}); err != nil {
		return eris.Wrap(err, "sheets: append row")
	}
	zap.L().Info("appended report row", zap.String("date", date))
	return nil
}
