// Package export renders sales history as CSV for download.
// No ecosystem CSV library is needed here; the format is plain RFC 4180
// with a UTF-8 BOM so spreadsheet apps detect the encoding.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/paridu/pos-backend/internal/model"
)

// utf8BOM makes Excel open the file as UTF-8 instead of the locale codepage.
const utf8BOM = "\uFEFF"

var csvHeader = []string{"id", "date", "time", "final_amount", "payment_method", "item_count"}

// WriteSalesCSV streams all given sales as CSV rows, newest order preserved
// from the caller. Each sale becomes one row; item_count is the number of
// distinct lines on the receipt, not the summed quantities.
func WriteSalesCSV(w io.Writer, sales []model.Sale) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("export: write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	for i := range sales {
		s := &sales[i]
		row := []string{
			s.ID.String(),
			s.CreatedAt.Format("2006-01-02"),
			s.CreatedAt.Format("15:04:05"),
			s.FinalAmount.StringFixed(2),
			s.PaymentMethod,
			fmt.Sprintf("%d", len(s.Items)),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}
	return nil
}
