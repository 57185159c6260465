package batch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNothingToExport indicates the requested partition has no receipts.
var ErrNothingToExport = errors.New("nothing to export")

// spendeeHeader is the fixed column order Spendee's importer expects.
var spendeeHeader = []string{"Date", "Category name", "Amount", "Type", "Note", "Tax"}

// MarshalSpendeeCSV serializes receipts as a Spendee-importable CSV
// document: every field double-quoted (embedded quotes doubled per RFC
// 4180), amounts with exactly two decimal places, the Type column always the
// literal "expense", rows in insertion order, LF separators.
func MarshalSpendeeCSV(receipts []*Receipt) ([]byte, error) {
	if len(receipts) == 0 {
		return nil, ErrNothingToExport
	}

	lines := make([]string, 0, len(receipts)+1)
	lines = append(lines, joinRow(spendeeHeader))

	for _, r := range receipts {
		lines = append(lines, joinRow([]string{
			r.Date,
			r.Category,
			fmt.Sprintf("%.2f", r.Amount),
			"expense",
			r.Note,
			fmt.Sprintf("%.2f", r.Tax),
		}))
	}

	return []byte(strings.Join(lines, "\n")), nil
}

// SpendeeFilename returns the download filename for a partition's export
func SpendeeFilename(receiptType ReceiptType) string {
	return fmt.Sprintf("spendee-%s-receipts.csv", receiptType)
}

func joinRow(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
