package ingestion_engine

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// spreadsheetText renders a .xlsx workbook sheet by sheet. Every sheet keeps
// its name as a header, rows become lines, and cells within a row are joined
// by spaces. All rows are kept so numeric tables survive retrieval.
func spreadsheetText(path string) (ExtractedUnit, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return ExtractedUnit{}, fmt.Errorf("open workbook: %w", err)
	}
	defer book.Close()

	sheetNames := book.GetSheetList()
	sheets := make([]string, 0, len(sheetNames))
	for _, name := range sheetNames {
		rows, err := book.GetRows(name)
		if err != nil {
			return ExtractedUnit{}, fmt.Errorf("read sheet %s: %w", name, err)
		}
		lines := make([]string, 0, len(rows))
		for _, row := range rows {
			lines = append(lines, strings.Join(row, " "))
		}
		sheets = append(sheets, fmt.Sprintf("Sheet %s:\n%s", name, strings.Join(lines, "\n")))
	}

	return ExtractedUnit{Kind: UnitSpreadsheetText, Text: strings.Join(sheets, "\n\n")}, nil
}
