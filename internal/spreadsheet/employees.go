// Package spreadsheet reads bulk employee uploads.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoSheets is returned for a workbook without worksheets.
var ErrNoSheets = errors.New("workbook has no sheets")

// EmployeeRow is one data row of the first worksheet, keyed by header.
type EmployeeRow struct {
	Line      int
	Name      string
	Email     string
	ContactNo string
	Gender    string
	Address   string
}

// Complete reports whether the row carries the mandatory columns.
func (r EmployeeRow) Complete() bool {
	return r.Name != "" && r.Email != "" && r.ContactNo != ""
}

// ReadEmployees parses the first sheet. Header matching ignores case, spaces
// and underscores so "Contact No" and "contactNo" both map to ContactNo.
func ReadEmployees(r io.Reader) ([]EmployeeRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	index := map[string]int{}
	for i, h := range rows[0] {
		index[headerKey(h)] = i
	}
	cell := func(row []string, key string) string {
		i, ok := index[key]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]EmployeeRow, 0, len(rows)-1)
	for n, row := range rows[1:] {
		er := EmployeeRow{
			Line:      n + 2,
			Name:      cell(row, "name"),
			Email:     strings.ToLower(cell(row, "email")),
			ContactNo: cell(row, "contactno"),
			Gender:    cell(row, "gender"),
			Address:   cell(row, "address"),
		}
		if er.ContactNo == "" {
			er.ContactNo = cell(row, "phone")
		}
		if er == (EmployeeRow{Line: er.Line}) {
			continue
		}
		out = append(out, er)
	}
	return out, nil
}

func headerKey(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}
