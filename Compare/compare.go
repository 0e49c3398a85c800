package Compare

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// Result is the annotated roster: the input table with one trailing
// Status column, rows in the original order.
type Result struct {
	SheetName string
	Headers   []string
	Rows      [][]string
}

// StatusTally counts rows per status. The status is always the last
// cell of each row.
func (r *Result) StatusTally() map[Status]int {
	tally := make(map[Status]int)
	for _, row := range r.Rows {
		if len(row) > 0 {
			tally[Status(row[len(row)-1])]++
		}
	}
	return tally
}

// Compare reconciles the attendance roster against the two biometric
// exports and returns the annotated workbook plus the annotated table.
// All three inputs are decoded up front; classification itself is a
// pure pass over the roster and cannot fail. Any error here means a
// structurally unusable input and no partial output is produced.
func Compare(attendance, bio1, bio2 []byte) (*bytes.Buffer, *Result, error) {
	roster, sheetName, err := LoadRoster(attendance)
	if err != nil {
		return nil, nil, fmt.Errorf("attendance file: %w", err)
	}
	day1, err := LoadBiometric(bio1)
	if err != nil {
		return nil, nil, fmt.Errorf("biometric file 1: %w", err)
	}
	day2, err := LoadBiometric(bio2)
	if err != nil {
		return nil, nil, fmt.Errorf("biometric file 2: %w", err)
	}

	dateCol := roster.ResolveColumn([]string{"date"}, "")
	shiftCol := roster.ResolveColumn([]string{"shift"}, "SHIFT")
	empCol := roster.ResolveColumn([]string{"emp id"}, "EMP ID")
	day1Emp := day1.EmpColumn()
	day2Emp := day2.EmpColumn()

	// Every normalized id present anywhere in source 1. An employee
	// missing here is No Punch outright; source 2 is never consulted.
	day1Keys := make(map[string]bool, len(day1.Rows))
	for _, row := range day1.Rows {
		day1Keys[CleanID(row[day1Emp])] = true
	}

	result := &Result{
		SheetName: sheetName,
		Headers:   append(append([]string{}, roster.Headers...), "Status"),
	}
	for _, row := range roster.Rows {
		key := CleanID(row[empCol])
		status := StatusNoPunch
		if day1Keys[key] {
			punches1 := day1.CollectPunches(key, day1Emp)
			punches2 := day2.CollectPunches(key, day2Emp)
			status = Classify(row[shiftCol], punches1, punches2)
		}
		out := make([]string, 0, len(result.Headers))
		for _, h := range roster.Headers {
			out = append(out, row[h])
		}
		out = append(out, string(status))
		result.Rows = append(result.Rows, out)
	}

	buf, err := renderWorkbook(result, dateCol)
	if err != nil {
		return nil, nil, err
	}
	return buf, result, nil
}

// dateLayouts covers the renderings excelize produces for date cells
// plus the formats the roster files use when dates arrive as plain text.
var dateLayouts = []string{
	"2006-01-02",
	"01-02-06",
	"1/2/06",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"02-Jan-06",
}

func parseDate(v string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// renderWorkbook writes the annotated table into a fresh workbook. The
// date column, when one was resolved, is re-emitted as real date cells
// with a yyyy-mm-dd number format and a fixed width; this is cosmetic
// and unparseable date cells stay as their original text.
func renderWorkbook(result *Result, dateCol string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(result.SheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	for i, header := range result.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(result.SheetName, cell, header)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		f.SetRowStyle(result.SheetName, 1, 1, headerStyle)
	}

	dateIdx := -1
	for i, h := range result.Headers {
		if dateCol != "" && h == dateCol {
			dateIdx = i
		}
	}
	dateFormat := "yyyy-mm-dd"
	dateStyle, dateStyleErr := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFormat})

	for rowIdx, row := range result.Rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if colIdx == dateIdx {
				if t, ok := parseDate(value); ok {
					f.SetCellValue(result.SheetName, cell, t)
					if dateStyleErr == nil {
						f.SetCellStyle(result.SheetName, cell, cell, dateStyle)
					}
					continue
				}
			}
			f.SetCellValue(result.SheetName, cell, value)
		}
	}

	if dateIdx >= 0 {
		col, _ := excelize.ColumnNumberToName(dateIdx + 1)
		f.SetColWidth(result.SheetName, col, col, 15)
	}

	if f.GetSheetName(0) != result.SheetName {
		f.DeleteSheet("Sheet1")
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing workbook to buffer: %v", err)
	}
	return &buf, nil
}
