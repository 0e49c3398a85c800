package Compare

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a fully materialized spreadsheet: ordered headers plus one
// map per data row keyed by header. Rows from excelize can be ragged;
// missing cells read as "".
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// NewTableFromRows builds a Table from raw sheet rows. The first row is
// the header row. Headers are trimmed and deduplicated keeping only the
// first occurrence of each name; cells under a dropped duplicate header
// are dropped with it. Dedupe runs before any column resolution.
func NewTableFromRows(rows [][]string) *Table {
	t := &Table{}
	if len(rows) == 0 {
		return t
	}
	seen := make(map[string]bool)
	keep := make([]int, 0, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if seen[h] {
			continue
		}
		seen[h] = true
		keep = append(keep, i)
		t.Headers = append(t.Headers, h)
	}
	for _, raw := range rows[1:] {
		row := make(map[string]string, len(keep))
		for j, i := range keep {
			if i < len(raw) {
				row[t.Headers[j]] = raw[i]
			} else {
				row[t.Headers[j]] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// ResolveColumn finds the header for a semantic field. Candidate phrases
// are tried in priority order, headers scanned left to right per phrase,
// matching case-insensitively on substring. When nothing matches the
// fallback is returned as-is; that is deterministic but lossy, since a
// fallback name may not exist in the table at all and then every lookup
// under it reads as an empty cell.
func (t *Table) ResolveColumn(candidates []string, fallback string) string {
	for _, cand := range candidates {
		for _, h := range t.Headers {
			if strings.Contains(strings.ToLower(h), cand) {
				return h
			}
		}
	}
	return fallback
}

// empColumnCandidates is the priority list of phrases the biometric
// exports use for their employee-id column.
var empColumnCandidates = []string{"pay code", "emp code", "employee code", "empid", "emp id", "code"}

// EmpColumn resolves the employee-id column, defaulting to the first
// column when no known phrase appears.
func (t *Table) EmpColumn() string {
	fallback := ""
	if len(t.Headers) > 0 {
		fallback = t.Headers[0]
	}
	return t.ResolveColumn(empColumnCandidates, fallback)
}

// CollectPunches gathers every parseable punch time for one employee,
// sorted ascending. Only the first row whose id cell normalizes to key
// is consulted; a punch column is any column whose header contains
// "PUNCH". Sentinel and unparseable cells are skipped.
func (t *Table) CollectPunches(key, idCol string) []PunchTime {
	for _, row := range t.Rows {
		if CleanID(row[idCol]) != key {
			continue
		}
		var punches []PunchTime
		for _, h := range t.Headers {
			if !strings.Contains(strings.ToUpper(h), "PUNCH") {
				continue
			}
			if p, ok := ParsePunch(row[h]); ok {
				punches = append(punches, p)
			}
		}
		sort.Slice(punches, func(i, j int) bool { return punches[i].Before(punches[j]) })
		return punches
	}
	return nil
}

// LoadRoster decodes the attendance workbook. The sheet whose name
// contains both "data" and "entry" is used, else the first sheet.
// Returns the table and the selected sheet name.
func LoadRoster(data []byte) (*Table, string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("not a readable workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, "", fmt.Errorf("workbook has no sheets")
	}
	sheet := sheets[0]
	for _, s := range sheets {
		lower := strings.ToLower(s)
		if strings.Contains(lower, "data") && strings.Contains(lower, "entry") {
			sheet = s
			break
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	t := NewTableFromRows(rows)
	if len(t.Headers) == 0 {
		return nil, "", fmt.Errorf("sheet %q has no columns", sheet)
	}
	return t, sheet, nil
}

// LoadBiometric decodes a punch-clock export. The first physical row is
// a title banner and is skipped; the second row is the header row.
func LoadBiometric(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("not a readable workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no header row below the title row", sheets[0])
	}
	t := NewTableFromRows(rows[1:])
	if len(t.Headers) == 0 {
		return nil, fmt.Errorf("sheet %q has no columns", sheets[0])
	}
	return t, nil
}
