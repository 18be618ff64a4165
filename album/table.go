package album

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// table is a header-keyed CSV table as produced by mdb-export.
type table struct {
	columns map[string]int
	rows    [][]string
}

func readTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, err
	}
	t := &table{columns: make(map[string]int, len(header))}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		t.columns[name] = i
	}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

func (t *table) record(i int) record { return record{t: t, fields: t.rows[i]} }

type record struct {
	t      *table
	fields []string
}

// str returns the raw value of a column; missing columns read as "".
func (r record) str(name string) string {
	i, ok := r.t.columns[name]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return r.fields[i]
}

// number parses a numeric column. A missing column is an error, an empty cell
// reads as 0.
func (r record) number(name string) (float64, error) {
	if _, ok := r.t.columns[name]; !ok {
		return 0, fmt.Errorf("missing column %s", name)
	}
	v := strings.TrimSpace(r.str(name))
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", name, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("column %s: invalid number %q", name, v)
	}
	return f, nil
}

// integer parses an integral column, accepting "3.0" as written by some exporters.
func (r record) integer(name string) (int, error) {
	f, err := r.number(name)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("column %s: %v is not an integer", name, f)
	}
	return int(f), nil
}
