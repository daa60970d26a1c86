package heatmap

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

var (
	ErrEmpty  = errors.New("heatmap: field has no cells")
	ErrRagged = errors.New("heatmap: rows have different lengths")
)

// Field is a row-major grid of saliency values.
type Field struct {
	rows, cols int
	data       []float64
}

func New(rows, cols int) *Field {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Field{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// FromRows copies a nested slice into a Field.
func FromRows(values [][]float64) (*Field, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmpty
	}
	f := New(len(values), len(values[0]))
	for r, row := range values {
		if len(row) != f.cols {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrRagged, r, len(row), f.cols)
		}
		copy(f.data[r*f.cols:], row)
	}
	return f, nil
}

// Rows and Cols report 0 for a nil field.
func (f *Field) Rows() int {
	if f == nil {
		return 0
	}
	return f.rows
}

func (f *Field) Cols() int {
	if f == nil {
		return 0
	}
	return f.cols
}

func (f *Field) At(row, col int) float64 {
	return f.data[row*f.cols+col]
}

func (f *Field) Set(row, col int, v float64) {
	f.data[row*f.cols+col] = v
}

func (f *Field) Fill(v float64) {
	for i := range f.data {
		f.data[i] = v
	}
}

func (f *Field) Clone() *Field {
	c := &Field{rows: f.rows, cols: f.cols, data: make([]float64, len(f.data))}
	copy(c.data, f.data)
	return c
}

// Range returns the smallest and largest value in the field.
func (f *Field) Range() (lo, hi float64) {
	if len(f.data) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range f.data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// Normalized returns a copy rescaled to [0,1]. A flat field maps to zeros.
func (f *Field) Normalized() *Field {
	c := f.Clone()
	lo, hi := f.Range()
	span := hi - lo
	for i, v := range c.data {
		if span == 0 {
			c.data[i] = 0
			continue
		}
		c.data[i] = (v - lo) / span
	}
	return c
}

// Validate rejects empty fields and non-finite values.
func (f *Field) Validate() error {
	if f == nil || f.rows == 0 || f.cols == 0 {
		return ErrEmpty
	}
	for i, v := range f.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("heatmap: non-finite value at (%d,%d)", i/f.cols, i%f.cols)
		}
	}
	return nil
}

// LoadCSV reads a field written one row per line.
func LoadCSV(path string) (*Field, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	values := make([][]float64, 0, len(records))
	for i, record := range records {
		row := make([]float64, 0, len(record))
		for j, cell := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("heatmap: %s:%d:%d: %w", path, i+1, j+1, err)
			}
			row = append(row, v)
		}
		values = append(values, row)
	}

	return FromRows(values)
}
