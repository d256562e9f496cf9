package phylo

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Babdus/protolanguage-v2/pkg/errors"
)

// symmetryTolerance is the largest accepted |d[i][j] - d[j][i]|.
const symmetryTolerance = 1e-9

// Matrix is a square distance matrix with named rows and columns.
type Matrix struct {
	Names []string
	D     [][]float64
}

// Len returns the number of taxa.
func (m *Matrix) Len() int { return len(m.Names) }

// Validate checks that m is square, symmetric, has a zero diagonal, and
// holds finite non-negative distances between uniquely named taxa.
func (m *Matrix) Validate() error {
	n := len(m.Names)
	if n == 0 {
		return errors.New(errors.ErrCodeInvalidMatrix, "matrix is empty")
	}
	if len(m.D) != n {
		return errors.New(errors.ErrCodeInvalidMatrix, "matrix has %d names but %d rows", n, len(m.D))
	}

	seen := make(map[string]bool, n)
	for i, name := range m.Names {
		if err := errors.ValidateNodeName(name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidMatrix, err, "row %d", i+1)
		}
		if seen[name] {
			return errors.New(errors.ErrCodeInvalidMatrix, "duplicate name %q", name)
		}
		seen[name] = true
	}

	for i, row := range m.D {
		if len(row) != n {
			return errors.New(errors.ErrCodeInvalidMatrix, "row %q has %d values, want %d", m.Names[i], len(row), n)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return errors.New(errors.ErrCodeInvalidMatrix, "distance %s/%s must be finite and non-negative, got %v", m.Names[i], m.Names[j], v)
			}
			if i == j && v != 0 {
				return errors.New(errors.ErrCodeInvalidMatrix, "distance %s/%s on the diagonal must be 0, got %v", m.Names[i], m.Names[j], v)
			}
		}
	}
	for i := range n {
		for j := i + 1; j < n; j++ {
			if math.Abs(m.D[i][j]-m.D[j][i]) > symmetryTolerance {
				return errors.New(errors.ErrCodeInvalidMatrix, "matrix is not symmetric at %s/%s: %v != %v", m.Names[i], m.Names[j], m.D[i][j], m.D[j][i])
			}
		}
	}
	return nil
}

// ReadMatrix parses a CSV distance matrix. The first header cell is ignored
// and the remaining header cells must match the row names in order.
func ReadMatrix(r io.Reader) (*Matrix, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMatrix, err, "parse csv")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidMatrix, "matrix is empty")
	}

	header := records[0]
	if len(header) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidMatrix, "header must list at least one name")
	}
	names := make([]string, len(header)-1)
	for i, h := range header[1:] {
		names[i] = strings.TrimSpace(h)
	}

	m := &Matrix{Names: names, D: make([][]float64, 0, len(names))}
	for i, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, errors.New(errors.ErrCodeInvalidMatrix, "line %d has %d fields, want %d", i+2, len(rec), len(header))
		}
		if i >= len(names) {
			return nil, errors.New(errors.ErrCodeInvalidMatrix, "matrix has more rows than columns")
		}
		if name := strings.TrimSpace(rec[0]); name != names[i] {
			return nil, errors.New(errors.ErrCodeInvalidMatrix, "row %d is %q but column %d is %q", i+1, name, i+1, names[i])
		}
		row := make([]float64, len(names))
		for j, cell := range rec[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidMatrix, err, "line %d column %d", i+2, j+2)
			}
			row[j] = v
		}
		m.D = append(m.D, row)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// ImportMatrix reads a CSV distance matrix from a file.
func ImportMatrix(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataUnavailable, err, "open matrix")
	}
	defer f.Close()
	return ReadMatrix(f)
}
