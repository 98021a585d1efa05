// Package mutation builds and validates mutation models for genetic markers.
//
// A mutation model is a transition matrix over a marker's allele set: entry
// (i, j) is the probability that allele i mutates to allele j in one meiosis.
// The marker package consults this package only through [New] and
// [Model.Validate]; the model internals are opaque to the data model.
//
// Four model kinds are supported:
//
//   - equal: every allele mutates with the same rate, spread uniformly
//     over the other alleles
//   - proportional: mutation targets are drawn proportionally to their
//     population frequencies
//   - stepwise: mutation moves to neighbouring alleles only, which requires
//     all allele labels to be numeric
//   - custom: a caller-supplied matrix, checked against the allele set
package mutation

import (
	"math"
	"strconv"
	"strings"

	"github.com/thoree/pedtools/pkg/errors"
)

// Model kind names accepted in [Spec.Model].
const (
	ModelEqual        = "equal"
	ModelProportional = "proportional"
	ModelStepwise     = "stepwise"
	ModelCustom       = "custom"
)

// Spec describes a mutation model to build.
type Spec struct {
	// Model is one of the Model* kind names.
	Model string

	// Rate is the overall per-meiosis mutation rate, in [0, 1].
	// Ignored for custom models.
	Rate float64

	// Matrix and Labels supply a custom transition matrix. Labels must equal
	// the marker's allele set in the same order. Only used when Model is
	// ModelCustom.
	Matrix [][]float64
	Labels []string
}

// Model is a validated mutation model bound to a specific allele set.
type Model struct {
	name    string
	rate    float64
	alleles []string
	matrix  [][]float64
}

// New builds a mutation model for the given allele set and frequency vector.
// The frequencies are those of the owning marker's allele table, in the same
// canonical order as alleles.
func New(spec Spec, alleles []string, freq []float64) (*Model, error) {
	n := len(alleles)
	if n == 0 {
		return nil, errors.New(errors.ErrCodeMutationModel, "empty allele set")
	}
	if spec.Model != ModelCustom && (spec.Rate < 0 || spec.Rate > 1) {
		return nil, errors.New(errors.ErrCodeMutationModel,
			"mutation rate %g outside [0, 1]", spec.Rate)
	}

	m := &Model{
		name:    spec.Model,
		rate:    spec.Rate,
		alleles: append([]string(nil), alleles...),
	}

	switch spec.Model {
	case ModelEqual:
		m.matrix = equalMatrix(n, spec.Rate)
	case ModelProportional:
		if len(freq) != n {
			return nil, errors.New(errors.ErrCodeMutationModel,
				"frequency vector has length %d, want %d", len(freq), n)
		}
		m.matrix = proportionalMatrix(freq, spec.Rate)
	case ModelStepwise:
		if !allNumeric(alleles) {
			return nil, errors.New(errors.ErrCodeMutationModel,
				"stepwise model requires numeric alleles, got %s", strings.Join(alleles, ", "))
		}
		m.matrix = stepwiseMatrix(n, spec.Rate)
	case ModelCustom:
		if err := CheckMatrix(spec.Matrix, spec.Labels, alleles, spec.Model); err != nil {
			return nil, err
		}
		m.matrix = cloneMatrix(spec.Matrix)
	default:
		return nil, errors.New(errors.ErrCodeMutationModel,
			"unknown mutation model %q", spec.Model)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Name returns the model kind name.
func (m *Model) Name() string { return m.name }

// Rate returns the overall mutation rate the model was built with.
func (m *Model) Rate() float64 { return m.rate }

// Alleles returns a copy of the allele set the model is bound to.
func (m *Model) Alleles() []string { return append([]string(nil), m.alleles...) }

// Matrix returns a copy of the transition matrix.
func (m *Model) Matrix() [][]float64 { return cloneMatrix(m.matrix) }

// Validate checks internal consistency of the model: the matrix must be
// square over the allele set, every entry a probability, and every row must
// sum to 1.000 at 3-decimal rounding.
func (m *Model) Validate() error {
	if err := checkDims(m.matrix, len(m.alleles), m.name); err != nil {
		return err
	}
	for i, row := range m.matrix {
		sum := 0.0
		for _, v := range row {
			if v < 0 || v > 1 {
				return errors.New(errors.ErrCodeMutationModel,
					"%s model: entry (%s, ...) = %g is not a probability", m.name, m.alleles[i], v)
			}
			sum += v
		}
		if !sumsToOne(sum) {
			return errors.New(errors.ErrCodeMutationModel,
				"%s model: row %s sums to %g, want 1", m.name, m.alleles[i], sum)
		}
	}
	return nil
}

// CheckMatrix validates a candidate transition matrix against an allele set:
// the matrix must be square with dimensions equal to the allele count, the
// row/column names must exactly equal (and be ordered identically to) the
// alleles, and every row must sum to 1.000 at 3-decimal rounding. id is used
// as context in error messages.
func CheckMatrix(matrix [][]float64, names, alleles []string, id string) error {
	if id == "" {
		id = "mutation matrix"
	}
	if err := checkDims(matrix, len(alleles), id); err != nil {
		return err
	}
	if len(names) != len(alleles) {
		return errors.New(errors.ErrCodeMutationModel,
			"%s: %d dimension names, want %d", id, len(names), len(alleles))
	}
	for i, name := range names {
		if name != alleles[i] {
			return errors.New(errors.ErrCodeMutationModel,
				"%s: dimension name %q at index %d, want allele %q", id, name, i, alleles[i])
		}
	}
	for i, row := range matrix {
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		if !sumsToOne(sum) {
			return errors.New(errors.ErrCodeMutationModel,
				"%s: row %s sums to %g, want 1", id, alleles[i], sum)
		}
	}
	return nil
}

func checkDims(matrix [][]float64, n int, id string) error {
	if len(matrix) != n {
		return errors.New(errors.ErrCodeMutationModel,
			"%s: %d rows, want %d", id, len(matrix), n)
	}
	for i, row := range matrix {
		if len(row) != n {
			return errors.New(errors.ErrCodeMutationModel,
				"%s: row %d has %d columns, want %d", id, i+1, len(row), n)
		}
	}
	return nil
}

// sumsToOne reports whether sum rounds to exactly 1.000 at 3 decimals.
// The 3-decimal tolerance is deliberate; downstream numeric behavior depends
// on it.
func sumsToOne(sum float64) bool {
	return math.Round(sum*1000) == 1000
}

// equalMatrix spreads the rate uniformly over the other alleles.
func equalMatrix(n int, rate float64) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			if i == j {
				m[i][j] = 1 - rate
			} else {
				m[i][j] = rate / float64(n-1)
			}
		}
	}
	if n == 1 {
		m[0][0] = 1
	}
	return m
}

// proportionalMatrix draws mutation targets proportionally to their
// frequencies: off-diagonal (i, j) = rate * freq[j], diagonal chosen so each
// row sums to 1.
func proportionalMatrix(freq []float64, rate float64) [][]float64 {
	n := len(freq)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			if i == j {
				m[i][j] = 1 - rate*(1-freq[i])
			} else {
				m[i][j] = rate * freq[j]
			}
		}
	}
	return m
}

// stepwiseMatrix moves the rate to the immediate neighbours: interior
// alleles split it evenly, boundary alleles push it all one way.
func stepwiseMatrix(n int, rate float64) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	if n == 1 {
		m[0][0] = 1
		return m
	}
	for i := 0; i < n; i++ {
		switch {
		case i == 0:
			m[i][i] = 1 - rate
			m[i][i+1] = rate
		case i == n-1:
			m[i][i] = 1 - rate
			m[i][i-1] = rate
		default:
			m[i][i] = 1 - rate
			m[i][i-1] = rate / 2
			m[i][i+1] = rate / 2
		}
	}
	return m
}

func allNumeric(labels []string) bool {
	for _, s := range labels {
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return false
		}
	}
	return true
}

func cloneMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
