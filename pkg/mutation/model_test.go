package mutation

import (
	"math"
	"testing"

	"github.com/thoree/pedtools/pkg/errors"
)

func rowSum(row []float64) float64 {
	sum := 0.0
	for _, v := range row {
		sum += v
	}
	return sum
}

func TestEqualModel(t *testing.T) {
	m, err := New(Spec{Model: ModelEqual, Rate: 0.02}, []string{"a", "b", "c"}, nil)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	matrix := m.Matrix()
	if matrix[0][0] != 0.98 {
		t.Errorf("diagonal = %g, want 0.98", matrix[0][0])
	}
	if matrix[0][1] != 0.01 {
		t.Errorf("off-diagonal = %g, want 0.01", matrix[0][1])
	}
	for i, row := range matrix {
		if math.Round(rowSum(row)*1000) != 1000 {
			t.Errorf("row %d sums to %g", i, rowSum(row))
		}
	}
}

func TestEqualModelSingleAllele(t *testing.T) {
	m, err := New(Spec{Model: ModelEqual, Rate: 0.5}, []string{"a"}, nil)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if got := m.Matrix(); got[0][0] != 1 {
		t.Errorf("matrix = %v, want [[1]]", got)
	}
}

func TestProportionalModel(t *testing.T) {
	freq := []float64{0.2, 0.8}
	m, err := New(Spec{Model: ModelProportional, Rate: 0.1}, []string{"a", "b"}, freq)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	matrix := m.Matrix()
	// Off-diagonal (a, b) = rate * freq[b].
	if got := matrix[0][1]; math.Abs(got-0.08) > 1e-12 {
		t.Errorf("matrix[0][1] = %g, want 0.08", got)
	}
	// Diagonal (a, a) = 1 - rate*(1-freq[a]).
	if got := matrix[0][0]; math.Abs(got-0.92) > 1e-12 {
		t.Errorf("matrix[0][0] = %g, want 0.92", got)
	}

	// Frequency vector must match the allele count.
	_, err = New(Spec{Model: ModelProportional, Rate: 0.1}, []string{"a", "b"}, []float64{1})
	if !errors.Is(err, errors.ErrCodeMutationModel) {
		t.Errorf("short freq error = %v, want MUTATION_MODEL", err)
	}
}

func TestStepwiseModel(t *testing.T) {
	m, err := New(Spec{Model: ModelStepwise, Rate: 0.1}, []string{"12", "13", "14"}, nil)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	matrix := m.Matrix()
	// Boundary allele pushes the whole rate inward.
	if matrix[0][1] != 0.1 || matrix[0][2] != 0 {
		t.Errorf("boundary row = %v", matrix[0])
	}
	// Interior allele splits the rate between neighbours.
	if matrix[1][0] != 0.05 || matrix[1][2] != 0.05 {
		t.Errorf("interior row = %v", matrix[1])
	}

	// Non-numeric alleles are rejected.
	_, err = New(Spec{Model: ModelStepwise, Rate: 0.1}, []string{"a", "b"}, nil)
	if !errors.Is(err, errors.ErrCodeMutationModel) {
		t.Errorf("non-numeric stepwise error = %v, want MUTATION_MODEL", err)
	}
}

func TestCustomModel(t *testing.T) {
	matrix := [][]float64{{0.9, 0.1}, {0.2, 0.8}}
	m, err := New(Spec{
		Model:  ModelCustom,
		Matrix: matrix,
		Labels: []string{"a", "b"},
	}, []string{"a", "b"}, nil)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if got := m.Matrix(); got[1][0] != 0.2 {
		t.Errorf("matrix[1][0] = %g, want 0.2", got[1][0])
	}

	// Labels must match the allele set in order.
	_, err = New(Spec{
		Model:  ModelCustom,
		Matrix: matrix,
		Labels: []string{"b", "a"},
	}, []string{"a", "b"}, nil)
	if !errors.Is(err, errors.ErrCodeMutationModel) {
		t.Errorf("misordered labels error = %v, want MUTATION_MODEL", err)
	}
}

func TestNewRejections(t *testing.T) {
	if _, err := New(Spec{Model: ModelEqual, Rate: 0.1}, nil, nil); !errors.Is(err, errors.ErrCodeMutationModel) {
		t.Errorf("empty alleles error = %v, want MUTATION_MODEL", err)
	}
	if _, err := New(Spec{Model: ModelEqual, Rate: 1.5}, []string{"a"}, nil); !errors.Is(err, errors.ErrCodeMutationModel) {
		t.Errorf("rate > 1 error = %v, want MUTATION_MODEL", err)
	}
	if _, err := New(Spec{Model: "bogus", Rate: 0.1}, []string{"a"}, nil); !errors.Is(err, errors.ErrCodeMutationModel) {
		t.Errorf("unknown model error = %v, want MUTATION_MODEL", err)
	}
}

func TestCheckMatrix(t *testing.T) {
	alleles := []string{"a", "b"}
	good := [][]float64{{0.9, 0.1}, {0.1, 0.9}}

	if err := CheckMatrix(good, alleles, alleles, "M1"); err != nil {
		t.Errorf("CheckMatrix(valid) error: %v", err)
	}

	tests := []struct {
		name   string
		matrix [][]float64
		names  []string
	}{
		{"wrong row count", [][]float64{{1}}, alleles},
		{"ragged row", [][]float64{{0.9, 0.1}, {1}}, alleles},
		{"wrong names", good, []string{"a", "c"}},
		{"bad row sum", [][]float64{{0.9, 0.2}, {0.1, 0.9}}, alleles},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CheckMatrix(tt.matrix, tt.names, alleles, "M1"); !errors.Is(err, errors.ErrCodeMutationModel) {
				t.Errorf("CheckMatrix error = %v, want MUTATION_MODEL", err)
			}
		})
	}
}

func TestRowSumTolerance(t *testing.T) {
	// Rows summing to 1.0004 round to 1.000 and pass; 1.001 does not.
	pass := [][]float64{{0.5002, 0.5002}, {0.5, 0.5}}
	if err := CheckMatrix(pass, []string{"a", "b"}, []string{"a", "b"}, ""); err != nil {
		t.Errorf("sum 1.0004 should pass 3-decimal rounding: %v", err)
	}

	fail := [][]float64{{0.5005, 0.5005}, {0.5, 0.5}}
	if err := CheckMatrix(fail, []string{"a", "b"}, []string{"a", "b"}, ""); err == nil {
		t.Error("sum 1.001 should fail 3-decimal rounding")
	}
}
