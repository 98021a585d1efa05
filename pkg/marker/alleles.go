package marker

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/thoree/pedtools/pkg/errors"
)

// DefaultMissing lists the genotype tokens treated as "missing" when no
// explicit missing set is supplied. There is no process-wide override; every
// construction call receives its missing set explicitly.
var DefaultMissing = []string{"", "0", "-"}

// AlleleTable maps between human-readable allele labels and the dense
// 1-based integer codes used in genotype storage (code 0 is reserved for
// missing). It carries the allele frequency vector in parallel order.
//
// The label sequence is canonical: if every label parses as a number the
// alleles are sorted numerically ascending, otherwise lexicographically.
// Two tables built from the same label set therefore order identically.
type AlleleTable struct {
	alleles []string
	freq    []float64
}

// NewAlleleTable creates an allele table from labels and a parallel
// frequency vector, canonicalizing the order of both. Labels must be
// distinct and must not be missing sentinels; frequencies must be
// non-negative and match the label count.
//
// The frequency sum is not checked here; [AlleleTable.Validate] enforces it.
func NewAlleleTable(alleles []string, freq []float64) (*AlleleTable, error) {
	if len(alleles) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "empty allele set")
	}
	if len(freq) != len(alleles) {
		return nil, errors.New(errors.ErrCodeAlleleFrequency,
			"%d frequencies for %d alleles", len(freq), len(alleles))
	}

	seen := make(map[string]bool, len(alleles))
	for _, a := range alleles {
		if isMissingToken(a, DefaultMissing) {
			return nil, errors.New(errors.ErrCodeInvalidAllele,
				"allele label %q is a missing-value sentinel", a)
		}
		if seen[a] {
			return nil, errors.New(errors.ErrCodeInvalidAllele, "duplicate allele label %q", a)
		}
		seen[a] = true
	}
	for i, f := range freq {
		if f < 0 || math.IsNaN(f) {
			return nil, errors.New(errors.ErrCodeAlleleFrequency,
				"negative frequency %g for allele %q", f, alleles[i])
		}
	}

	perm := canonicalOrder(alleles)
	t := &AlleleTable{
		alleles: make([]string, len(alleles)),
		freq:    make([]float64, len(freq)),
	}
	for k, idx := range perm {
		t.alleles[k] = alleles[idx]
		t.freq[k] = freq[idx]
	}
	return t, nil
}

// Validate checks the frequency invariant: the vector length matches the
// allele count and the sum rounds to exactly 1.000 at 3 decimals. The
// rounding tolerance is deliberate and must not be tightened; downstream
// numeric behavior depends on it.
func (t *AlleleTable) Validate() error {
	if len(t.freq) != len(t.alleles) {
		return errors.New(errors.ErrCodeAlleleFrequency,
			"%d frequencies for %d alleles", len(t.freq), len(t.alleles))
	}
	sum := 0.0
	for _, f := range t.freq {
		sum += f
	}
	if math.Round(sum*1000) != 1000 {
		return errors.New(errors.ErrCodeAlleleFrequency,
			"frequencies %s sum to %g, want 1", formatFloats(t.freq), sum)
	}
	return nil
}

// Len returns the number of alleles.
func (t *AlleleTable) Len() int { return len(t.alleles) }

// Alleles returns a copy of the canonical allele labels.
func (t *AlleleTable) Alleles() []string {
	return append([]string(nil), t.alleles...)
}

// Freq returns a copy of the frequency vector in canonical allele order.
func (t *AlleleTable) Freq() []float64 {
	return append([]float64(nil), t.freq...)
}

// Index returns the 1-based code of the given allele label, or 0 if the
// label is not in the table.
func (t *AlleleTable) Index(label string) int {
	for i, a := range t.alleles {
		if a == label {
			return i + 1
		}
	}
	return 0
}

// Label returns the allele label for a 1-based code, or "" for the missing
// code 0 and out-of-range codes.
func (t *AlleleTable) Label(code int) string {
	if code < 1 || code > len(t.alleles) {
		return ""
	}
	return t.alleles[code-1]
}

// FreqOf returns the frequency of the allele with the given 1-based code,
// or 0 for the missing code.
func (t *AlleleTable) FreqOf(code int) float64 {
	if code < 1 || code > len(t.freq) {
		return 0
	}
	return t.freq[code-1]
}

// setFreq replaces the frequency vector. The caller supplies values in the
// table's canonical allele order.
func (t *AlleleTable) setFreq(freq []float64) error {
	if len(freq) != len(t.alleles) {
		return errors.New(errors.ErrCodeAlleleFrequency,
			"%d frequencies for %d alleles", len(freq), len(t.alleles))
	}
	sum := 0.0
	for i, f := range freq {
		if f < 0 || math.IsNaN(f) {
			return errors.New(errors.ErrCodeAlleleFrequency,
				"negative frequency %g for allele %q", f, t.alleles[i])
		}
		sum += f
	}
	if math.Round(sum*1000) != 1000 {
		return errors.New(errors.ErrCodeAlleleFrequency,
			"frequencies %s sum to %g, want 1", formatFloats(freq), sum)
	}
	t.freq = append([]float64(nil), freq...)
	return nil
}

// clone returns a deep copy of the table.
func (t *AlleleTable) clone() *AlleleTable {
	return &AlleleTable{
		alleles: append([]string(nil), t.alleles...),
		freq:    append([]float64(nil), t.freq...),
	}
}

// UniformFreq returns a frequency vector assigning 1/n to each of n alleles.
func UniformFreq(n int) []float64 {
	freq := make([]float64, n)
	for i := range freq {
		freq[i] = 1 / float64(n)
	}
	return freq
}

// canonicalOrder returns the index permutation that sorts alleles into
// canonical order: numerically ascending if every label parses as a number,
// lexicographically otherwise.
func canonicalOrder(alleles []string) []int {
	perm := make([]int, len(alleles))
	for i := range perm {
		perm[i] = i
	}

	numeric := make([]float64, len(alleles))
	allNumeric := true
	for i, a := range alleles {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			allNumeric = false
			break
		}
		numeric[i] = v
	}

	if allNumeric {
		sort.SliceStable(perm, func(a, b int) bool { return numeric[perm[a]] < numeric[perm[b]] })
	} else {
		sort.SliceStable(perm, func(a, b int) bool { return alleles[perm[a]] < alleles[perm[b]] })
	}
	return perm
}

func isMissingToken(s string, missing []string) bool {
	for _, m := range missing {
		if s == m {
			return true
		}
	}
	return false
}

func formatFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}
