package marker

import (
	"math"
	"strings"

	"github.com/thoree/pedtools/pkg/errors"
	"github.com/thoree/pedtools/pkg/mutation"
	"github.com/thoree/pedtools/pkg/pedigree"
)

// Name returns the marker name, possibly empty.
func (m *Marker) Name() string { return m.name }

// Chrom returns the chromosome label, possibly empty.
func (m *Marker) Chrom() string { return m.chrom }

// IsXLinked reports whether the marker is on the human X chromosome,
// recognized as chrom "23" or "X" (any case).
func (m *Marker) IsXLinked() bool {
	return m.chrom == "23" || strings.EqualFold(m.chrom, "X")
}

// PosMb returns the physical position in megabases, or NaN when unset.
func (m *Marker) PosMb() float64 { return m.posMb }

// PosCm returns the genetic position in centimorgans, or NaN when unset.
func (m *Marker) PosCm() float64 { return m.posCm }

// Alleles returns the canonical allele labels.
func (m *Marker) Alleles() []string { return m.table.Alleles() }

// Freq returns the allele frequencies in canonical order.
func (m *Marker) Freq() []float64 { return m.table.Freq() }

// NAlleles returns the number of alleles.
func (m *Marker) NAlleles() int { return m.table.Len() }

// AlleleTable returns the marker's allele table.
func (m *Marker) AlleleTable() *AlleleTable { return m.table }

// Model returns the attached mutation model, or nil.
func (m *Marker) Model() *mutation.Model { return m.model }

// RowCount returns the number of genotype rows (= pedigree size at
// construction).
func (m *Marker) RowCount() int { return len(m.genotypes) }

// PedMembers returns the snapshot of member labels taken at construction.
func (m *Marker) PedMembers() []string {
	return append([]string(nil), m.pedMembers...)
}

// Sexes returns the snapshot of member sexes taken at construction.
func (m *Marker) Sexes() []pedigree.Sex {
	return append([]pedigree.Sex(nil), m.sexes...)
}

// Genotype returns the two allele codes of the member at 1-based position
// pos; 0 means missing.
func (m *Marker) Genotype(pos int) [2]int { return m.genotypes[pos-1] }

// GenotypeLabels returns the two allele labels of the member at pos;
// missing sides are returned as "".
func (m *Marker) GenotypeLabels(pos int) (string, string) {
	g := m.genotypes[pos-1]
	return m.table.Label(g[0]), m.table.Label(g[1])
}

// GenotypeString formats the genotype of the member at pos for display:
// "a/b", with "-" for each missing side. Males on the X chromosome are
// shown hemizygous (a single allele) when both sides agree.
func (m *Marker) GenotypeString(pos int) string {
	a1, a2 := m.GenotypeLabels(pos)
	if a1 == "" {
		a1 = "-"
	}
	if a2 == "" {
		a2 = "-"
	}
	if m.IsXLinked() && m.sexes[pos-1] == pedigree.Male && a1 == a2 {
		return a1
	}
	return a1 + "/" + a2
}

// Copy returns a deep copy of the marker. The Set* mutators change a marker
// in place, so callers sharing a marker across independent uses must copy
// first.
func (m *Marker) Copy() *Marker {
	out := *m
	out.table = m.table.clone()
	out.genotypes = append([][2]int(nil), m.genotypes...)
	out.pedMembers = append([]string(nil), m.pedMembers...)
	out.sexes = append([]pedigree.Sex(nil), m.sexes...)
	return &out
}

// SetGenotype sets the genotype of the member at 1-based position pos from
// allele labels, in place. Missing sides are given as "" or any
// DefaultMissing token; other labels must be in the allele set.
func (m *Marker) SetGenotype(pos int, a1, a2 string) error {
	if pos < 1 || pos > len(m.genotypes) {
		return errors.New(errors.ErrCodeInvalidArgument,
			"position %d outside 1..%d", pos, len(m.genotypes))
	}
	codes := [2]int{}
	for c, label := range []string{a1, a2} {
		if isMissingToken(label, DefaultMissing) {
			continue
		}
		code := m.table.Index(label)
		if code == 0 {
			return errors.New(errors.ErrCodeInvalidAllele,
				"%s: allele %q outside the allele set %s",
				m.displayName(), label, strings.Join(m.table.alleles, ", "))
		}
		codes[c] = code
	}
	m.genotypes[pos-1] = codes
	return nil
}

// SetFreq replaces the allele frequencies in place. The values are given in
// the marker's canonical allele order and must sum to 1 at 3-decimal
// rounding.
func (m *Marker) SetFreq(freq []float64) error {
	return m.table.setFreq(freq)
}

// SetName renames the marker in place. Purely numeric names are rejected.
func (m *Marker) SetName(name string) error {
	if err := errors.ValidateMarkerName(name); err != nil {
		return err
	}
	m.name = name
	return nil
}

// SetChrom sets the chromosome label in place.
func (m *Marker) SetChrom(chrom string) error {
	m.chrom = chrom
	return nil
}

// SetPosMb sets the physical position in place; it must be non-negative.
func (m *Marker) SetPosMb(pos float64) error {
	if pos < 0 || math.IsNaN(pos) {
		return errors.New(errors.ErrCodeInvalidArgument, "physical position %g must be non-negative", pos)
	}
	m.posMb = pos
	return nil
}

// SetPosCm sets the genetic position in place; it must be non-negative.
func (m *Marker) SetPosCm(pos float64) error {
	if pos < 0 || math.IsNaN(pos) {
		return errors.New(errors.ErrCodeInvalidArgument, "genetic position %g must be non-negative", pos)
	}
	m.posCm = pos
	return nil
}
