package marker

import (
	"sort"
	"strings"

	"github.com/thoree/pedtools/pkg/errors"
	"github.com/thoree/pedtools/pkg/pedigree"
)

// Set is an ordered collection of markers attached to one pedigree. Every
// operation verifies that each marker's genotype row count matches the
// pedigree size; a Set never holds markers of mixed row counts.
//
// Like pedigrees, sets are immutable by convention: Replace, Append, Select
// and Remove return a new *Set.
type Set struct {
	markers []*Marker
}

// NewSet creates a marker set attached to ped.
func NewSet(ped *pedigree.Ped, markers ...*Marker) (*Set, error) {
	s := &Set{markers: append([]*Marker(nil), markers...)}
	if err := s.Check(ped); err != nil {
		return nil, err
	}
	return s, nil
}

// Check verifies that every marker's row count equals the pedigree size.
func (s *Set) Check(ped *pedigree.Ped) error {
	for i, m := range s.markers {
		if m.RowCount() != ped.Size() {
			return errors.New(errors.ErrCodeCountMismatch,
				"marker %d (%s) has %d genotype rows, pedigree has %d members",
				i+1, m.displayName(), m.RowCount(), ped.Size())
		}
	}
	return nil
}

// Len returns the number of markers.
func (s *Set) Len() int { return len(s.markers) }

// Markers returns the markers in order. The slice is a copy; the markers
// themselves are shared.
func (s *Set) Markers() []*Marker {
	return append([]*Marker(nil), s.markers...)
}

// Marker returns the marker at 1-based index i.
func (s *Set) Marker(i int) (*Marker, error) {
	if i < 1 || i > len(s.markers) {
		return nil, errors.New(errors.ErrCodeNotFound,
			"marker index %d outside 1..%d", i, len(s.markers))
	}
	return s.markers[i-1], nil
}

// Names returns the marker names in order; unnamed markers yield "".
func (s *Set) Names() []string {
	names := make([]string, len(s.markers))
	for i, m := range s.markers {
		names[i] = m.name
	}
	return names
}

// ByName returns the first marker with the given name.
func (s *Set) ByName(name string) (*Marker, bool) {
	for _, m := range s.markers {
		if m.name == name && name != "" {
			return m, true
		}
	}
	return nil, false
}

// Replace returns a set holding only the given markers, validated against ped.
func (s *Set) Replace(ped *pedigree.Ped, markers ...*Marker) (*Set, error) {
	return NewSet(ped, markers...)
}

// Append returns a set with the given markers added after the existing ones,
// validated against ped.
func (s *Set) Append(ped *pedigree.Ped, markers ...*Marker) (*Set, error) {
	combined := make([]*Marker, 0, len(s.markers)+len(markers))
	combined = append(combined, s.markers...)
	combined = append(combined, markers...)
	return NewSet(ped, combined...)
}

// Selection identifies a subset of a marker set by 1-based indices, names,
// or a chromosome filter. The criteria are combined with OR.
type Selection struct {
	Indices []int
	Names   []string
	Chrom   string
}

// resolve returns the sorted, deduplicated 1-based indices matched by sel.
func (s *Set) resolve(sel Selection) ([]int, error) {
	picked := make(map[int]bool)

	for _, i := range sel.Indices {
		if i < 1 || i > len(s.markers) {
			return nil, errors.New(errors.ErrCodeNotFound,
				"marker index %d outside 1..%d", i, len(s.markers))
		}
		picked[i] = true
	}

	for _, name := range sel.Names {
		found := false
		for i, m := range s.markers {
			if m.name == name && name != "" {
				picked[i+1] = true
				found = true
			}
		}
		if !found {
			return nil, errors.New(errors.ErrCodeNotFound, "no marker named %q", name)
		}
	}

	if sel.Chrom != "" {
		for i, m := range s.markers {
			if chromMatches(m.chrom, sel.Chrom) {
				picked[i+1] = true
			}
		}
	}

	indices := make([]int, 0, len(picked))
	for i := range picked {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices, nil
}

// chromMatches compares chromosome labels, treating "23" and "X" (any case)
// as the same chromosome.
func chromMatches(a, b string) bool {
	if strings.EqualFold(a, b) {
		return true
	}
	xish := func(s string) bool { return s == "23" || strings.EqualFold(s, "X") }
	return xish(a) && xish(b)
}

// Select returns a set holding the markers matched by sel, in their
// original order.
func (s *Set) Select(sel Selection) (*Set, error) {
	indices, err := s.resolve(sel)
	if err != nil {
		return nil, err
	}
	markers := make([]*Marker, len(indices))
	for k, i := range indices {
		markers[k] = s.markers[i-1]
	}
	return &Set{markers: markers}, nil
}

// Remove returns a set without the markers matched by sel.
func (s *Set) Remove(sel Selection) (*Set, error) {
	indices, err := s.resolve(sel)
	if err != nil {
		return nil, err
	}
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}
	var markers []*Marker
	for i, m := range s.markers {
		if !drop[i+1] {
			markers = append(markers, m)
		}
	}
	return &Set{markers: markers}, nil
}

// OnChromosome returns the markers on the given chromosome, in order.
func (s *Set) OnChromosome(chrom string) *Set {
	var markers []*Marker
	for _, m := range s.markers {
		if chromMatches(m.chrom, chrom) {
			markers = append(markers, m)
		}
	}
	return &Set{markers: markers}
}

// Transfer copies the markers of src, attached to the pedigree from, onto
// the pedigree to. Genotypes are copied for individuals present in both
// pedigrees (matched by label); everyone else gets missing genotypes.
// Allele tables, locus metadata, and mutation models carry over unchanged.
func Transfer(src *Set, from, to *pedigree.Ped) (*Set, error) {
	if err := src.Check(from); err != nil {
		return nil, err
	}

	markers := make([]*Marker, len(src.markers))
	for k, m := range src.markers {
		out := &Marker{
			table:      m.table.clone(),
			genotypes:  make([][2]int, to.Size()),
			name:       m.name,
			chrom:      m.chrom,
			posMb:      m.posMb,
			posCm:      m.posCm,
			model:      m.model,
			pedMembers: to.Labels(),
			sexes:      to.Sexes(),
		}
		for i, label := range m.pedMembers {
			if pos := to.Lookup(label); pos != 0 {
				out.genotypes[pos-1] = m.genotypes[i]
			}
		}
		markers[k] = out
	}
	return NewSet(to, markers...)
}
