package pedio

import (
	"fmt"
	"io"
	"strings"

	"github.com/thoree/pedtools/pkg/marker"
	"github.com/thoree/pedtools/pkg/pedigree"
)

// Table converts a pedigree and its markers to a string table: a header row
// followed by one row per member. set may be nil for a pedigree-only table.
//
// Columns are id, father, mother, sex, then one column per marker. Founder
// parents are "0", sex is the 0/1/2 code, and genotype cells are "a1/a2"
// with "-" for each missing side. Downstream consumers parse this layout
// byte for byte; do not change it.
func Table(ped *pedigree.Ped, set *marker.Set) [][]string {
	header := []string{"id", "father", "mother", "sex"}
	var markers []*marker.Marker
	if set != nil {
		markers = set.Markers()
		for i, m := range markers {
			name := m.Name()
			if name == "" {
				name = fmt.Sprintf("m%d", i+1)
			}
			header = append(header, name)
		}
	}

	rows := make([][]string, 0, ped.Size()+1)
	rows = append(rows, header)

	for pos := 1; pos <= ped.Size(); pos++ {
		m := ped.Member(pos)
		row := []string{m.Label, parentLabel(ped, m.Father), parentLabel(ped, m.Mother),
			fmt.Sprintf("%d", int(m.Sex))}
		for _, mk := range markers {
			row = append(row, genotypeCell(mk, pos))
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteTable writes the table of [Table] to w, tab-separated.
func WriteTable(w io.Writer, ped *pedigree.Ped, set *marker.Set) error {
	if set != nil {
		if err := set.Check(ped); err != nil {
			return err
		}
	}
	for _, row := range Table(ped, set) {
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}

func parentLabel(ped *pedigree.Ped, pos int) string {
	if pos == 0 {
		return "0"
	}
	return ped.Member(pos).Label
}

// genotypeCell formats a genotype strictly as "a1/a2", never hemizygous.
func genotypeCell(m *marker.Marker, pos int) string {
	a1, a2 := m.GenotypeLabels(pos)
	if a1 == "" {
		a1 = "-"
	}
	if a2 == "" {
		a2 = "-"
	}
	return a1 + "/" + a2
}
