package pedio

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/thoree/pedtools/pkg/errors"
	"github.com/thoree/pedtools/pkg/marker"
	"github.com/thoree/pedtools/pkg/mutation"
	"github.com/thoree/pedtools/pkg/pedigree"
)

// document is the TOML shape of a pedigree definition file.
type document struct {
	Members []memberRow   `toml:"member"`
	Markers []markerBlock `toml:"marker"`
}

type memberRow struct {
	ID     string `toml:"id"`
	Father string `toml:"father,omitempty"`
	Mother string `toml:"mother,omitempty"`
	Sex    string `toml:"sex,omitempty"`
}

type markerBlock struct {
	Name     string             `toml:"name,omitempty"`
	Chrom    string             `toml:"chrom,omitempty"`
	PosMb    *float64           `toml:"pos_mb,omitempty"`
	PosCm    *float64           `toml:"pos_cm,omitempty"`
	Alleles  []string           `toml:"alleles,omitempty"`
	Afreq    []float64          `toml:"afreq,omitempty"`
	Genotype map[string]string  `toml:"genotype,omitempty"`
	Mutation *mutationBlock     `toml:"mutation,omitempty"`
}

type mutationBlock struct {
	Model string  `toml:"model"`
	Rate  float64 `toml:"rate"`
}

// Read decodes a TOML pedigree definition from r and returns the pedigree
// and its marker set (empty when the file defines no markers).
func Read(r io.Reader) (*pedigree.Ped, *marker.Set, error) {
	var doc document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode pedigree definition")
	}
	return build(doc)
}

// ReadFile decodes a TOML pedigree definition file.
func ReadFile(path string) (*pedigree.Ped, *marker.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

func build(doc document) (*pedigree.Ped, *marker.Set, error) {
	if len(doc.Members) == 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidFormat, "pedigree definition has no members")
	}

	// First pass: positions by id, so parents can be written in any order.
	pos := make(map[string]int, len(doc.Members))
	for i, row := range doc.Members {
		pos[row.ID] = i + 1
	}

	members := make([]pedigree.Member, len(doc.Members))
	for i, row := range doc.Members {
		sex, err := pedigree.ParseSex(row.Sex)
		if err != nil {
			return nil, nil, err
		}
		m := pedigree.Member{Label: row.ID, Sex: sex}
		if m.Father, err = parentPos(pos, row.Father); err != nil {
			return nil, nil, err
		}
		if m.Mother, err = parentPos(pos, row.Mother); err != nil {
			return nil, nil, err
		}
		members[i] = m
	}

	ped, err := pedigree.New(members...)
	if err != nil {
		return nil, nil, err
	}

	markers := make([]*marker.Marker, len(doc.Markers))
	for i, blk := range doc.Markers {
		m, err := buildMarker(ped, blk)
		if err != nil {
			return nil, nil, err
		}
		markers[i] = m
	}

	set, err := marker.NewSet(ped, markers...)
	if err != nil {
		return nil, nil, err
	}
	return ped, set, nil
}

func parentPos(pos map[string]int, label string) (int, error) {
	if label == "" || label == "0" {
		return 0, nil
	}
	p, ok := pos[label]
	if !ok {
		return 0, errors.New(errors.ErrCodeUnknownMember, "unknown member(s): %s", label)
	}
	return p, nil
}

func buildMarker(ped *pedigree.Ped, blk markerBlock) (*marker.Marker, error) {
	cfg := marker.Config{
		Alleles: blk.Alleles,
		Freq:    blk.Afreq,
		Name:    blk.Name,
		Chrom:   blk.Chrom,
	}
	if blk.Mutation != nil {
		cfg.Mutation = &mutation.Spec{Model: blk.Mutation.Model, Rate: blk.Mutation.Rate}
	}

	// Sort assignment ids for deterministic error reporting.
	ids := make([]string, 0, len(blk.Genotype))
	for id := range blk.Genotype {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		cfg.Genotypes = append(cfg.Genotypes, marker.Assignment{
			ID:       id,
			Genotype: []string{blk.Genotype[id]},
		})
	}

	m, err := marker.New(ped, cfg)
	if err != nil {
		return nil, err
	}
	if blk.PosMb != nil {
		if err := m.SetPosMb(*blk.PosMb); err != nil {
			return nil, err
		}
	}
	if blk.PosCm != nil {
		if err := m.SetPosCm(*blk.PosCm); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Write encodes a pedigree and its markers as a TOML definition to w.
// set may be nil.
func Write(w io.Writer, ped *pedigree.Ped, set *marker.Set) error {
	doc := document{Members: make([]memberRow, ped.Size())}

	for pos := 1; pos <= ped.Size(); pos++ {
		m := ped.Member(pos)
		row := memberRow{ID: m.Label, Sex: m.Sex.String()}
		if m.Father != 0 {
			row.Father = ped.Member(m.Father).Label
		}
		if m.Mother != 0 {
			row.Mother = ped.Member(m.Mother).Label
		}
		doc.Members[pos-1] = row
	}

	if set != nil {
		if err := set.Check(ped); err != nil {
			return err
		}
		for _, m := range set.Markers() {
			blk := markerBlock{
				Name:    m.Name(),
				Chrom:   m.Chrom(),
				Alleles: m.Alleles(),
				Afreq:   m.Freq(),
			}
			if !isNaN(m.PosMb()) {
				v := m.PosMb()
				blk.PosMb = &v
			}
			if !isNaN(m.PosCm()) {
				v := m.PosCm()
				blk.PosCm = &v
			}
			if model := m.Model(); model != nil {
				blk.Mutation = &mutationBlock{Model: model.Name(), Rate: model.Rate()}
			}
			blk.Genotype = make(map[string]string)
			for pos := 1; pos <= m.RowCount(); pos++ {
				a1, a2 := m.GenotypeLabels(pos)
				if a1 == "" && a2 == "" {
					continue
				}
				if a1 == "" {
					a1 = "-"
				}
				if a2 == "" {
					a2 = "-"
				}
				blk.Genotype[ped.Member(pos).Label] = a1 + "/" + a2
			}
			doc.Markers = append(doc.Markers, blk)
		}
	}

	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode pedigree definition")
	}
	return nil
}

// WriteFile encodes a pedigree definition to a TOML file.
func WriteFile(path string, ped *pedigree.Ped, set *marker.Set) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, ped, set)
}

func isNaN(f float64) bool { return f != f }
