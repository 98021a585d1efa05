package marker

import (
	"math"
	"sort"
	"strings"

	"github.com/thoree/pedtools/pkg/errors"
	"github.com/thoree/pedtools/pkg/mutation"
	"github.com/thoree/pedtools/pkg/pedigree"
)

// Assignment maps one pedigree member to a genotype given in allele labels.
//
// ID is the member's label; an empty ID means the assignment applies
// positionally (the k-th assignment to the k-th member). Genotype has length
// 1 or 2: a single value is either a compound "a/b" string or a homozygous
// genotype duplicated into both columns.
type Assignment struct {
	ID       string
	Genotype []string
}

// Config collects the inputs to [New]. Exactly one of Genotypes and Matrix
// may be populated; all other fields are optional.
type Config struct {
	// Genotypes assigns genotypes to individual members.
	Genotypes []Assignment

	// Matrix is a raw label-space genotype table: one row per pedigree
	// member, exactly two columns.
	Matrix [][]string

	// Alleles fixes the allele set explicitly. Any observed genotype value
	// outside this set (and outside Missing) is an error.
	Alleles []string

	// Freq gives allele frequencies positionally, aligned with Alleles as
	// written (before canonical sorting), or with the observed allele
	// sequence when Alleles is omitted.
	Freq []float64

	// AlleleFreq gives frequencies keyed by allele label. When Alleles is
	// omitted, its keys define the allele set.
	AlleleFreq map[string]float64

	// Name is the marker name; must not be purely numeric.
	Name string

	// Chrom is the chromosome label. "23" and "X" (any case) are recognized
	// as the human X chromosome.
	Chrom string

	// Missing lists the tokens treated as missing genotype values.
	// Defaults to DefaultMissing.
	Missing []string

	// Mutation, if set, attaches a mutation model built with the final
	// canonicalized alleles and frequencies.
	Mutation *mutation.Spec

	// SkipValidation skips the final invariant check. Validate can be run
	// later; it always fails hard.
	SkipValidation bool
}

// Marker is a genotyped locus attached to a pedigree.
//
// The genotype table holds two 1-based allele codes per member, 0 meaning
// missing. pedMembers and sexes are an immutable snapshot of the owning
// pedigree taken at construction; a Marker does not track later changes to
// its pedigree.
type Marker struct {
	table     *AlleleTable
	genotypes [][2]int

	name  string
	chrom string
	posMb float64 // NaN when unset
	posCm float64 // NaN when unset

	model *mutation.Model

	pedMembers []string
	sexes      []pedigree.Sex
}

// New constructs a Marker for the given pedigree.
//
// The genotype source is either cfg.Matrix (a two-column label-space table
// with one row per member) or cfg.Genotypes (per-member assignments); an
// empty source yields an all-missing marker. See [Config] for the allele
// and frequency resolution rules.
func New(ped *pedigree.Ped, cfg Config) (*Marker, error) {
	missing := cfg.Missing
	if missing == nil {
		missing = DefaultMissing
	}

	raw, err := rawGenotypes(ped, cfg)
	if err != nil {
		return nil, err
	}

	table, err := resolveAlleles(raw, cfg, missing)
	if err != nil {
		return nil, err
	}

	m := &Marker{
		table:      table,
		genotypes:  make([][2]int, ped.Size()),
		name:       cfg.Name,
		chrom:      cfg.Chrom,
		posMb:      math.NaN(),
		posCm:      math.NaN(),
		pedMembers: ped.Labels(),
		sexes:      ped.Sexes(),
	}

	for i, row := range raw {
		for c := 0; c < 2; c++ {
			if isMissingToken(row[c], missing) {
				continue
			}
			m.genotypes[i][c] = table.Index(row[c])
		}
	}

	if cfg.Mutation != nil {
		model, err := mutation.New(*cfg.Mutation, table.Alleles(), table.Freq())
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMutationModel, err,
				"building mutation model for marker %s", m.displayName())
		}
		m.model = model
	}

	if !cfg.SkipValidation {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// rawGenotypes produces the label-space genotype table from the config.
func rawGenotypes(ped *pedigree.Ped, cfg Config) ([][2]string, error) {
	if cfg.Matrix != nil && cfg.Genotypes != nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"supply either a genotype matrix or genotype assignments, not both")
	}

	n := ped.Size()
	raw := make([][2]string, n)

	if cfg.Matrix != nil {
		if len(cfg.Matrix) != n {
			return nil, errors.New(errors.ErrCodeShapeMismatch,
				"genotype matrix has %d rows, pedigree has %d members", len(cfg.Matrix), n)
		}
		for i, row := range cfg.Matrix {
			if len(row) != 2 {
				return nil, errors.New(errors.ErrCodeShapeMismatch,
					"genotype matrix row %d has %d columns, want 2", i+1, len(row))
			}
			raw[i] = [2]string{row[0], row[1]}
		}
		return raw, nil
	}

	if len(cfg.Genotypes) > n {
		return nil, errors.New(errors.ErrCodeCountMismatch,
			"%d genotype assignments for %d pedigree members", len(cfg.Genotypes), n)
	}

	positional := true
	for _, a := range cfg.Genotypes {
		if a.ID != "" {
			positional = false
			break
		}
	}

	for k, a := range cfg.Genotypes {
		pos := k + 1
		if !positional {
			if a.ID == "" {
				return nil, errors.New(errors.ErrCodeInvalidArgument,
					"genotype assignment %d has no member id while others do", k+1)
			}
			ids, err := ped.InternalID([]string{a.ID}, true)
			if err != nil {
				return nil, err
			}
			pos = ids[0]
		}

		gt, err := parseGenotype(a.Genotype)
		if err != nil {
			return nil, err
		}
		raw[pos-1] = gt
	}
	return raw, nil
}

// parseGenotype normalizes an assignment genotype to two allele labels.
// A single value is split on "/" when compound, otherwise duplicated.
func parseGenotype(g []string) ([2]string, error) {
	switch len(g) {
	case 1:
		if strings.Contains(g[0], "/") {
			parts := strings.Split(g[0], "/")
			if len(parts) != 2 {
				return [2]string{}, errors.New(errors.ErrCodeInvalidArgument,
					"compound genotype %q must have exactly two alleles", g[0])
			}
			return [2]string{parts[0], parts[1]}, nil
		}
		return [2]string{g[0], g[0]}, nil
	case 2:
		return [2]string{g[0], g[1]}, nil
	}
	return [2]string{}, errors.New(errors.ErrCodeInvalidArgument,
		"genotype %v has length %d, want 1 or 2", g, len(g))
}

// resolveAlleles determines the allele set and frequency vector per the
// resolution order: explicit alleles, AlleleFreq keys, observed values,
// default {"1", "2"}.
func resolveAlleles(raw [][2]string, cfg Config, missing []string) (*AlleleTable, error) {
	if cfg.Freq != nil && cfg.AlleleFreq != nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"supply either a positional or a keyed frequency vector, not both")
	}

	var alleles []string
	explicit := false
	switch {
	case cfg.Alleles != nil:
		alleles = append([]string(nil), cfg.Alleles...)
		explicit = true
	case cfg.AlleleFreq != nil:
		alleles = make([]string, 0, len(cfg.AlleleFreq))
		for a := range cfg.AlleleFreq {
			alleles = append(alleles, a)
		}
		sort.Strings(alleles)
		explicit = true
	default:
		alleles = observedAlleles(raw, missing)
		if len(alleles) == 0 {
			alleles = []string{"1", "2"}
		}
	}

	if explicit {
		if bad := unknownValues(raw, alleles, missing); len(bad) != 0 {
			name := cfg.Name
			if name == "" {
				name = "unnamed marker"
			}
			return nil, errors.New(errors.ErrCodeInvalidAllele,
				"%s: genotype value(s) %s outside the allele set %s",
				name, strings.Join(bad, ", "), strings.Join(alleles, ", "))
		}
	}

	var freq []float64
	switch {
	case cfg.AlleleFreq != nil:
		freq = make([]float64, len(alleles))
		for i, a := range alleles {
			f, ok := cfg.AlleleFreq[a]
			if !ok {
				return nil, errors.New(errors.ErrCodeAlleleFrequency,
					"no frequency for allele %q", a)
			}
			freq[i] = f
		}
	case cfg.Freq != nil:
		if len(cfg.Freq) != len(alleles) {
			return nil, errors.New(errors.ErrCodeAlleleFrequency,
				"%d frequencies for %d alleles", len(cfg.Freq), len(alleles))
		}
		freq = append([]float64(nil), cfg.Freq...)
	default:
		freq = UniformFreq(len(alleles))
	}

	return NewAlleleTable(alleles, freq)
}

// observedAlleles collects the distinct non-missing genotype values in
// first-appearance order.
func observedAlleles(raw [][2]string, missing []string) []string {
	var alleles []string
	seen := make(map[string]bool)
	for _, row := range raw {
		for c := 0; c < 2; c++ {
			v := row[c]
			if isMissingToken(v, missing) || seen[v] {
				continue
			}
			seen[v] = true
			alleles = append(alleles, v)
		}
	}
	return alleles
}

// unknownValues returns the distinct non-missing genotype values outside the
// allele set, sorted.
func unknownValues(raw [][2]string, alleles, missing []string) []string {
	valid := make(map[string]bool, len(alleles))
	for _, a := range alleles {
		valid[a] = true
	}
	seen := make(map[string]bool)
	var bad []string
	for _, row := range raw {
		for c := 0; c < 2; c++ {
			v := row[c]
			if isMissingToken(v, missing) || valid[v] || seen[v] {
				continue
			}
			seen[v] = true
			bad = append(bad, v)
		}
	}
	sort.Strings(bad)
	return bad
}

func (m *Marker) displayName() string {
	if m.name != "" {
		return m.name
	}
	return "unnamed marker"
}
