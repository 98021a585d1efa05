package marker

import (
	"github.com/thoree/pedtools/pkg/errors"
	"github.com/thoree/pedtools/pkg/mutation"
)

// Validate runs the full marker invariant check, in order: allele labels are
// not missing sentinels, the frequency vector matches the allele count and
// sums to 1.000 at 3-decimal rounding, the name is not purely numeric, the
// pedigree snapshot matches the genotype row count, positions are
// non-negative, and an attached mutation model is internally valid.
//
// Unlike construction with [Config.SkipValidation], Validate always fails
// hard on any violation.
func (m *Marker) Validate() error {
	for _, a := range m.table.alleles {
		if isMissingToken(a, DefaultMissing) {
			return errors.New(errors.ErrCodeInvalidAllele,
				"%s: allele label %q is a missing-value sentinel", m.displayName(), a)
		}
	}

	if err := m.table.Validate(); err != nil {
		return err
	}

	if err := errors.ValidateMarkerName(m.name); err != nil {
		return err
	}

	rows := len(m.genotypes)
	if len(m.pedMembers) != rows || len(m.sexes) != rows {
		return errors.New(errors.ErrCodeShapeMismatch,
			"%s: %d members and %d sexes for %d genotype rows",
			m.displayName(), len(m.pedMembers), len(m.sexes), rows)
	}

	for _, pos := range []float64{m.posMb, m.posCm} {
		if pos < 0 { // NaN compares false, so unset positions pass
			return errors.New(errors.ErrCodeInvalidArgument,
				"%s: negative position %g", m.displayName(), pos)
		}
	}

	if m.model != nil {
		if err := m.model.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeMutationModel, err,
				"mutation model of marker %s", m.displayName())
		}
	}
	return nil
}

// CheckMutationMatrix validates a candidate mutation transition matrix
// against an allele set before it is handed to the mutation-model service:
// square with dimensions equal to the allele count, dimension names exactly
// equal to (and ordered identically to) the alleles, and every row summing
// to 1.000 at 3-decimal rounding. id provides context for error messages
// and may be empty.
func CheckMutationMatrix(matrix [][]float64, names, alleles []string, id string) error {
	return mutation.CheckMatrix(matrix, names, alleles, id)
}
