// Package marker provides genotype data attached to pedigrees: allele
// tables, per-individual genotype matrices, locus metadata, and ordered
// marker collections.
//
// # Overview
//
// A [Marker] stores two allele codes per pedigree member (0 = missing),
// an [AlleleTable] mapping codes to labels and frequencies, locus metadata
// (name, chromosome, physical and genetic position), and an optional
// mutation model. At construction a marker snapshots the owning pedigree's
// member labels and sexes; it does not observe later changes to the
// pedigree, so reordering a pedigree makes previously built markers stale.
//
// # Construction
//
// Markers are built with [New] from either per-member genotype assignments
// or a raw allele matrix:
//
//	m, err := marker.New(ped, marker.Config{
//	    Genotypes: []marker.Assignment{
//	        {ID: "fa", Genotype: []string{"A"}},
//	        {ID: "mo", Genotype: []string{"A", "B"}},
//	    },
//	})
//
// The allele set is resolved from (in priority order) the explicit Alleles
// field, the keys of AlleleFreq, the distinct values observed in the
// genotype data, or the default {"1", "2"}. Frequencies default to uniform.
//
// # Marker Sets
//
// [Set] is an ordered collection of markers attached to one pedigree; all
// operations verify that every marker's row count matches the pedigree
// size. Construction and reordering return new values; the Set* mutator
// methods on Marker are the only in-place mutations, and callers sharing a
// marker should take a [Marker.Copy] first.
package marker
