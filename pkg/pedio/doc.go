// Package pedio reads and writes pedigrees with attached markers.
//
// Two formats are provided:
//
//   - A TOML definition format ([Read], [Write] and the file-based
//     wrappers), which is the format the pedtools CLI works with. It lists
//     members with parent labels and sexes, followed by marker blocks with
//     alleles, frequencies, and genotype assignments.
//
//   - A tab-separated table export ([WriteTable]), one row per member with
//     columns id, father, mother, sex, and one genotype column per marker.
//     This layout is a contract relied on by downstream consumers and must
//     not change: founder parents are written as "0", sex as 0/1/2, and
//     genotype cells as "a/b" with "-" for each missing side.
package pedio
