// Package pkg provides the core libraries for pedtools pedigree analysis.
//
// # Overview
//
// pedtools models pedigrees (family trees) together with genetic marker data.
// The pkg directory is organized into the following areas:
//
//  1. [pedigree] - Pedigree structure (members, parent links, reordering)
//  2. [marker] - Genetic markers (alleles, frequencies, genotypes)
//  3. [mutation] - Mutation models attached to markers
//  4. [pedio] - Reading and writing pedigree files (TOML, tab-separated tables)
//  5. [plot] - Pedigree diagrams via Graphviz (DOT, SVG, PNG)
//  6. [cache] - File-based caching of rendered plot artifacts
//  7. [errors] - Coded errors shared by all packages
//  8. [observability] - Optional hooks for metrics and tracing
//
// # Architecture
//
// The typical data flow through pedtools:
//
//	pedigree file (TOML)
//	         ↓
//	    [pedio] package (parse members and markers)
//	         ↓
//	    [pedigree] + [marker] packages (validate, reorder, select)
//	         ↓
//	    [plot] package (DOT conversion + Graphviz rendering)
//	         ↓
//	    SVG/PNG/table output
//
// # Quick Start
//
// Build a pedigree, attach a marker, and render it:
//
//	import (
//	    "github.com/thoree/pedtools/pkg/marker"
//	    "github.com/thoree/pedtools/pkg/pedigree"
//	    "github.com/thoree/pedtools/pkg/plot"
//	)
//
//	// 1. Build the pedigree
//	ped, _ := pedigree.New(
//	    pedigree.Member{Label: "fa", Sex: pedigree.Male},
//	    pedigree.Member{Label: "mo", Sex: pedigree.Female},
//	    pedigree.Member{Label: "boy", Father: 1, Mother: 2, Sex: pedigree.Male},
//	)
//
//	// 2. Attach a marker
//	m, _ := marker.New(ped, marker.Config{
//	    Genotypes: []marker.Assignment{{ID: "boy", Genotype: []string{"a", "b"}}},
//	    Name:      "M1",
//	})
//
//	// 3. Render to SVG
//	dot := plot.ToDOT(ped, plot.Options{Marker: m})
//	svg, _ := plot.RenderSVG(dot)
//
// # Main Packages
//
// [pedigree] - The Ped type: an ordered list of members with father/mother
// links, validated on construction (unique labels, both-or-neither parents,
// no cycles). Reordering operations preserve relationships by label.
//
// [marker] - The Marker and Set types: allele tables with canonical ordering,
// genotype storage per member, X-chromosome handling, and marker selection by
// index, name, or chromosome. Transfer copies genotypes between pedigrees by
// member label.
//
// [mutation] - Mutation matrices in the equal, proportional, stepwise, and
// custom parameterizations, validated so every row sums to one.
//
// [pedio] - File formats: a TOML document format for pedigrees with markers,
// and a tab-separated table writer with a stable column contract.
//
// [plot] - DOT conversion and Graphviz rendering. Males draw as boxes,
// females as ellipses, unknown sex as diamonds.
//
// [cache] - Content-addressed file cache keyed by SHA-256, used to skip
// repeated Graphviz renders of the same pedigree.
//
// [errors] - Coded errors (STRUCTURAL_ERROR, INVALID_ALLELE, ...) that
// survive wrapping, plus shared label and name validation.
//
// [observability] - Hook interfaces with no-op defaults for render and cache
// events, registered by main.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...        # All tests
//	go test ./pkg/marker/... # Specific package
//	go test -run Example     # Examples only
//
// [pedigree]: https://pkg.go.dev/github.com/thoree/pedtools/pkg/pedigree
// [marker]: https://pkg.go.dev/github.com/thoree/pedtools/pkg/marker
// [mutation]: https://pkg.go.dev/github.com/thoree/pedtools/pkg/mutation
// [pedio]: https://pkg.go.dev/github.com/thoree/pedtools/pkg/pedio
// [plot]: https://pkg.go.dev/github.com/thoree/pedtools/pkg/plot
// [cache]: https://pkg.go.dev/github.com/thoree/pedtools/pkg/cache
// [errors]: https://pkg.go.dev/github.com/thoree/pedtools/pkg/errors
// [observability]: https://pkg.go.dev/github.com/thoree/pedtools/pkg/observability
package pkg
