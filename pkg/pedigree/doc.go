// Package pedigree provides the core pedigree data structure: an ordered
// member list with father/mother relations forming a directed acyclic graph.
//
// # Overview
//
// A pedigree is stored as an ordered sequence of members. Each member has a
// unique label, a sex, and either zero or two parents. Parents are referenced
// by 1-based position into the same sequence, with 0 meaning "no parent".
// Members with no parents are founders; members with two parents are
// nonfounders. A member can never have exactly one recorded parent.
//
// # Basic Usage
//
// Create a pedigree with [New], which validates all structural invariants
// (unique labels, both-or-neither parents, acyclic parentage):
//
//	ped, err := pedigree.New(
//	    pedigree.Member{Label: "fa", Sex: pedigree.Male},
//	    pedigree.Member{Label: "mo", Sex: pedigree.Female},
//	    pedigree.Member{Label: "child", Father: 1, Mother: 2, Sex: pedigree.Female},
//	)
//
// Query the structure with [Ped.FatherOf], [Ped.MotherOf], [Ped.Children],
// [Ped.Founders], and [Ped.Nonfounders]. Resolve labels to positions with
// [Ped.InternalID].
//
// # Ordering
//
// Many traversal algorithms require parents to be stored before their
// children. [Ped.HasParentsBeforeChildren] checks the property in O(N);
// [Ped.ParentsBeforeChildren] establishes it with a single insertion-style
// pass that rotates each member to just after its latest parent.
// [Ped.Reorder] applies an arbitrary permutation.
//
// # Value Semantics
//
// Ped values are immutable by convention: reordering and relabeling return a
// new *Ped and never modify the receiver. Ped instances can therefore be
// shared freely between goroutines for reading.
//
// # Loop Breakers
//
// Pedigrees with mating loops (e.g. consanguinity) are linearized by
// duplicating an individual. The pair of positions (copy, original) is
// recorded with [Ped.SetLoopBreakers] and remapped consistently by every
// reordering operation.
package pedigree
