package pedigree_test

import (
	"fmt"

	"github.com/thoree/pedtools/pkg/pedigree"
)

func ExampleNew() {
	// A nuclear family: two founders and their son.
	ped, _ := pedigree.New(
		pedigree.Member{Label: "fa", Sex: pedigree.Male},
		pedigree.Member{Label: "mo", Sex: pedigree.Female},
		pedigree.Member{Label: "boy", Father: 1, Mother: 2, Sex: pedigree.Male},
	)

	fmt.Println(ped)
	fmt.Println("Ordered:", ped.HasParentsBeforeChildren())
	// Output:
	// Ped(3 members, 2 founders)
	// Ordered: true
}

func ExamplePed_ParentsBeforeChildren() {
	// The child is listed before its parents.
	ped, _ := pedigree.New(
		pedigree.Member{Label: "boy", Father: 2, Mother: 3, Sex: pedigree.Male},
		pedigree.Member{Label: "fa", Sex: pedigree.Male},
		pedigree.Member{Label: "mo", Sex: pedigree.Female},
	)

	sorted, _ := ped.ParentsBeforeChildren()
	fmt.Println(sorted.Labels())
	// Output:
	// [fa mo boy]
}

func ExamplePed_Reorder() {
	ped, _ := pedigree.New(
		pedigree.Member{Label: "fa", Sex: pedigree.Male},
		pedigree.Member{Label: "mo", Sex: pedigree.Female},
		pedigree.Member{Label: "boy", Father: 1, Mother: 2, Sex: pedigree.Male},
	)

	// Reverse the storage order; parent links follow the members.
	reversed, _ := ped.Reorder([]int{3, 2, 1})
	fmt.Println(reversed.Labels())
	fmt.Println("Father of boy:", reversed.Member(reversed.FatherOf(1)).Label)
	// Output:
	// [boy mo fa]
	// Father of boy: fa
}
