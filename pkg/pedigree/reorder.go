package pedigree

import (
	"github.com/thoree/pedtools/pkg/errors"
)

// HasParentsBeforeChildren reports whether every member's recorded parents
// are stored at strictly earlier positions than the member itself. Many
// traversal algorithms over pedigrees require this property. O(N).
func (p *Ped) HasParentsBeforeChildren() bool {
	for i, m := range p.members {
		pos := i + 1
		if m.Father >= pos || m.Mother >= pos {
			return false
		}
	}
	return true
}

// Reorder returns a new pedigree whose member sequence is permuted so that
// the member at new position k is the member at old position perm[k-1].
// All father/mother positions and loop-breaker pairs are remapped through
// the permutation.
//
// perm must be a true permutation of 1..N; otherwise Reorder fails and
// reports the offending sequence. Pedigrees of size 1 and identity
// permutations are returned unchanged without copying.
func (p *Ped) Reorder(perm []int) (*Ped, error) {
	n := len(p.members)
	if n == 1 {
		return p, nil
	}

	if err := checkPermutation(perm, n); err != nil {
		return nil, err
	}

	identity := true
	for k, pos := range perm {
		if pos != k+1 {
			identity = false
			break
		}
	}
	if identity {
		return p, nil
	}

	// newPos[old] = new 1-based position of the member at old position.
	newPos := make([]int, n+1)
	for k, old := range perm {
		newPos[old] = k + 1
	}

	members := make([]Member, n)
	index := make(map[string]int, n)
	for k, old := range perm {
		m := p.members[old-1]
		if m.Father != 0 {
			m.Father = newPos[m.Father]
		}
		if m.Mother != 0 {
			m.Mother = newPos[m.Mother]
		}
		members[k] = m
		index[m.Label] = k + 1
	}

	out := &Ped{members: members, index: index}
	if len(p.loopBreakers) > 0 {
		out.loopBreakers = make([][2]int, len(p.loopBreakers))
		for i, pair := range p.loopBreakers {
			out.loopBreakers[i] = [2]int{newPos[pair[0]], newPos[pair[1]]}
		}
	}
	return out, nil
}

// ReorderLabels is like [Ped.Reorder] with the permutation given as member
// labels instead of positions.
func (p *Ped) ReorderLabels(order []string) (*Ped, error) {
	if len(p.members) == 1 {
		return p, nil
	}

	perm, _ := p.InternalID(order, false)
	for i, pos := range perm {
		if pos == 0 {
			return nil, errors.New(errors.ErrCodeInvalidArgument,
				"order is not a permutation of the member labels: unknown label %q in %v", order[i], order)
		}
	}
	return p.Reorder(perm)
}

// checkPermutation verifies perm is a permutation of 1..n.
func checkPermutation(perm []int, n int) error {
	if len(perm) != n {
		return errors.New(errors.ErrCodeInvalidArgument,
			"permutation %v has length %d, want %d", perm, len(perm), n)
	}
	seen := make([]bool, n+1)
	for _, pos := range perm {
		if pos < 1 || pos > n {
			return errors.New(errors.ErrCodeInvalidArgument,
				"permutation %v contains %d, outside 1..%d", perm, pos, n)
		}
		if seen[pos] {
			return errors.New(errors.ErrCodeInvalidArgument,
				"permutation %v contains %d twice", perm, pos)
		}
		seen[pos] = true
	}
	return nil
}

// ParentsBeforeChildren returns a pedigree with the same members reordered
// so that parents are stored before their children. Pedigrees that already
// satisfy the property (and singletons) are returned unchanged.
//
// The algorithm is a single insertion-style pass: at each position i, if the
// latest parent of the member currently at i sits at a later position m, the
// sub-range [i, m] is rotated one step left, moving the member to just after
// that parent, and position i is re-examined. Every rotation strictly moves
// one member past a parent, so the pass terminates. O(N) on already-sorted
// input, O(N²) worst case.
func (p *Ped) ParentsBeforeChildren() (*Ped, error) {
	n := len(p.members)
	if n == 1 || p.HasParentsBeforeChildren() {
		return p, nil
	}

	// perm[k] = original position of the member currently at position k+1.
	// cur[old] = current position of the member at original position old.
	perm := make([]int, n)
	cur := make([]int, n+1)
	for k := range perm {
		perm[k] = k + 1
		cur[k+1] = k + 1
	}

	for i := 1; i <= n; {
		m := p.members[perm[i-1]-1]

		maxParentPos := 0
		for _, parent := range []int{m.Father, m.Mother} {
			if parent != 0 && cur[parent] >= i && cur[parent] > maxParentPos {
				maxParentPos = cur[parent]
			}
		}

		if maxParentPos <= i {
			i++
			continue
		}

		// Rotate [i, maxParentPos] one step left: the member at i lands just
		// after its latest parent; everything between shifts up one.
		moved := perm[i-1]
		copy(perm[i-1:maxParentPos-1], perm[i:maxParentPos])
		perm[maxParentPos-1] = moved
		for k := i; k <= maxParentPos; k++ {
			cur[perm[k-1]] = k
		}
	}

	return p.Reorder(perm)
}
