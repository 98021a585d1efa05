package pedigree

import (
	"fmt"
	"strings"

	"github.com/thoree/pedtools/pkg/errors"
)

// Sex is the recorded sex of a pedigree member.
// The numeric values follow the PED file convention (0/1/2).
type Sex int

const (
	// Unknown means the sex is not recorded.
	Unknown Sex = iota
	// Male members are fathers in parent relations.
	Male
	// Female members are mothers in parent relations.
	Female
)

// String returns the lowercase name of the sex.
func (s Sex) String() string {
	switch s {
	case Male:
		return "male"
	case Female:
		return "female"
	default:
		return "unknown"
	}
}

// ParseSex converts a string to a Sex. It accepts the names "male", "female",
// "unknown" (any case) and the PED numeric codes "1", "2", "0".
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(s) {
	case "male", "m", "1":
		return Male, nil
	case "female", "f", "2":
		return Female, nil
	case "unknown", "u", "0", "":
		return Unknown, nil
	}
	return Unknown, errors.New(errors.ErrCodeInvalidArgument, "invalid sex: %q", s)
}

// Member is one individual in a pedigree.
//
// Father and Mother are 1-based positions into the owning pedigree's member
// sequence; 0 means the parent is not recorded. A member has either both
// parents recorded or neither.
type Member struct {
	Label  string
	Father int
	Mother int
	Sex    Sex
}

// IsFounder reports whether the member has no recorded parents.
func (m Member) IsFounder() bool { return m.Father == 0 && m.Mother == 0 }

// Ped is a validated pedigree: an ordered member sequence whose parent
// relation forms a DAG.
//
// Ped values are immutable by convention. Operations that change structure
// ([Ped.Reorder], [Ped.Relabel], [Ped.AddFounder]) return a new *Ped and
// never modify the receiver, so instances can be shared freely for reading.
type Ped struct {
	members []Member
	index   map[string]int // label -> 1-based position

	// loopBreakers holds (copy, original) position pairs for individuals
	// duplicated to linearize mating loops.
	loopBreakers [][2]int
}

// New creates a pedigree from the given members and validates all structural
// invariants: non-empty unique labels, both-or-neither parents, parent
// positions within range, and acyclic parentage.
func New(members ...Member) (*Ped, error) {
	p := &Ped{
		members: append([]Member(nil), members...),
		index:   make(map[string]int, len(members)),
	}

	for i, m := range p.members {
		pos := i + 1
		if err := errors.ValidateMemberLabel(m.Label); err != nil {
			return nil, err
		}
		if prev, dup := p.index[m.Label]; dup {
			return nil, errors.New(errors.ErrCodeStructural,
				"duplicate member label %q at positions %d and %d", m.Label, prev, pos)
		}
		p.index[m.Label] = pos

		if (m.Father == 0) != (m.Mother == 0) {
			return nil, errors.New(errors.ErrCodeStructural,
				"member %q has exactly one recorded parent", m.Label)
		}
		for _, parent := range []int{m.Father, m.Mother} {
			if parent < 0 || parent > len(p.members) {
				return nil, errors.New(errors.ErrCodeStructural,
					"member %q has parent position %d outside 1..%d", m.Label, parent, len(p.members))
			}
			if parent == pos {
				return nil, errors.New(errors.ErrCodeStructural,
					"member %q is its own parent", m.Label)
			}
		}
	}

	if err := p.detectCycles(); err != nil {
		return nil, err
	}
	return p, nil
}

// detectCycles verifies the parent relation is acyclic using depth-first
// search with white/gray/black coloring over member positions.
func (p *Ped) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make([]int, len(p.members)+1)
	var cycleAt int

	var dfs func(pos int)
	dfs = func(pos int) {
		color[pos] = gray
		m := p.members[pos-1]
		for _, parent := range []int{m.Father, m.Mother} {
			if parent == 0 || cycleAt != 0 {
				continue
			}
			switch color[parent] {
			case white:
				dfs(parent)
			case gray:
				cycleAt = parent
			}
		}
		color[pos] = black
	}

	for pos := 1; pos <= len(p.members); pos++ {
		if color[pos] == white {
			dfs(pos)
			if cycleAt != 0 {
				return errors.New(errors.ErrCodeStructural,
					"parent relation contains a cycle through %q", p.members[cycleAt-1].Label)
			}
		}
	}
	return nil
}

// Size returns the number of members.
func (p *Ped) Size() int { return len(p.members) }

// Labels returns the member labels in storage order.
func (p *Ped) Labels() []string {
	labels := make([]string, len(p.members))
	for i, m := range p.members {
		labels[i] = m.Label
	}
	return labels
}

// Sexes returns the member sexes in storage order.
func (p *Ped) Sexes() []Sex {
	sexes := make([]Sex, len(p.members))
	for i, m := range p.members {
		sexes[i] = m.Sex
	}
	return sexes
}

// Member returns the member at 1-based position pos.
// It panics if pos is out of range, mirroring slice indexing.
func (p *Ped) Member(pos int) Member { return p.members[pos-1] }

// Members returns a copy of the member sequence.
func (p *Ped) Members() []Member {
	return append([]Member(nil), p.members...)
}

// FatherOf returns the 1-based position of the father of the member at pos,
// or 0 if the member is a founder.
func (p *Ped) FatherOf(pos int) int { return p.members[pos-1].Father }

// MotherOf returns the 1-based position of the mother of the member at pos,
// or 0 if the member is a founder.
func (p *Ped) MotherOf(pos int) int { return p.members[pos-1].Mother }

// Founders returns the 1-based positions of members with no recorded parents.
func (p *Ped) Founders() []int {
	var founders []int
	for i, m := range p.members {
		if m.IsFounder() {
			founders = append(founders, i+1)
		}
	}
	return founders
}

// Nonfounders returns the 1-based positions of members with two recorded parents.
func (p *Ped) Nonfounders() []int {
	var nonfounders []int
	for i, m := range p.members {
		if !m.IsFounder() {
			nonfounders = append(nonfounders, i+1)
		}
	}
	return nonfounders
}

// Children returns the 1-based positions of members that have the member at
// pos recorded as father or mother, in storage order.
func (p *Ped) Children(pos int) []int {
	var children []int
	for i, m := range p.members {
		if m.Father == pos || m.Mother == pos {
			children = append(children, i+1)
		}
	}
	return children
}

// InternalID resolves member labels to 1-based positions.
//
// With strict set, any unknown label fails with an error naming all missing
// labels. Otherwise unknown labels resolve to the 0 sentinel.
func (p *Ped) InternalID(labels []string, strict bool) ([]int, error) {
	positions := make([]int, len(labels))
	var missing []string
	for i, label := range labels {
		pos, ok := p.index[label]
		if !ok {
			missing = append(missing, label)
			continue
		}
		positions[i] = pos
	}
	if strict && len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeUnknownMember,
			"unknown member(s): %s", strings.Join(missing, ", "))
	}
	return positions, nil
}

// Lookup returns the 1-based position of the member with the given label,
// or 0 if no such member exists.
func (p *Ped) Lookup(label string) int { return p.index[label] }

// Relabel returns a new pedigree with the member labelled from renamed to to.
// The new label must not collide with an existing one.
func (p *Ped) Relabel(from, to string) (*Ped, error) {
	pos := p.index[from]
	if pos == 0 {
		return nil, errors.New(errors.ErrCodeUnknownMember, "unknown member(s): %s", from)
	}
	if err := errors.ValidateMemberLabel(to); err != nil {
		return nil, err
	}
	if other := p.index[to]; other != 0 && other != pos {
		return nil, errors.New(errors.ErrCodeStructural,
			"duplicate member label %q at positions %d and %d", to, other, pos)
	}

	members := p.Members()
	members[pos-1].Label = to
	out, err := New(members...)
	if err != nil {
		return nil, err
	}
	out.loopBreakers = append([][2]int(nil), p.loopBreakers...)
	return out, nil
}

// AddFounder returns a new pedigree with a parentless member appended.
func (p *Ped) AddFounder(label string, sex Sex) (*Ped, error) {
	members := append(p.Members(), Member{Label: label, Sex: sex})
	out, err := New(members...)
	if err != nil {
		return nil, err
	}
	out.loopBreakers = append([][2]int(nil), p.loopBreakers...)
	return out, nil
}

// IsConnected reports whether every member is reachable from every other via
// parent/child relations, ignoring edge direction.
func (p *Ped) IsConnected() bool {
	n := len(p.members)
	if n <= 1 {
		return true
	}

	adj := make([][]int, n+1)
	for i, m := range p.members {
		pos := i + 1
		for _, parent := range []int{m.Father, m.Mother} {
			if parent != 0 {
				adj[pos] = append(adj[pos], parent)
				adj[parent] = append(adj[parent], pos)
			}
		}
	}

	seen := make([]bool, n+1)
	stack := []int{1}
	seen[1] = true
	count := 0
	for len(stack) > 0 {
		pos := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		for _, next := range adj[pos] {
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return count == n
}

// SetLoopBreakers records (copy, original) position pairs for individuals
// duplicated to linearize mating loops. Both positions of every pair must be
// valid member positions. The pairs are remapped by every reordering.
func (p *Ped) SetLoopBreakers(pairs [][2]int) error {
	for _, pair := range pairs {
		for _, pos := range pair {
			if pos < 1 || pos > len(p.members) {
				return errors.New(errors.ErrCodeInvalidArgument,
					"loop breaker position %d outside 1..%d", pos, len(p.members))
			}
		}
	}
	p.loopBreakers = append([][2]int(nil), pairs...)
	return nil
}

// LoopBreakers returns a copy of the recorded (copy, original) pairs.
func (p *Ped) LoopBreakers() [][2]int {
	return append([][2]int(nil), p.loopBreakers...)
}

// String returns a compact one-line description, e.g. "Ped(3 members, 2 founders)".
func (p *Ped) String() string {
	return fmt.Sprintf("Ped(%d members, %d founders)", len(p.members), len(p.Founders()))
}
