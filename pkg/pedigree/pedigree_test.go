package pedigree

import (
	"testing"

	"github.com/thoree/pedtools/pkg/errors"
)

// trio returns the standard three-member pedigree in parents-first order.
func trio(t *testing.T) *Ped {
	t.Helper()
	p, err := New(
		Member{Label: "fa", Sex: Male},
		Member{Label: "mo", Sex: Female},
		Member{Label: "boy", Father: 1, Mother: 2, Sex: Male},
	)
	if err != nil {
		t.Fatalf("New(trio) error: %v", err)
	}
	return p
}

func TestNewTrio(t *testing.T) {
	p := trio(t)

	if p.Size() != 3 {
		t.Errorf("Size() = %d, want 3", p.Size())
	}
	if got := p.Founders(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("Founders() = %v, want [1 2]", got)
	}
	if got := p.Nonfounders(); len(got) != 1 || got[0] != 3 {
		t.Errorf("Nonfounders() = %v, want [3]", got)
	}
	if p.FatherOf(3) != 1 || p.MotherOf(3) != 2 {
		t.Errorf("parents of 3 = (%d, %d), want (1, 2)", p.FatherOf(3), p.MotherOf(3))
	}
	if !p.IsConnected() {
		t.Error("IsConnected() = false, want true")
	}
}

func TestNewRejectsDuplicateLabels(t *testing.T) {
	_, err := New(
		Member{Label: "a", Sex: Male},
		Member{Label: "a", Sex: Female},
	)
	if !errors.Is(err, errors.ErrCodeStructural) {
		t.Errorf("New(duplicate labels) error = %v, want STRUCTURAL_ERROR", err)
	}
}

func TestNewRejectsEmptyLabel(t *testing.T) {
	_, err := New(Member{Label: ""})
	if !errors.Is(err, errors.ErrCodeStructural) {
		t.Errorf("New(empty label) error = %v, want STRUCTURAL_ERROR", err)
	}
}

func TestNewRejectsSingleParent(t *testing.T) {
	_, err := New(
		Member{Label: "fa", Sex: Male},
		Member{Label: "boy", Father: 1, Sex: Male},
	)
	if !errors.Is(err, errors.ErrCodeStructural) {
		t.Errorf("New(one parent) error = %v, want STRUCTURAL_ERROR", err)
	}
}

func TestNewRejectsParentOutOfRange(t *testing.T) {
	_, err := New(
		Member{Label: "fa", Sex: Male},
		Member{Label: "mo", Sex: Female},
		Member{Label: "boy", Father: 1, Mother: 9},
	)
	if !errors.Is(err, errors.ErrCodeStructural) {
		t.Errorf("New(parent out of range) error = %v, want STRUCTURAL_ERROR", err)
	}
}

func TestNewRejectsSelfParent(t *testing.T) {
	_, err := New(
		Member{Label: "mo", Sex: Female},
		Member{Label: "x", Father: 2, Mother: 1},
	)
	if !errors.Is(err, errors.ErrCodeStructural) {
		t.Errorf("New(self parent) error = %v, want STRUCTURAL_ERROR", err)
	}
}

func TestNewRejectsCycle(t *testing.T) {
	// a's parents are b and c; b's parents are a and c. Cycle a -> b -> a.
	_, err := New(
		Member{Label: "a", Father: 2, Mother: 3},
		Member{Label: "b", Father: 1, Mother: 3},
		Member{Label: "c", Sex: Female},
	)
	if !errors.Is(err, errors.ErrCodeStructural) {
		t.Errorf("New(cyclic parents) error = %v, want STRUCTURAL_ERROR", err)
	}
}

func TestParseSex(t *testing.T) {
	tests := []struct {
		in   string
		want Sex
	}{
		{"male", Male},
		{"M", Male},
		{"1", Male},
		{"female", Female},
		{"2", Female},
		{"unknown", Unknown},
		{"0", Unknown},
		{"", Unknown},
	}
	for _, tt := range tests {
		got, err := ParseSex(tt.in)
		if err != nil {
			t.Errorf("ParseSex(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseSex("both"); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("ParseSex(both) error = %v, want INVALID_ARGUMENT", err)
	}
}

func TestInternalID(t *testing.T) {
	p := trio(t)

	pos, err := p.InternalID([]string{"boy", "fa"}, true)
	if err != nil {
		t.Fatalf("InternalID error: %v", err)
	}
	if pos[0] != 3 || pos[1] != 1 {
		t.Errorf("InternalID = %v, want [3 1]", pos)
	}

	// Strict mode fails on unknown labels.
	if _, err := p.InternalID([]string{"fa", "nope"}, true); !errors.Is(err, errors.ErrCodeUnknownMember) {
		t.Errorf("strict InternalID error = %v, want UNKNOWN_MEMBER", err)
	}

	// Lenient mode maps unknowns to 0.
	pos, err = p.InternalID([]string{"nope", "mo"}, false)
	if err != nil {
		t.Fatalf("lenient InternalID error: %v", err)
	}
	if pos[0] != 0 || pos[1] != 2 {
		t.Errorf("lenient InternalID = %v, want [0 2]", pos)
	}
}

func TestChildren(t *testing.T) {
	p := trio(t)
	if got := p.Children(1); len(got) != 1 || got[0] != 3 {
		t.Errorf("Children(1) = %v, want [3]", got)
	}
	if got := p.Children(3); got != nil {
		t.Errorf("Children(3) = %v, want nil", got)
	}
}

func TestRelabel(t *testing.T) {
	p := trio(t)

	q, err := p.Relabel("boy", "son")
	if err != nil {
		t.Fatalf("Relabel error: %v", err)
	}
	if q.Lookup("son") != 3 {
		t.Errorf("Lookup(son) = %d, want 3", q.Lookup("son"))
	}
	if p.Lookup("boy") != 3 {
		t.Error("Relabel modified the receiver")
	}

	if _, err := p.Relabel("nope", "x"); !errors.Is(err, errors.ErrCodeUnknownMember) {
		t.Errorf("Relabel(unknown) error = %v, want UNKNOWN_MEMBER", err)
	}
	if _, err := p.Relabel("boy", "fa"); !errors.Is(err, errors.ErrCodeStructural) {
		t.Errorf("Relabel(collision) error = %v, want STRUCTURAL_ERROR", err)
	}
}

func TestAddFounder(t *testing.T) {
	p := trio(t)

	q, err := p.AddFounder("gm", Female)
	if err != nil {
		t.Fatalf("AddFounder error: %v", err)
	}
	if q.Size() != 4 {
		t.Errorf("Size() = %d, want 4", q.Size())
	}
	if !q.Member(4).IsFounder() {
		t.Error("added member should be a founder")
	}
	if p.Size() != 3 {
		t.Error("AddFounder modified the receiver")
	}
}

func TestIsConnected(t *testing.T) {
	p, err := New(
		Member{Label: "a", Sex: Male},
		Member{Label: "b", Sex: Female},
	)
	if err != nil {
		t.Fatal(err)
	}
	if p.IsConnected() {
		t.Error("two unrelated founders should not be connected")
	}

	single, err := New(Member{Label: "solo"})
	if err != nil {
		t.Fatal(err)
	}
	if !single.IsConnected() {
		t.Error("singleton pedigree should be connected")
	}
}

func TestSetLoopBreakers(t *testing.T) {
	p := trio(t)

	if err := p.SetLoopBreakers([][2]int{{3, 1}}); err != nil {
		t.Fatalf("SetLoopBreakers error: %v", err)
	}
	if got := p.LoopBreakers(); len(got) != 1 || got[0] != [2]int{3, 1} {
		t.Errorf("LoopBreakers() = %v, want [[3 1]]", got)
	}

	if err := p.SetLoopBreakers([][2]int{{0, 1}}); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("SetLoopBreakers(out of range) error = %v, want INVALID_ARGUMENT", err)
	}
}

func TestString(t *testing.T) {
	p := trio(t)
	if got := p.String(); got != "Ped(3 members, 2 founders)" {
		t.Errorf("String() = %q", got)
	}
}
