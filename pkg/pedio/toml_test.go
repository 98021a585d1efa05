package pedio

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/thoree/pedtools/pkg/errors"
	"github.com/thoree/pedtools/pkg/mutation"
)

const trioDoc = `
[[member]]
id = "fa"
sex = "male"

[[member]]
id = "mo"
sex = "female"

[[member]]
id = "boy"
father = "fa"
mother = "mo"
sex = "male"

[[marker]]
name = "M1"
chrom = "1"
pos_mb = 12.5
alleles = ["a", "b"]
afreq = [0.4, 0.6]

[marker.genotype]
boy = "a/b"
fa = "a/a"

[[marker]]
name = "M2"
alleles = ["12", "13"]
afreq = [0.5, 0.5]

[marker.mutation]
model = "stepwise"
rate = 0.01
`

func TestReadTrio(t *testing.T) {
	ped, set, err := Read(strings.NewReader(trioDoc))
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}

	if ped.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", ped.Size())
	}
	if ped.FatherOf(3) != 1 || ped.MotherOf(3) != 2 {
		t.Errorf("parents of boy = (%d, %d), want (1, 2)", ped.FatherOf(3), ped.MotherOf(3))
	}

	if set.Len() != 2 {
		t.Fatalf("set.Len() = %d, want 2", set.Len())
	}

	m1, _ := set.ByName("M1")
	if m1 == nil {
		t.Fatal("ByName(M1) not found")
	}
	if a1, a2 := m1.GenotypeLabels(3); a1 != "a" || a2 != "b" {
		t.Errorf("boy at M1 = %q/%q, want a/b", a1, a2)
	}
	if m1.PosMb() != 12.5 {
		t.Errorf("PosMb() = %g, want 12.5", m1.PosMb())
	}
	if !math.IsNaN(m1.PosCm()) {
		t.Error("PosCm() should be unset")
	}

	m2, _ := set.ByName("M2")
	if m2 == nil {
		t.Fatal("ByName(M2) not found")
	}
	if m2.Model() == nil || m2.Model().Name() != mutation.ModelStepwise {
		t.Errorf("M2 model = %v, want stepwise", m2.Model())
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{
			"not toml",
			"this is ][ not toml",
			errors.ErrCodeInvalidFormat,
		},
		{
			"no members",
			`[[marker]]` + "\n" + `name = "M1"`,
			errors.ErrCodeInvalidFormat,
		},
		{
			"unknown parent",
			"[[member]]\nid = \"kid\"\nfather = \"nope\"\nmother = \"nope2\"\n",
			errors.ErrCodeUnknownMember,
		},
		{
			"single parent",
			"[[member]]\nid = \"fa\"\n\n[[member]]\nid = \"kid\"\nfather = \"fa\"\n",
			errors.ErrCodeStructural,
		},
		{
			"bad sex",
			"[[member]]\nid = \"a\"\nsex = \"yes\"\n",
			errors.ErrCodeInvalidArgument,
		},
		{
			"bad frequency sum",
			trioMembers + "\n[[marker]]\nalleles = [\"a\", \"b\"]\nafreq = [0.4, 0.4]\n",
			errors.ErrCodeAlleleFrequency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Read(strings.NewReader(tt.doc))
			if !errors.Is(err, tt.code) {
				t.Errorf("Read error = %v, want code %s", err, tt.code)
			}
		})
	}
}

const trioMembers = `
[[member]]
id = "fa"
sex = "male"

[[member]]
id = "mo"
sex = "female"

[[member]]
id = "boy"
father = "fa"
mother = "mo"
sex = "male"
`

func TestWriteReadRoundTrip(t *testing.T) {
	ped, set, err := Read(strings.NewReader(trioDoc))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, ped, set); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	ped2, set2, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read(Write(...)) error: %v", err)
	}

	if ped2.Size() != ped.Size() {
		t.Fatalf("round trip changed size: %d", ped2.Size())
	}
	for pos := 1; pos <= ped.Size(); pos++ {
		if ped2.Member(pos).Label != ped.Member(pos).Label {
			t.Errorf("member %d label = %q, want %q", pos, ped2.Member(pos).Label, ped.Member(pos).Label)
		}
		if ped2.Member(pos).Sex != ped.Member(pos).Sex {
			t.Errorf("member %d sex changed", pos)
		}
	}

	if set2.Len() != set.Len() {
		t.Fatalf("round trip changed marker count: %d", set2.Len())
	}
	m1, _ := set2.ByName("M1")
	if m1 == nil {
		t.Fatal("round trip lost M1")
	}
	if a1, a2 := m1.GenotypeLabels(3); a1 != "a" || a2 != "b" {
		t.Errorf("round trip genotype = %q/%q, want a/b", a1, a2)
	}
	if m1.PosMb() != 12.5 {
		t.Errorf("round trip PosMb = %g, want 12.5", m1.PosMb())
	}
	m2, _ := set2.ByName("M2")
	if m2 == nil || m2.Model() == nil {
		t.Fatal("round trip lost the mutation model")
	}
}

func TestReadWriteFiles(t *testing.T) {
	ped, set, err := Read(strings.NewReader(trioDoc))
	if err != nil {
		t.Fatal(err)
	}

	path := t.TempDir() + "/ped.toml"
	if err := WriteFile(path, ped, set); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	ped2, _, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if ped2.Size() != 3 {
		t.Errorf("Size() = %d, want 3", ped2.Size())
	}

	if _, _, err := ReadFile(t.TempDir() + "/missing.toml"); err == nil {
		t.Error("ReadFile(missing) should fail")
	}
}
