package align

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"
)

// verifyAlignment checks that ops tile both sequences left to right and
// that every edit list rebuilds cor from orig.
func verifyAlignment(t *testing.T, orig, cor []Features, al Alignment) {
	t.Helper()
	oi, ci := 0, 0
	for i, op := range al.Ops {
		if op.OStart != oi || op.CStart != ci || op.OEnd < op.OStart || op.CEnd < op.CStart {
			t.Fatalf("op %d: %+v does not continue at (%d,%d)", i, op, oi, ci)
		}
		oi, ci = op.OEnd, op.CEnd
	}
	if oi != len(orig) || ci != len(cor) {
		t.Fatalf("ops end at (%d,%d), want (%d,%d)", oi, ci, len(orig), len(cor))
	}
	ops := ClassifyOps(al.Ops, orig, cor)
	want := strings.Join(Texts(cor), " ")
	for _, s := range []Strategy{Rules, AllSplit, AllMerge, AllEqual} {
		edits := Merge(s, ops, orig, cor, DefaultRules(), nil)
		if got := strings.Join(apply(orig, edits), " "); got != want {
			t.Fatalf("%s: applied %q, want %q", s, got, want)
		}
		for _, e := range edits {
			if e.Category == "" {
				t.Fatalf("%s: edit %+v has no category", s, e)
			}
		}
	}
}

func FuzzAlign(f *testing.F) {
	f.Add("the cat big", "the big cat")
	f.Add("", "")
	f.Add("He go to home", "He goes home")
	f.Add("a cat", "acat")
	f.Add("Hello , world !", "hello world .")
	f.Add("x y z", "")

	enhanced, _ := NewCostModel(false, DefaultCaseCost, DefaultTransposeWeight)
	plain, _ := NewCostModel(true, DefaultCaseCost, DefaultTransposeWeight)

	f.Fuzz(func(t *testing.T, a, b string) {
		if !utf8.ValidString(a) || !utf8.ValidString(b) {
			return
		}
		orig, cor := Words(strings.Fields(a)...), Words(strings.Fields(b)...)
		if len(orig) > 40 || len(cor) > 40 {
			return
		}
		e := enhanced.Align(orig, cor)
		p := plain.Align(orig, cor)
		verifyAlignment(t, orig, cor, e)
		verifyAlignment(t, orig, cor, p)

		if e.Cost > p.Cost+1e-9 {
			t.Fatalf("enhanced cost %v > plain %v", e.Cost, p.Cost)
		}
		if r := enhanced.Align(cor, orig).Cost; math.Abs(r-e.Cost) > 1e-6 {
			t.Fatalf("asymmetric cost: %v vs %v", e.Cost, r)
		}
		if a == b && e.Cost != 0 {
			t.Fatalf("identical input costs %v", e.Cost)
		}
	})
}
