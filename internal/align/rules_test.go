package align

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRulesValidate(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestParseRules(t *testing.T) {
	table, err := ParseRules([]byte(`
rules:
  - left: u
    right: r
    when: function-word
  - left: WO
    right: ORTH
    when: shared-token
    result: left
  - left: M
    right: M
`))
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	want := []Rule{
		{Left: KindUnnecessary, Right: KindReplacement, When: FunctionWord, Result: Reclassify},
		{Left: KindWordOrder, Right: KindOrthography, When: SharedToken, Result: KeepLeft},
		{Left: KindMissing, Right: KindMissing, When: Always, Result: Reclassify},
	}
	if len(table.Rules) != len(want) {
		t.Fatalf("got %d rules, want %d", len(table.Rules), len(want))
	}
	for i := range want {
		if table.Rules[i] != want[i] {
			t.Errorf("rule %d = %+v, want %+v", i, table.Rules[i], want[i])
		}
	}
}

func TestParseRulesEmpty(t *testing.T) {
	table, err := ParseRules(nil)
	if err != nil {
		t.Fatalf("ParseRules(nil): %v", err)
	}
	if len(table.Rules) != 0 {
		t.Fatalf("rules = %+v, want none", table.Rules)
	}
}

func TestParseRulesErrors(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"unknown field", "rules:\n  - left: U\n    right: R\n    priority: 1\n", ""},
		{"unknown left kind", "rules:\n  - left: XX\n    right: R\n", "left"},
		{"unknown right kind", "rules:\n  - left: U\n    right: noop\n", "right"},
		{"unknown condition", "rules:\n  - left: U\n    right: R\n    when: sometimes\n", "when"},
		{"unknown result", "rules:\n  - left: U\n    right: R\n    result: both\n", "result"},
		{"not a table", "- 1\n- 2\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRules([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidRule) {
				t.Fatalf("err = %v, want ErrInvalidRule", err)
			}
			if tt.field == "" {
				return
			}
			var re *RuleError
			if !errors.As(err, &re) {
				t.Fatalf("err = %T, want *RuleError", err)
			}
			if re.Index != 0 || re.Field != tt.field {
				t.Errorf("RuleError = %+v, want index 0 field %q", re, tt.field)
			}
		})
	}
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("rules:\n  - {left: U, right: R, when: joined-text}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(table.Rules) != 1 || table.Rules[0].When != JoinedText {
		t.Fatalf("rules = %+v", table.Rules)
	}

	if _, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: err = %v, want os.ErrNotExist", err)
	}
}

func TestWordSet(t *testing.T) {
	s := NewWordSet("Whom", " ", "  thus ")
	for _, w := range []string{"whom", "WHOM", "thus"} {
		if !s.Contains(w) {
			t.Errorf("Contains(%q) = false", w)
		}
	}
	if s.Contains("") || s.Contains("cat") {
		t.Error("unexpected member")
	}
	if len(s) != 2 {
		t.Errorf("len = %d, want 2", len(s))
	}
}

func TestFunctionWordConsultsLexicon(t *testing.T) {
	orig := Words("xyz", "cat")
	cor := Words("dog")
	b := boundary{
		left:  ClassifiedOp{Op: Op{Kind: Deletion, OStart: 0, OEnd: 1, CStart: 0, CEnd: 0}},
		right: ClassifiedOp{Op: Op{Kind: Substitution, OStart: 1, OEnd: 2, CStart: 0, CEnd: 1}},
		orig:  orig,
		cor:   cor,
	}
	if b.functionWord() {
		t.Fatal("untagged word without lexicon counted as function word")
	}
	b.lex = NewWordSet("XYZ")
	if !b.functionWord() {
		t.Fatal("lexicon word not counted as function word")
	}
}

func TestJoinedText(t *testing.T) {
	orig := Words("sub", "way")
	cor := Words("sub-way")
	b := boundary{
		left:  ClassifiedOp{Op: Op{Kind: Substitution, OStart: 0, OEnd: 1, CStart: 0, CEnd: 1}},
		right: ClassifiedOp{Op: Op{Kind: Deletion, OStart: 1, OEnd: 2, CStart: 1, CEnd: 1}},
		orig:  orig,
		cor:   cor,
	}
	if !b.joinedText() {
		t.Fatal("sub way / sub-way not recognized as joined text")
	}
	b.cor = Words("subway!")
	if b.joinedText() {
		t.Fatal("different text reported as joined")
	}
}
