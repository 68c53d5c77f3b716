package m2

import (
	"bytes"
	"errors"
	"testing"

	"m2align/internal/align"
)

func TestFormatEdit(t *testing.T) {
	tests := []struct {
		edit align.Edit
		id   int
		want string
	}{
		{align.Edit{OStart: 1, OEnd: 2, Category: "R:NOUN", Correction: "dog"}, 0, "A 1 2|||R:NOUN|||dog|||REQUIRED|||-NONE-|||0"},
		{align.Edit{OStart: 3, OEnd: 4, Category: "U:DET"}, 2, "A 3 4|||U:DET||||||REQUIRED|||-NONE-|||2"},
		{align.Edit{OStart: 0, OEnd: 0, Category: "M:DET", Correction: "The"}, 0, "A 0 0|||M:DET|||The|||REQUIRED|||-NONE-|||0"},
	}
	for _, tt := range tests {
		if got := FormatEdit(tt.edit, tt.id); got != tt.want {
			t.Errorf("FormatEdit(%+v) = %q, want %q", tt.edit, got, tt.want)
		}
	}
	if got, want := Noop(0), "A -1 -1|||noop||||||REQUIRED|||-NONE-|||0"; got != want {
		t.Errorf("Noop = %q, want %q", got, want)
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 0)
	if err := w.WriteSentence([]string{"He", "go", "home"}, []align.Edit{
		{OStart: 1, OEnd: 2, CStart: 1, CEnd: 2, Category: align.Morphology, Correction: "goes"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteSentence([]string{"Fine", "."}, nil); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "S He go home\n" +
		"A 1 2|||MORPH|||goes|||REQUIRED|||-NONE-|||0\n" +
		"\n" +
		"S Fine .\n" +
		"A -1 -1|||noop||||||REQUIRED|||-NONE-|||0\n" +
		"\n"
	if got := buf.String(); got != want {
		t.Fatalf("output:\n%s\nwant:\n%s", got, want)
	}
	if w.Sentences() != 2 {
		t.Errorf("Sentences = %d, want 2", w.Sentences())
	}
}

func TestFormat(t *testing.T) {
	got := Format(nil, nil, 1)
	if want := "S \nA -1 -1|||noop||||||REQUIRED|||-NONE-|||1\n\n"; got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriterPropagatesErrors(t *testing.T) {
	w := NewWriter(failWriter{}, 0)
	_ = w.WriteSentence([]string{"a"}, nil)
	if err := w.Flush(); err == nil {
		t.Fatal("expected flush error")
	}
}

func TestOutputPath(t *testing.T) {
	for in, want := range map[string]string{
		"out":       "out.m2",
		"out.m2":    "out.m2",
		"dir/x.txt": "dir/x.txt.m2",
		"x.m2.bak":  "x.m2.bak.m2",
	} {
		if got := OutputPath(in); got != want {
			t.Errorf("OutputPath(%q) = %q, want %q", in, got, want)
		}
	}
}
