// Package m2 writes sentence annotations in the M2 format: one "S" line with
// the original tokens, one "A" line per edit and a blank separator line.
package m2

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"m2align/internal/align"
)

const (
	sep      = "|||"
	required = "REQUIRED"
	none     = "-NONE-"
	ext      = ".m2"
)

// FormatEdit renders one annotation line for annotator id.
func FormatEdit(e align.Edit, id int) string {
	return strings.Join([]string{
		"A " + strconv.Itoa(e.OStart) + " " + strconv.Itoa(e.OEnd),
		string(e.Category),
		e.Correction,
		required,
		none,
		strconv.Itoa(id),
	}, sep)
}

// Noop is the placeholder line for a sentence that needs no correction.
func Noop(id int) string {
	return FormatEdit(align.Edit{OStart: -1, OEnd: -1, Category: align.Noop}, id)
}

// Writer buffers M2 output. Call Flush when done.
type Writer struct {
	w     *bufio.Writer
	id    int
	count int
}

// NewWriter writes to w, attributing every edit to annotator id.
func NewWriter(w io.Writer, id int) *Writer {
	return &Writer{w: bufio.NewWriter(w), id: id}
}

// WriteSentence writes one annotated sentence. An empty edit list produces
// the noop line.
func (w *Writer) WriteSentence(orig []string, edits []align.Edit) error {
	if _, err := fmt.Fprintf(w.w, "S %s\n", strings.Join(orig, " ")); err != nil {
		return err
	}
	if len(edits) == 0 {
		if _, err := fmt.Fprintln(w.w, Noop(w.id)); err != nil {
			return err
		}
	}
	for _, e := range edits {
		if _, err := fmt.Fprintln(w.w, FormatEdit(e, w.id)); err != nil {
			return err
		}
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	w.count++
	return nil
}

// Sentences returns how many sentences were written.
func (w *Writer) Sentences() int { return w.count }

func (w *Writer) Flush() error { return w.w.Flush() }

// Format renders a single sentence block as a string.
func Format(orig []string, edits []align.Edit, id int) string {
	var b strings.Builder
	w := NewWriter(&b, id)
	_ = w.WriteSentence(orig, edits)
	_ = w.Flush()
	return b.String()
}

// OutputPath appends the .m2 extension unless path already ends with it.
func OutputPath(path string) string {
	if strings.HasSuffix(path, ext) {
		return path
	}
	return path + ext
}
