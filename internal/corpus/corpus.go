// Package corpus reads parallel sentence files: one sentence per line,
// line N of the original file aligned with line N of the corrected file.
package corpus

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/ulikunitz/xz"
)

const maxLine = 16 << 20

// ReadLines returns every line of path without line terminators. Plain files
// are memory-mapped; files ending in .xz are decompressed while reading.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(bufio.NewReader(f))
		if err != nil {
			return nil, fmt.Errorf("xz %s: %w", path, err)
		}
		return scan(xr)
	}

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !st.Mode().IsRegular() {
		return scan(f)
	}
	if st.Size() == 0 {
		return nil, nil
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	defer m.Unmap()
	return scan(bytes.NewReader(m))
}

func scan(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}

// Pair is one aligned sentence pair. Line is 1-based.
type Pair struct {
	Line int
	Orig string
	Cor  string
}

// Zip pairs lines by position, trimming surrounding whitespace and skipping
// pairs where both sides are empty. Lines beyond the shorter input are
// ignored; mismatch reports whether the inputs differ in length.
func Zip(orig, cor []string) (pairs []Pair, mismatch bool) {
	n := min(len(orig), len(cor))
	pairs = make([]Pair, 0, n)
	for i := 0; i < n; i++ {
		o, c := strings.TrimSpace(orig[i]), strings.TrimSpace(cor[i])
		if o == "" && c == "" {
			continue
		}
		pairs = append(pairs, Pair{Line: i + 1, Orig: o, Cor: c})
	}
	return pairs, len(orig) != len(cor)
}

// Load reads both files and zips them.
func Load(origPath, corPath string) (pairs []Pair, mismatch bool, err error) {
	orig, err := ReadLines(origPath)
	if err != nil {
		return nil, false, err
	}
	cor, err := ReadLines(corPath)
	if err != nil {
		return nil, false, err
	}
	pairs, mismatch = Zip(orig, cor)
	return pairs, mismatch, nil
}
