// Package convert drives a whole parallel corpus through annotation,
// alignment and M2 output.
package convert

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"m2align/internal/align"
	"m2align/internal/annotate"
	"m2align/internal/corpus"
	"m2align/internal/m2"
	"m2align/internal/store"
)

// Options configures a Converter. Zero values give whitespace-split input,
// GOMAXPROCS workers, annotator id 0, no database and the default logger.
type Options struct {
	Tokenize    bool
	Workers     int
	AnnotatorID int
	Store       *store.Store
	Logger      *slog.Logger
}

type Converter struct {
	aligner *align.Aligner
	ann     *annotate.Annotator
	opts    Options
	log     *slog.Logger
}

// Sentence is one processed pair.
type Sentence struct {
	Line   int
	Orig   []string
	Cor    []string
	Result align.Result
}

// Summary reports what a conversion produced.
type Summary struct {
	RunID     string
	Output    string
	Sentences int
	Edits     int
	Mismatch  bool
}

func New(a *align.Aligner, o Options) *Converter {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	l := o.Logger
	if l == nil {
		l = slog.Default()
	}
	return &Converter{aligner: a, ann: annotate.New(o.Tokenize), opts: o, log: l}
}

// Align annotates and aligns pairs concurrently. The result order matches
// pairs.
func (c *Converter) Align(ctx context.Context, pairs []corpus.Pair) ([]Sentence, error) {
	out := make([]Sentence, len(pairs))
	sem := make(chan struct{}, c.opts.Workers)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i, p := range pairs {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		}
		i, p := i, p
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			if err := ctx.Err(); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			out[i] = c.sentence(p)
		}()
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func (c *Converter) sentence(p corpus.Pair) Sentence {
	orig := c.ann.Sentence(p.Orig)
	cor := c.ann.Sentence(p.Cor)
	return Sentence{
		Line:   p.Line,
		Orig:   tokenTexts(orig),
		Cor:    tokenTexts(cor),
		Result: c.aligner.Annotate(align.AsFeatures(orig), align.AsFeatures(cor)),
	}
}

func tokenTexts(toks []align.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Form
	}
	return out
}

// Write renders sentences as M2 to w and, when a store is configured,
// records them under runID.
func (c *Converter) Write(ctx context.Context, w io.Writer, runID string, sents []Sentence) (edits int, err error) {
	mw := m2.NewWriter(w, c.opts.AnnotatorID)
	for _, s := range sents {
		if err := mw.WriteSentence(s.Orig, s.Result.Edits); err != nil {
			return edits, err
		}
		edits += len(s.Result.Edits)
		if c.opts.Store == nil {
			continue
		}
		if err := c.opts.Store.SaveSentence(ctx, runID, store.Sentence{
			Line: s.Line, Orig: s.Orig, Cor: s.Cor, Cost: s.Result.Cost, Edits: s.Result.Edits,
		}); err != nil {
			return edits, err
		}
	}
	return edits, mw.Flush()
}

// Convert reads the two corpus files, aligns every pair and writes the M2
// file. out gets the .m2 extension when it lacks one.
func (c *Converter) Convert(ctx context.Context, origPath, corPath, out string) (Summary, error) {
	sum := Summary{Output: m2.OutputPath(out)}
	c.log.Info("loading corpus", "orig", origPath, "cor", corPath)
	pairs, mismatch, err := corpus.Load(origPath, corPath)
	if err != nil {
		return sum, err
	}
	sum.Mismatch = mismatch
	if mismatch {
		c.log.Warn("original and corrected files differ in line count; extra lines ignored")
	}

	if c.opts.Store != nil {
		run, err := c.opts.Store.BeginRun(ctx, store.Run{
			OrigPath:    origPath,
			CorPath:     corPath,
			Levenshtein: c.aligner.Plain(),
			Merge:       c.aligner.Strategy().String(),
		})
		if err != nil {
			return sum, err
		}
		sum.RunID = run.ID
	}

	c.log.Info("processing pairs", "pairs", len(pairs), "workers", c.opts.Workers)
	sents, err := c.Align(ctx, pairs)
	if err != nil {
		return sum, err
	}

	f, err := os.Create(sum.Output)
	if err != nil {
		return sum, fmt.Errorf("create %s: %w", sum.Output, err)
	}
	defer f.Close()
	if sum.Edits, err = c.Write(ctx, f, sum.RunID, sents); err != nil {
		return sum, fmt.Errorf("write %s: %w", sum.Output, err)
	}
	sum.Sentences = len(sents)
	if err := f.Close(); err != nil {
		return sum, err
	}
	c.log.Info("wrote m2", "path", sum.Output, "sentences", sum.Sentences, "edits", sum.Edits, "run", sum.RunID)
	return sum, nil
}
