// Command parallel2m2 converts parallel original and corrected text files,
// one sentence per line, into M2 annotations.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/alecthomas/kong"

	"m2align/internal/align"
	"m2align/internal/annotate"
	"m2align/internal/convert"
	"m2align/internal/logging"
	"m2align/internal/m2"
	"m2align/internal/store"
	"m2align/pkg/options"
)

type Globals struct {
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level."`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log format."`

	Stdout io.Writer `kong:"-"`
}

func (g *Globals) logger() (*slog.Logger, error) {
	return logging.Init(os.Stderr, g.LogLevel, g.LogFormat)
}

// AlignFlags are shared by every command that aligns sentences.
type AlignFlags struct {
	Tok           bool     `name:"tok" help:"Input is untokenized; tokenize it first."`
	Lev           bool     `name:"lev" help:"Align with plain Levenshtein instead of the linguistically enhanced Damerau-Levenshtein distance."`
	Merge         string   `name:"merge" default:"rules" enum:"rules,all-split,all-merge,all-equal" help:"Merging strategy: all-split merges nothing (MSSDI -> M, S, S, D, I); all-merge merges adjacent non-matches (M, SSDI); all-equal merges adjacent same-type non-matches (M, SS, D, I); rules applies the merge rule table."`
	Rules         string   `name:"rules" type:"existingfile" help:"YAML merge rule table replacing the built-in one."`
	FunctionWords []string `name:"function-word" help:"Extra words treated as function words by the merge rules."`
}

func (f AlignFlags) aligner() (*align.Aligner, error) {
	opts := []options.Options{options.WithMerge(f.Merge), options.WithFunctionWords(f.FunctionWords...)}
	if f.Lev {
		opts = append(opts, options.WithLevenshtein())
	}
	if f.Rules != "" {
		opts = append(opts, options.WithRulesFile(f.Rules))
	}
	return align.New(opts...)
}

type ConvertCmd struct {
	AlignFlags

	Orig      string `name:"orig" required:"" type:"existingfile" help:"Path to the original text file (.xz accepted)."`
	Cor       string `name:"cor" required:"" type:"existingfile" help:"Path to the corrected text file (.xz accepted)."`
	Out       string `name:"out" required:"" help:"Output M2 file; .m2 is appended when missing."`
	DB        string `name:"db" help:"SQLite database that records the run and its edits."`
	Workers   int    `name:"workers" default:"0" help:"Parallel alignment workers (0 = GOMAXPROCS)."`
	Annotator int    `name:"annotator" default:"0" help:"Annotator id written on every edit."`
}

func (c *ConvertCmd) Run(g *Globals) error {
	log, err := g.logger()
	if err != nil {
		return err
	}
	a, err := c.aligner()
	if err != nil {
		return err
	}
	opts := convert.Options{Tokenize: c.Tok, Workers: c.Workers, AnnotatorID: c.Annotator, Logger: log}
	if c.DB != "" {
		db, err := store.Open(c.DB)
		if err != nil {
			return err
		}
		defer db.Close()
		opts.Store = db
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	_, err = convert.New(a, opts).Convert(ctx, c.Orig, c.Cor, c.Out)
	return err
}

type AlignCmd struct {
	AlignFlags

	Orig string `arg:"" help:"Original sentence."`
	Cor  string `arg:"" help:"Corrected sentence."`
}

func (c *AlignCmd) Run(g *Globals) error {
	if _, err := g.logger(); err != nil {
		return err
	}
	a, err := c.aligner()
	if err != nil {
		return err
	}
	ann := annotate.New(c.Tok)
	orig, cor := ann.Sentence(c.Orig), ann.Sentence(c.Cor)
	res := a.Annotate(align.AsFeatures(orig), align.AsFeatures(cor))
	words := make([]string, len(orig))
	for i, t := range orig {
		words[i] = t.Form
	}
	_, err = fmt.Fprint(g.Stdout, m2.Format(words, res.Edits, 0))
	return err
}

type StatsCmd struct {
	DB    string `name:"db" required:"" type:"existingfile" help:"SQLite database written by convert --db."`
	RunID string `arg:"" name:"run" help:"Run id."`
}

func (c *StatsCmd) Run(g *Globals) error {
	if _, err := g.logger(); err != nil {
		return err
	}
	db, err := store.Open(c.DB)
	if err != nil {
		return err
	}
	defer db.Close()
	ctx := context.Background()
	run, err := db.Run(ctx, c.RunID)
	if err != nil {
		return err
	}
	counts, err := db.Stats(ctx, c.RunID)
	if err != nil {
		return err
	}
	cats := make([]string, 0, len(counts))
	for k := range counts {
		cats = append(cats, string(k))
	}
	sort.Strings(cats)
	fmt.Fprintf(g.Stdout, "run %s (%s, merge=%s, lev=%t)\n", run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), run.Merge, run.Levenshtein)
	for _, k := range cats {
		fmt.Fprintf(g.Stdout, "%-10s %d\n", k, counts[align.Category(k)])
	}
	return nil
}

type CLI struct {
	Globals

	Convert ConvertCmd `cmd:"" default:"withargs" help:"Convert a parallel corpus into an M2 file."`
	Align   AlignCmd   `cmd:"" help:"Align a single sentence pair and print its M2 block."`
	Stats   StatsCmd   `cmd:"" help:"Print edit counts per category for a recorded run."`
}

func newParser(cli *CLI, opts ...kong.Option) (*kong.Kong, error) {
	if cli.Stdout == nil {
		cli.Stdout = os.Stdout
	}
	opts = append([]kong.Option{
		kong.Name("parallel2m2"),
		kong.Description("Convert parallel original and corrected text files (one sentence per line) into M2 format.\n" +
			"The default uses Damerau-Levenshtein alignment with merging rules and assumes tokenized text.\n" +
			"Strategies: " + strings.Join(align.Strategies(), ", ")),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	}, opts...)
	return kong.New(cli, opts...)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	err = ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
