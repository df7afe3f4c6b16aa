package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/hazyhaar/hanzi-registry/pkg/dict"
	"github.com/hazyhaar/hanzi-registry/pkg/pinyin"
)

// eachInput calls fn with the joined arguments, or with every line of in
// when there are none.
func eachInput(args []string, in io.Reader, fn func(string) error) error {
	if len(args) > 0 {
		return fn(strings.Join(args, " "))
	}
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if err := fn(sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}

// cmdDecode prints the tone-mark form of numeric pinyin. Ambiguous tones are
// reported on errOut; a misplaced colon fails the command.
func cmdDecode(args []string, in io.Reader, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	fs.Parse(args)

	return eachInput(fs.Args(), in, func(s string) error {
		res, err := pinyin.Decode(s)
		var syn *pinyin.SyntaxError
		if errors.As(err, &syn) {
			return err
		}
		if err != nil {
			fmt.Fprintf(errOut, "warning: %v\n", err)
		}
		fmt.Fprintln(out, res)
		return nil
	})
}

func cmdNormalize(args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("normalize", flag.ExitOnError)
	toneless := fs.Bool("toneless", false, "also strip tone marks")
	fs.Parse(args)

	return eachInput(fs.Args(), in, func(s string) error {
		q := pinyin.NormalizeQuery(s)
		if *toneless {
			q = pinyin.StripTones(q)
		}
		fmt.Fprintln(out, q)
		return nil
	})
}

func cmdSearch(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	cfgPath := fs.String("config", "", "path to config file (default $HANZI_CONFIG or config.yaml)")
	dir := fs.String("dir", "", "corpus directory (overrides config)")
	sortBy := fs.String("sort", "", "frequency, alphabetic, level-asc or level-desc")
	version := fs.String("version", "", "HSK version for level filter and sort (2.0 or 3.0)")
	levels := fs.String("level", "", "comma-separated HSK levels to keep")
	limit := fs.Int("limit", 20, "maximum number of results (0 for all)")
	asJSON := fs.Bool("json", false, "print results as JSON")
	fs.Parse(args)

	query := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("missing query")
	}

	cfg, err := loadConfig(*cfgPath, *dir)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Log, io.Discard)

	opts := dict.SearchOptions{Limit: *limit}
	if opts.Sort, err = dict.ParseSortKey(*sortBy); err != nil {
		return err
	}
	if opts.Version, err = dict.ParseHSKVersion(*version); err != nil {
		return err
	}
	if opts.Levels, err = parseLevelList(*levels, opts.Version); err != nil {
		return err
	}

	reg := dict.NewRegistry(cfg.Corpus.Dir, logger)
	if err := reg.Load(); err != nil {
		return fmt.Errorf("load corpora: %w", err)
	}
	words, err := reg.Search(query, &opts)
	if err != nil {
		return err
	}
	return printWords(out, words, opts.Version, *asJSON)
}

func parseLevelList(s string, v dict.HSKVersion) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid level %q", part)
		}
		if n, err = v.NormalizeLevel(n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func printWords(out io.Writer, words []dict.Word, v dict.HSKVersion, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(dict.Views(words))
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, w := range words {
		level := "-"
		if n, ok := w.Level(v); ok {
			level = "HSK" + strconv.Itoa(n)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", w.DisplayText(), w.DisplayPinyin(), level, w.DisplayDefinition())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d result(s)\n", len(words))
	return nil
}
