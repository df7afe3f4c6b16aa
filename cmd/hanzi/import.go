package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hazyhaar/hanzi-registry/pkg/importer"
)

func cmdImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	source := fs.String("source", "", "adapter ID to import (e.g. cc-cedict)")
	all := fs.Bool("all", false, "import all available sources")
	outputDir := fs.String("output-dir", "corpora", "output directory for corpora")
	setURL := fs.String("set-url", "", "replace the source URL of -source instead of importing")
	check := fs.Bool("check", false, "check every source URL once and exit")
	fs.Parse(args)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	sdb, err := openSources(filepath.Join(*outputDir, "sources.db"))
	if err != nil {
		return err
	}
	defer sdb.Close()

	switch {
	case *check:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		for _, r := range importer.NewChecker(sdb, logger, time.Hour).CheckAll(ctx) {
			if r.OK() {
				fmt.Printf("  %-20s  %d\n", r.AdapterID, r.Status)
			} else {
				fmt.Printf("  %-20s  FAIL %d %s\n", r.AdapterID, r.Status, r.Error)
			}
		}
		return nil

	case *setURL != "":
		if *source == "" {
			return fmt.Errorf("-set-url requires -source")
		}
		if err := sdb.SetURL(*source, *setURL); err != nil {
			return err
		}
		fmt.Printf("[%s] URL -> %s\n", *source, *setURL)
		return nil

	case !*all && *source == "":
		return listSources(sdb)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	if *all {
		var failed int
		for _, a := range importer.All() {
			if err := runImport(ctx, sdb, a, *outputDir); err != nil {
				fmt.Fprintf(os.Stderr, "[%s] ERROR: %v\n", a.ID(), err)
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d imports failed", failed, len(importer.All()))
		}
		return nil
	}

	a, err := importer.Get(*source)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Available sources:")
		for _, a := range importer.All() {
			fmt.Fprintf(os.Stderr, "  %s\n", a.ID())
		}
		return err
	}
	return runImport(ctx, sdb, a, *outputDir)
}

func runImport(ctx context.Context, sdb *importer.SourceDB, a importer.Adapter, outputDir string) error {
	url, err := sdb.GetURL(a.ID())
	if err != nil {
		return fmt.Errorf("source url: %w", err)
	}
	fmt.Printf("[%s] importing from %s ...\n", a.ID(), url)
	start := time.Now()
	c, err := a.Import(ctx, url, outputDir)
	if err != nil {
		return err
	}
	if err := sdb.RecordImport(a.ID(), c.Len()); err != nil {
		return err
	}
	fmt.Printf("[%s] OK -> %s/%s/ (%d words, %d malformed, %s)\n",
		a.ID(), outputDir, a.CorpusID(), c.Len(), c.Stats.Malformed, time.Since(start).Round(time.Millisecond))
	return nil
}

func listSources(sdb *importer.SourceDB) error {
	sources, err := sdb.ListSources()
	if err != nil {
		return err
	}
	fmt.Println("Available sources:")
	fmt.Println()
	for _, src := range sources {
		status := ""
		if src.LastStatus != nil {
			status = fmt.Sprintf("  [%d]", *src.LastStatus)
		}
		imported := ""
		if src.LastImport != nil && src.LastWords != nil {
			imported = fmt.Sprintf("  imported %s (%d words)", time.Unix(*src.LastImport, 0).Format(time.DateOnly), *src.LastWords)
		}
		fmt.Printf("  %-15s  %s  (-> %s)%s%s\n", src.AdapterID, src.Description, src.CorpusID, status, imported)
	}
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  hanzi import -source <id> [-output-dir <dir>]")
	fmt.Println("  hanzi import -all [-output-dir <dir>]")
	fmt.Println("  hanzi import -source <id> -set-url <url>")
	fmt.Println("  hanzi import -check")
	return nil
}
