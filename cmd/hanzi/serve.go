package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/hazyhaar/hanzi-registry/pkg/api"
	"github.com/hazyhaar/hanzi-registry/pkg/config"
	"github.com/hazyhaar/hanzi-registry/pkg/dict"
	"github.com/hazyhaar/hanzi-registry/pkg/importer"
)

// loadConfig reads the config file named by -config and applies the
// command-line overrides that were set.
func loadConfig(path, dir string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if dir != "" {
		cfg.Corpus.Dir = dir
	}
	return cfg, nil
}

func cmdServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "", "path to config file (default $HANZI_CONFIG or config.yaml)")
	addr := fs.String("addr", "", "listen address (overrides config)")
	dir := fs.String("dir", "", "corpus directory (overrides config)")
	watch := fs.Bool("watch", false, "reload corpora when files change")
	fs.Parse(args)

	cfg, err := loadConfig(*cfgPath, *dir)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *watch {
		cfg.Corpus.Watch = true
	}
	logger := newLogger(cfg.Log, os.Stderr)

	reg := dict.NewRegistry(cfg.Corpus.Dir, logger)
	if err := reg.Load(); err != nil {
		return fmt.Errorf("load corpora: %w", err)
	}
	logger.Info("corpora loaded", "dir", cfg.Corpus.Dir, "count", reg.CorpusCount(), "words", reg.TotalWords())

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewRouter(reg, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// SIGHUP: reload corpora.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	defer signal.Stop(sighup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-sighup:
				logger.Info("SIGHUP received, reloading corpora")
				reload(reg, logger)
			}
		}
	}()

	if cfg.Corpus.Watch {
		w, err := dict.NewWatcher(reg, logger, cfg.Corpus.Debounce)
		if err != nil {
			return err
		}
		w.SetNotifier(func(err error) {
			if err == nil {
				logger.Info("corpora reloaded", "count", reg.CorpusCount(), "words", reg.TotalWords())
			}
		})
		go func() {
			if err := w.Run(ctx); err != nil {
				logger.Error("corpus watcher stopped", "error", err)
			}
		}()
		logger.Info("watching corpus directory", "dir", cfg.Corpus.Dir, "debounce", cfg.Corpus.Debounce)
	}

	if cfg.Sources.CheckInterval > 0 {
		sdb, err := openSources(cfg.SourcesDBPath())
		if err != nil {
			return err
		}
		defer sdb.Close()
		checker := importer.NewChecker(sdb, logger, cfg.Sources.CheckInterval)
		go checker.Start(ctx)
		logger.Info("source checker started", "interval", cfg.Sources.CheckInterval)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("hanzi registry listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func reload(reg *dict.Registry, logger *slog.Logger) {
	if err := reg.Reload(); err != nil {
		logger.Error("reload failed", "error", err)
		return
	}
	logger.Info("corpora reloaded", "count", reg.CorpusCount(), "words", reg.TotalWords())
}

// openSources opens the source database and seeds it with every registered
// adapter.
func openSources(path string) (*importer.SourceDB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	sdb, err := importer.OpenSourceDB(path)
	if err != nil {
		return nil, err
	}
	if err := sdb.Seed(importer.All()); err != nil {
		sdb.Close()
		return nil, fmt.Errorf("seed sources: %w", err)
	}
	return sdb, nil
}
