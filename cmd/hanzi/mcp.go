package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/hanzi-registry/pkg/api"
	"github.com/hazyhaar/hanzi-registry/pkg/dict"
)

// cmdMCP serves the registry tools over stdio. Logs go to stderr so they
// never mix with the protocol stream. Corpora load on the first tool call.
func cmdMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	cfgPath := fs.String("config", "", "path to config file (default $HANZI_CONFIG or config.yaml)")
	dir := fs.String("dir", "", "corpus directory (overrides config)")
	fs.Parse(args)

	cfg, err := loadConfig(*cfgPath, *dir)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Log, os.Stderr)

	reg := dict.NewRegistry(cfg.Corpus.Dir, logger)

	srv := server.NewMCPServer("hanzi-registry", version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	api.RegisterMCPTools(srv, reg, logger)

	logger.Info("serving MCP on stdio", "dir", cfg.Corpus.Dir)
	if err := server.ServeStdio(srv); err != nil {
		return fmt.Errorf("serve stdio: %w", err)
	}
	return nil
}
