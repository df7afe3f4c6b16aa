package main

import (
	"fmt"
	"os"
)

const version = "0.3.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = cmdServe(os.Args[2:])
	case "mcp":
		err = cmdMCP(os.Args[2:])
	case "import":
		err = cmdImport(os.Args[2:])
	case "decode":
		err = cmdDecode(os.Args[2:], os.Stdin, os.Stdout, os.Stderr)
	case "normalize":
		err = cmdNormalize(os.Args[2:], os.Stdin, os.Stdout)
	case "search":
		err = cmdSearch(os.Args[2:], os.Stdout)
	case "version":
		fmt.Println(version)
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "hanzi %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: hanzi <command> [flags]

Commands:
  serve      Start the HTTP server
  mcp        Serve the MCP tools on stdin/stdout
  import     Download and build corpora from public sources
  decode     Convert tone-number pinyin to tone marks
  normalize  Normalize a search query
  search     Search the local corpora
  version    Print the version
`)
}
