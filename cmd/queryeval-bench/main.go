package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/quokkasearch/queryeval/internal/config"
)

func main() {
	mode := flag.String("mode", "", "Mode to run: index or search")
	configPath := flag.String("config", "", "Path to a YAML config file (optional)")

	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	cfg.EnvOverride()

	switch *mode {
	case "index":
		runIndex(cfg)
	case "search":
		runSearch(cfg)
	default:
		fmt.Println("Usage: queryeval-bench -mode=index|search [-config=path.yaml]")
		os.Exit(1)
	}
}
