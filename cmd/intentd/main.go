package main

import (
	"flag"
	"fmt"
	"intentd/internal/di"
	"intentd/internal/structures"
	"os"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config/config.yaml", "path to the config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "log to console at debug level")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "intentd: %s\n", err)
		os.Exit(1)
	}
}
