package main

import (
	"flag"
	"fmt"
	"os"

	"homefeed/internal/di"
	"homefeed/internal/structures"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	debug := flag.Bool("debug", false, "mirror logs to stderr")
	flag.Parse()

	_, err := di.InitApp(&structures.CliFlags{
		ConfigPath: *configPath,
		DebugMode:  *debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "homefeed: %v\n", err)
		os.Exit(1)
	}
}
