package main

import (
	"flag"
	"fmt"
	"os"

	"mfd/internal/di"
	"mfd/internal/structures"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	debug := flag.Bool("debug", false, "enable debug mode")
	batch := flag.Bool("batch", false, "run the pipeline once, write the snapshot and exit")
	flag.Parse()

	flags := &structures.CliFlags{
		ConfigPath: *configPath,
		DebugMode:  *debug,
		BatchMode:  *batch,
	}

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "mfd: %s\n", err)
		os.Exit(1)
	}
}
