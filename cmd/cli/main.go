package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/de-tools/finreport/pkg/runtime/terminal"
	"github.com/de-tools/finreport/pkg/services/llm"
)

func main() {
	level := zerolog.WarnLevel
	if os.Getenv("FINREPORT_DEBUG") != "" {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	cli := terminal.NewCLI(terminal.Options{
		Registry: llm.NewDefaultRegistry(),
		Output:   os.Stdout,
		Logger:   &logger,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
