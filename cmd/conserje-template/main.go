package main

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/alecthomas/kingpin"
	"go.uber.org/zap"

	"humano.dev/conserje/excel"
	"humano.dev/conserje/internal/logging"
)

type config struct {
	Output   string
	Force    bool
	LogLevel string
}

func defaultConfig() config {
	return config{
		Output:   "conserje-template.xlsx",
		LogLevel: "info",
	}
}

func main() {
	kingpin.CommandLine.Help = "Write an empty concierge workbook with the expected sheets and headers."
	cfg, err := parseArgs(kingpin.CommandLine, os.Args[1:])
	if err != nil {
		kingpin.CommandLine.FatalUsage("%s\n", err)
	}
	if err := mergo.Merge(&cfg, defaultConfig()); err != nil {
		kingpin.Fatalf("applying defaults: %v", err)
	}

	log := logging.New(cfg.LogLevel, "console")
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("writing template failed", zap.String("output", cfg.Output), zap.Error(err))
		os.Exit(1)
	}
}

func parseArgs(app *kingpin.Application, args []string) (config, error) {
	var cfg config
	app.Flag("output", "Output workbook (default conserje-template.xlsx)").Short('o').StringVar(&cfg.Output)
	app.Flag("force", "Overwrite an existing file").BoolVar(&cfg.Force)
	app.Flag("log-level", "Log level").EnumVar(&cfg.LogLevel, logging.Levels...)
	if _, err := app.Parse(args); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func run(cfg config, log *zap.Logger) error {
	if _, err := os.Stat(cfg.Output); err == nil && !cfg.Force {
		return fmt.Errorf("%s exists, use --force to overwrite", cfg.Output)
	}

	bs, err := excel.ConserjeTemplateXLSX()
	if err != nil {
		return fmt.Errorf("creating workbook: %w", err)
	}
	if err := os.WriteFile(cfg.Output, bs, 0o644); err != nil {
		return err
	}
	log.Debug("template written", zap.Int("bytes", len(bs)))
	fmt.Printf("Wrote %s\n", cfg.Output)
	return nil
}
