package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"dario.cat/mergo"
	"github.com/alecthomas/kingpin"
	"go.uber.org/zap"

	"humano.dev/conserje/internal/logging"
	"humano.dev/conserje/microsite"
	"humano.dev/conserje/output"
)

type config struct {
	Input     string
	JSON      string
	TS        string
	Check     bool
	Diff      bool
	LogLevel  string
	LogFormat string
}

func defaultConfig() config {
	return config{
		Input:     "doc/microsite-faqs.xlsx",
		JSON:      "src/app/demo/conversations-data.json",
		TS:        "src/app/demo/conversations-data.ts",
		LogLevel:  "info",
		LogFormat: "console",
	}
}

func main() {
	kingpin.CommandLine.Help = "Convert the microsite FAQ workbook to JSON and TypeScript."
	cfg, err := parseArgs(kingpin.CommandLine, os.Args[1:])
	if err != nil {
		kingpin.CommandLine.FatalUsage("%s\n", err)
	}
	if err := mergo.Merge(&cfg, defaultConfig()); err != nil {
		kingpin.Fatalf("applying defaults: %v", err)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("conversion failed", zap.String("input", cfg.Input), zap.Error(err))
		os.Exit(1)
	}
}

func parseArgs(app *kingpin.Application, args []string) (config, error) {
	var cfg config
	app.Flag("input", "FAQ workbook (default doc/microsite-faqs.xlsx)").Short('i').StringVar(&cfg.Input)
	app.Flag("json", "Output JSON file (default src/app/demo/conversations-data.json)").StringVar(&cfg.JSON)
	app.Flag("ts", "Output TypeScript file (default src/app/demo/conversations-data.ts)").StringVar(&cfg.TS)
	app.Flag("check", "Fail if the output files are out of date; write nothing").BoolVar(&cfg.Check)
	app.Flag("diff", "Print a diff of the changes before writing").BoolVar(&cfg.Diff)
	app.Flag("log-level", "Log level").EnumVar(&cfg.LogLevel, logging.Levels...)
	app.Flag("log-format", "Log format").EnumVar(&cfg.LogFormat, "console", "json")
	if _, err := app.Parse(args); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func run(cfg config, log *zap.Logger) error {
	if _, err := os.Stat(cfg.Input); err != nil {
		return fmt.Errorf("input workbook: %w", err)
	}

	fmt.Printf("Reading %s...\n", cfg.Input)
	res, err := microsite.ExtractFile(cfg.Input)
	if res != nil {
		for _, name := range res.Missing {
			log.Warn("profile sheet not found", zap.String("sheet", name))
		}
	}
	if err != nil {
		return err
	}
	for _, p := range res.Profiles {
		fmt.Printf("  %s: %d conversations\n", p.Name, len(p.Conversations))
	}

	data, err := output.JSON(res.Profiles)
	if err != nil {
		return err
	}
	if err := output.Validate(microsite.Schema, data); err != nil {
		return err
	}
	ts, err := microsite.TypeScript(res.Profiles, cfg.Input)
	if err != nil {
		return err
	}

	var dw io.Writer
	if cfg.Diff {
		dw = os.Stdout
	}
	files := []output.File{
		{Path: cfg.JSON, Data: data},
		{Path: cfg.TS, Data: ts},
	}
	changed, err := output.Write(files, output.Options{Check: cfg.Check, Diff: dw})
	if errors.Is(err, output.ErrChanged) {
		return fmt.Errorf("%v: %w", changed, err)
	}
	if err != nil {
		return err
	}

	if cfg.Check {
		fmt.Println("Generated files are up to date")
		return nil
	}
	fmt.Printf("Total: %d profiles\n", len(res.Profiles))
	fmt.Printf("Wrote %s and %s\n", cfg.JSON, cfg.TS)
	return nil
}
