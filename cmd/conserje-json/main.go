package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"dario.cat/mergo"
	"github.com/alecthomas/kingpin"
	"go.uber.org/zap"

	"humano.dev/conserje"
	"humano.dev/conserje/internal/logging"
	"humano.dev/conserje/output"
)

type config struct {
	Input     string
	Output    string
	Check     bool
	Diff      bool
	LogLevel  string
	LogFormat string
}

func defaultConfig() config {
	return config{
		Output:    "src/data/conserje.json",
		LogLevel:  "info",
		LogFormat: "console",
	}
}

func main() {
	kingpin.CommandLine.Help = "Convert the concierge source-of-truth workbook to JSON."
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

// parseArgs reads the command line into a config. Unset flags stay zero
// so defaults can be merged in afterwards.
func parseArgs(app *kingpin.Application, args []string) (config, error) {
	var cfg config
	app.Arg("input", "Path to the source-of-truth .xlsx workbook").Required().StringVar(&cfg.Input)
	app.Flag("output", "Output JSON file (default src/data/conserje.json)").Short('o').StringVar(&cfg.Output)
	app.Flag("check", "Fail if the output file is out of date; write nothing").BoolVar(&cfg.Check)
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

	doc, err := conserje.ConvertFile(cfg.Input)
	if err != nil {
		return err
	}
	for _, s := range doc.Sheets {
		if !s.Found {
			log.Debug("sheet not in workbook", zap.String("sheet", s.Name))
			continue
		}
		log.Debug("sheet converted",
			zap.String("sheet", s.Name),
			zap.Int("rows", s.Rows),
			zap.Int("items", s.Items),
			zap.Int("reglas", s.Rules))
	}

	bs, err := output.JSON(doc)
	if err != nil {
		return err
	}
	if err := output.Validate(conserje.Schema, bs); err != nil {
		return err
	}

	var dw io.Writer
	if cfg.Diff {
		dw = os.Stdout
	}
	changed, err := output.Write([]output.File{{Path: cfg.Output, Data: bs}}, output.Options{Check: cfg.Check, Diff: dw})
	if errors.Is(err, output.ErrChanged) {
		return fmt.Errorf("%s: %w", cfg.Output, err)
	}
	if err != nil {
		return err
	}

	if cfg.Check {
		fmt.Printf("%s is up to date\n", cfg.Output)
		return nil
	}
	if len(changed) == 0 {
		log.Info("output unchanged", zap.String("output", cfg.Output))
	}
	fmt.Printf("Wrote %d items and %d reglas to %s\n", len(doc.Items), len(doc.Rules), cfg.Output)
	return nil
}
