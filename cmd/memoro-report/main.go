package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/memoro/internal/common"
	"github.com/ternarybob/memoro/internal/export"
	"github.com/ternarybob/memoro/internal/summary"
)

// formatList is a custom flag type that allows multiple -format flags
type formatList []string

func (f *formatList) String() string {
	return fmt.Sprintf("%v", *f)
}

func (f *formatList) Set(value string) error {
	*f = append(*f, value)
	return nil
}

var (
	// Command-line flags
	formats      formatList
	configFile   = flag.String("config", "", "Configuration file path (TOML)")
	configFileC  = flag.String("c", "", "Configuration file path (shorthand)")
	inputFile    = flag.String("input", "", "JSON session export to re-render (overrides config)")
	inputFileI   = flag.String("i", "", "JSON session export to re-render (shorthand)")
	outputDir    = flag.String("output", "", "Output directory for rendered reports (overrides config)")
	outputDirO   = flag.String("o", "", "Output directory (shorthand)")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")
)

func init() {
	flag.Var(&formats, "format", "Report format: json, txt or csv (can be specified multiple times)")
	flag.Var(&formats, "f", "Report format (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("Memoro version %s\n", common.GetFullVersion())
		os.Exit(0)
	}

	configPath := *configFile
	if *configFileC != "" {
		configPath = *configFileC
	}

	config, err := common.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	applyFlagOverrides(config)

	common.PrintBanner(common.GetVersion())
	logger := common.InitLogger(config)

	if err := run(config, logger); err != nil {
		logger.Error().Err(err).Msg("Report generation failed")
		os.Exit(1)
	}
}

// applyFlagOverrides applies CLI flags on top of file and env configuration
// (shorthand flags take precedence)
func applyFlagOverrides(config *common.Config) {
	if *inputFile != "" {
		config.Report.Input = *inputFile
	}
	if *inputFileI != "" {
		config.Report.Input = *inputFileI
	}
	if *outputDir != "" {
		config.Report.OutputDir = *outputDir
	}
	if *outputDirO != "" {
		config.Report.OutputDir = *outputDirO
	}
	if len(formats) > 0 {
		config.Report.Formats = formats
	}
}

// run decodes the recorded session and renders every requested format.
// The summary is recomputed from the decoded entries, not taken from the
// document, so the rendered aggregates always match the entry list.
func run(config *common.Config, logger arbor.ILogger) error {
	input := config.Report.Input
	if input == "" {
		return fmt.Errorf("no input file: pass -input or set report.input")
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read session export: %w", err)
	}

	doc, err := export.Decode(data)
	if err != nil {
		return err
	}

	start := doc.TestSummary.StartTime
	end := doc.TestSummary.EndTime
	if len(doc.LogEntries) > 0 {
		if start.IsZero() {
			start = doc.LogEntries[0].Timestamp
		}
		if end.IsZero() {
			end = doc.LogEntries[len(doc.LogEntries)-1].Timestamp
		}
	}

	sum, err := summary.Summarize(doc.LogEntries, doc.TestSummary.TestName, start, end)
	if err != nil {
		return err
	}

	logger.Info().
		Str("test", sum.TestName).
		Int("entries", sum.TotalLogEntries).
		Int("errors", sum.ErrorCount).
		Msg("Session decoded")

	sink := export.NewFileSink(config.Report.OutputDir)
	baseName := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	for _, name := range config.Report.Formats {
		format, err := export.ParseFormat(name)
		if err != nil {
			return err
		}

		rendered, err := export.Export(doc.LogEntries, sum, format)
		if err != nil {
			return err
		}

		fileName := fmt.Sprintf("%s.%s", baseName, format.Extension())
		if err := sink.Write(fileName, rendered); err != nil {
			return err
		}
		logger.Info().
			Str("format", format.String()).
			Str("file", filepath.Join(config.Report.OutputDir, fileName)).
			Msg("Report written")
	}

	return nil
}
