package recorder

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/memoro/internal/export"
	"github.com/ternarybob/memoro/internal/interfaces"
)

// Config controls recorder construction
type Config struct {
	// TestName identifies the owning test run; copied onto every entry
	TestName string `validate:"required"`

	// EnableConsole renders every entry to the console collaborator as it is
	// recorded. When false the console side effect is entirely suppressed;
	// stored data is unaffected either way.
	EnableConsole bool

	// Console overrides the default console collaborator. Nil with
	// EnableConsole set builds the standard console writer.
	Console arbor.ILogger

	// AutoExport, when set, is run once at Close
	AutoExport *AutoExportConfig
}

// AutoExportConfig describes the export performed at scope exit
type AutoExportConfig struct {
	// Formats to render; empty means all supported formats
	Formats []export.Format

	// Sink receives the rendered bytes, one write per format
	Sink interfaces.ExportSink

	// BaseName for export names; default "<test-name>-<short run ID>"
	BaseName string
}

// NewConfig returns a Config with the documented defaults: console rendering
// enabled, no auto-export
func NewConfig(testName string) Config {
	return Config{
		TestName:      testName,
		EnableConsole: true,
	}
}

// validateConfig checks the config and fills auto-export defaults
func validateConfig(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid recorder config: %w", err)
	}

	if cfg.AutoExport != nil {
		if cfg.AutoExport.Sink == nil {
			return errors.New("invalid recorder config: auto-export requires a sink")
		}
		if len(cfg.AutoExport.Formats) == 0 {
			cfg.AutoExport.Formats = export.AllFormats()
		}
		for _, format := range cfg.AutoExport.Formats {
			if !format.IsValid() {
				return fmt.Errorf("invalid recorder config: %w: %q", export.ErrUnknownFormat, format)
			}
		}
	}
	return nil
}
