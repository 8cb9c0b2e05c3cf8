// Command questionnaire renders Centre-State Relations questionnaires,
// registers respondents and serves the download endpoints.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-questionnaire/internal/config"
	"github.com/goliatone/go-questionnaire/pkg/orchestrator"
	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
	"github.com/goliatone/go-questionnaire/pkg/renderers/pdf"
	"github.com/goliatone/go-questionnaire/pkg/store/sqlite"
)

// app carries state shared by every subcommand.
type app struct {
	configPath string
	database   string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "questionnaire",
		Short:        "Render and distribute Centre-State Relations questionnaires",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if a.database != "" {
				cfg.Storage.DatabasePath = a.database
			}
			logger, err := cfg.Logging.Logger(a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "questionnaire.yaml", "configuration file (missing file uses defaults)")
	flags.StringVar(&a.database, "db", "", "SQLite database path (overrides storage.database_path)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newRenderCommand(a),
		newSectionsCommand(a),
		newRegisterCommand(a),
		newServeCommand(a),
		newInspectCommand(),
	)
	return root
}

// openStore opens the configured database.
func (a *app) openStore(ctx context.Context) (*sqlite.Store, error) {
	a.logger.Debug("opening store", zap.String("path", a.cfg.Storage.DatabasePath))
	return sqlite.Open(ctx, a.cfg.Storage.DatabasePath)
}

// orchestratorOptions translates the fonts and questions sections into
// orchestrator options.
func orchestratorOptions(cfg *config.Config) ([]orchestrator.Option, error) {
	var opts []orchestrator.Option
	if cfg.Fonts.Regular != "" || cfg.Fonts.Bold != "" {
		opts = append(opts, orchestrator.WithPDFOptions(pdf.WithFontFiles(cfg.Fonts.Regular, cfg.Fonts.Bold)))
	}
	if cfg.Questions.Source != "" {
		opts = append(opts, orchestrator.WithQuestionSource(questionnaire.SourceFromLocation(cfg.Questions.Source)))
	}
	if cfg.Questions.Preset != "" {
		data, err := os.ReadFile(cfg.Questions.Preset)
		if err != nil {
			return nil, fmt.Errorf("read preset: %w", err)
		}
		preset, err := orchestrator.NewPresetTransformer(data)
		if err != nil {
			return nil, err
		}
		opts = append(opts, orchestrator.WithTransformer(preset))
	}
	return opts, nil
}
