package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-questionnaire/pkg/orchestrator"
	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
)

type renderFlags struct {
	respondentFile string
	name           string
	profession     string
	specialization string
	state          string
	applicationID  string
	registeredAt   string

	mode     string
	section  string
	output   string
	renderer string

	fontRegular string
	fontBold    string
	source      string
	preset      string
}

func newRenderCommand(a *app) *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the full questionnaire or one section",
		Long: `Render a questionnaire for a respondent.

Respondent details come from --respondent (YAML), the individual flags, or,
when only --application-id is given, the registration in the store.
Rendering from the CLI does not consume the respondent's one-time downloads.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.run(cmd, a)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.respondentFile, "respondent", "", "YAML file with respondent details")
	fl.StringVar(&f.name, "name", "", "respondent name")
	fl.StringVar(&f.profession, "profession", "", "respondent type")
	fl.StringVar(&f.specialization, "specialization", "", "area of specialization")
	fl.StringVar(&f.state, "state", "", "state or union territory")
	fl.StringVar(&f.applicationID, "application-id", "", "8-digit application id")
	fl.StringVar(&f.registeredAt, "registered-at", "", "registration time (RFC 3339, default now)")
	fl.StringVar(&f.mode, "mode", "", "full or section (section when --section is set)")
	fl.StringVar(&f.section, "section", "", "section key for section mode")
	fl.StringVarP(&f.output, "output", "o", "", "output path, - for stdout (default: generated filename)")
	fl.StringVar(&f.renderer, "renderer", "", "renderer name (pdf, text)")
	fl.StringVar(&f.fontRegular, "font-regular", "", "regular TrueType font (overrides fonts.regular)")
	fl.StringVar(&f.fontBold, "font-bold", "", "bold TrueType font (overrides fonts.bold)")
	fl.StringVar(&f.source, "source", "", "question set file or URL (overrides questions.source)")
	fl.StringVar(&f.preset, "preset", "", "question set preset YAML (overrides questions.preset)")
	return cmd
}

func (f *renderFlags) run(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()

	cfg := *a.cfg
	if f.fontRegular != "" || f.fontBold != "" {
		cfg.Fonts.Regular, cfg.Fonts.Bold = f.fontRegular, f.fontBold
	}
	if f.source != "" {
		cfg.Questions.Source = f.source
	}
	if f.preset != "" {
		cfg.Questions.Preset = f.preset
	}
	opts, err := orchestratorOptions(&cfg)
	if err != nil {
		return err
	}

	respondent, err := f.respondent(ctx, a)
	if err != nil {
		return err
	}

	mode := questionnaire.ModeFull
	if f.mode != "" {
		if mode, err = questionnaire.ParseMode(f.mode); err != nil {
			return err
		}
	} else if f.section != "" {
		mode = questionnaire.ModeSection
	}

	result, err := orchestrator.New(opts...).Generate(ctx, orchestrator.Request{
		Respondent: respondent,
		Mode:       mode,
		Section:    f.section,
		Renderer:   f.renderer,
	})
	if err != nil {
		return err
	}

	if f.output == "-" {
		_, err := cmd.OutOrStdout().Write(result.Content)
		return err
	}
	path := f.output
	if path == "" {
		path = result.Filename
	}
	if err := os.WriteFile(path, result.Content, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	a.logger.Info("questionnaire rendered",
		zap.String("application_id", respondent.ApplicationID),
		zap.String("mode", string(mode)),
		zap.String("path", path),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Questionnaire written to %s\n", path)
	return nil
}

// respondent assembles the header data from the YAML file, the flags and,
// as a last resort, the store.
func (f *renderFlags) respondent(ctx context.Context, a *app) (questionnaire.Respondent, error) {
	var r questionnaire.Respondent
	if f.respondentFile != "" {
		data, err := os.ReadFile(f.respondentFile)
		if err != nil {
			return r, fmt.Errorf("read respondent: %w", err)
		}
		if err := yaml.Unmarshal(data, &r); err != nil {
			return r, fmt.Errorf("parse respondent %s: %w", f.respondentFile, err)
		}
	}

	override(&r.Name, f.name)
	override(&r.Profession, f.profession)
	override(&r.Specialization, f.specialization)
	override(&r.State, f.state)
	override(&r.ApplicationID, f.applicationID)
	if f.registeredAt != "" {
		at, err := time.Parse(time.RFC3339, f.registeredAt)
		if err != nil {
			return r, fmt.Errorf("parse --registered-at: %w", err)
		}
		r.RegisteredAt = at
	}

	if r.Name == "" && r.ApplicationID != "" {
		st, err := a.openStore(ctx)
		if err != nil {
			return r, err
		}
		defer st.Close()
		reg, err := st.Respondent(ctx, r.ApplicationID)
		if err != nil {
			return r, fmt.Errorf("load respondent %s: %w", r.ApplicationID, err)
		}
		return reg.Respondent(), nil
	}

	if r.RegisteredAt.IsZero() {
		r.RegisteredAt = time.Now()
	}
	return r, nil
}

func override(dst *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = value
	}
}
