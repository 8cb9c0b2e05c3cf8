package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-questionnaire/pkg/orchestrator"
)

func newSectionsCommand(a *app) *cobra.Command {
	var source, preset string
	cmd := &cobra.Command{
		Use:   "sections",
		Short: "List the question set sections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *a.cfg
			if source != "" {
				cfg.Questions.Source = source
			}
			if preset != "" {
				cfg.Questions.Preset = preset
			}
			opts, err := orchestratorOptions(&cfg)
			if err != nil {
				return err
			}
			set, err := orchestrator.New(opts...).QuestionSet(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tNAME\tQUESTIONS")
			for _, section := range set.Sections {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", section.Key, section.DisplayName(), len(section.Questions))
			}
			fmt.Fprintf(tw, "\t%s\t%d\n", "Total", set.QuestionCount())
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "question set file or URL (overrides questions.source)")
	cmd.Flags().StringVar(&preset, "preset", "", "question set preset YAML (overrides questions.preset)")
	return cmd
}
