package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-questionnaire/pkg/response"
)

func newInspectCommand() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "inspect <file.pdf>",
		Short: "Print the answers filled into a questionnaire PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			form, err := response.Extract(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if form.ApplicationID != "" {
				fmt.Fprintf(out, "Application ID: %s\n", form.ApplicationID)
			}
			answered := form.Answered()
			for _, name := range form.Names() {
				value, ok := answered[name]
				if !ok && !all {
					continue
				}
				fmt.Fprintf(out, "%s: %s\n", name, value)
			}
			fmt.Fprintf(out, "%d of %d fields answered\n", len(answered), len(form.Fields))
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include unanswered fields")
	return cmd
}
