package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-questionnaire/pkg/registration"
)

func newRegisterCommand(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a respondent interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			options := []registration.Option{
				registration.WithPromptDriver(registration.NewSurveyDriver(cmd.OutOrStdout())),
			}
			if yes {
				options = append(options, registration.WithSkipConfirm())
			}
			reg, err := registration.New(options...).Register(ctx, st)
			if err != nil {
				return err
			}
			a.logger.Info("respondent registered",
				zap.String("application_id", reg.ApplicationID),
				zap.String("download_option", string(reg.DownloadOption)),
			)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the final confirmation")
	return cmd
}
