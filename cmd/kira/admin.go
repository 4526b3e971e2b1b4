package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/kira/internal/cli"
	"github.com/terraincognita07/kira/internal/config"
)

func newResetPasswordCommand() *cobra.Command {
	var (
		email  string
		prompt bool
	)
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Reset an account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New()
			if err != nil {
				return err
			}
			cfg.SetupLogging()
			return cli.RunResetPasswordCommand(cli.ResetPasswordOptions{
				DBPath: cfg.DBPath,
				Email:  email,
				Prompt: prompt,
				Stdin:  os.Stdin,
				Out:    cmd.OutOrStdout(),
			})
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email (required)")
	cmd.Flags().BoolVar(&prompt, "prompt", false, "Ask for the new password instead of issuing a temporary one")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newDemoCommand() *cobra.Command {
	demoCmd := &cobra.Command{Use: "demo", Short: "Demo data tools"}

	var input, out string
	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Partition a sample export into monthly demo files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunDemoBuildCommand(input, out, cmd.OutOrStdout())
		},
	}
	buildCmd.Flags().StringVarP(&input, "input", "i", "", "JSON array of sample entries (required)")
	buildCmd.Flags().StringVarP(&out, "out", "o", "data/monthly", "Output directory")
	_ = buildCmd.MarkFlagRequired("input")

	demoCmd.AddCommand(buildCmd)
	return demoCmd
}
