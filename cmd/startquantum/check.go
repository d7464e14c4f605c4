package main

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/startquantum/internal/app"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Show which tools are installed",
	Long: `Check runs every installation check and prints the result without
installing anything or asking questions. Steps skipped in the
configuration are shown as declined.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, _ []string) error {
	env, err := newEnvironment(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	plan, err := app.New(env.host).Check(cmd.Context(), env.cfg)
	if err != nil {
		return err
	}

	app.PrintCheck(cmd.OutOrStdout(), plan)
	return nil
}
