package main

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/startquantum/internal/app"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "List the installation steps",
	Long: `Plan lists every installation step in the order run would visit it,
with the steps it requires and whether --only or the configuration
leaves it out. Nothing on the machine is checked.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, _ []string) error {
	env, err := newEnvironment(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	steps, err := app.New(env.host).Steps(env.cfg, onlySteps)
	if err != nil {
		return err
	}

	app.PrintSteps(cmd.OutOrStdout(), steps)
	return nil
}
