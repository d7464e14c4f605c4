package main

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/startquantum/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Install the missing tools",
	Long: `Run walks the installation steps in order. For each step it:
1. Skips it if a step it requires was declined or failed
2. Skips it if it is already installed
3. Runs the steps it requires first
4. Asks before installing (use --yes to accept every prompt)
5. Checks again afterwards that it is installed

At the end it lists the steps that were installed.`,
	Args: cobra.NoArgs,
	RunE: runBootstrap,
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	env, err := newEnvironment(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	bootstrapper := app.New(env.host,
		app.WithOutput(cmd.OutOrStdout()),
		app.WithLockWait(lockWait),
	)
	_, err = bootstrapper.Run(cmd.Context(), env.cfg, onlySteps)
	return err
}
