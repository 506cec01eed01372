package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "zprov",
		Short:         "Provision billing entities in Zenskar",
		Long:          "zprov creates a customer, its products and pricings, and a phased contract in the Zenskar billing platform from a plan file or the built-in default plan.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Log requests and per-step results")

	rootCmd.AddCommand(
		newVersionCmd(),
		newProvisionCmd(app),
		newPlanCmd(app),
	)

	return rootCmd
}
