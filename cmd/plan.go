package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/zprov/internal/adapters/repo/planfile"
	"github.com/bnema/zprov/internal/domain"
	"github.com/spf13/cobra"
)

var errPlanFileExists = errors.New("plan file already exists")

const builtinPlanSource = "built-in default plan"

func newPlanCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage provisioning plan files",
	}

	cmd.AddCommand(
		newPlanInitCmd(app),
		newPlanShowCmd(app),
	)

	return cmd
}

func newPlanInitCmd(app *app) *cobra.Command {
	var output string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in default plan to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := firstNonEmpty(output, app.config.PlanPath, planfile.DefaultFileName)

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%w: %s (use --force to overwrite)", errPlanFileExists, path)
				} else if !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("check plan file: %w", err)
				}
			}

			if err := app.plans.Save(cmd.Context(), path, domain.DefaultPlan()); err != nil {
				return fmt.Errorf("write plan: %w", err)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote plan to %s\n", path)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Plan file to write (.toml, .yaml or .yml)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing plan file")

	return cmd
}

func newPlanShowCmd(app *app) *cobra.Command {
	var planPath string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved plan as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan, source, err := resolvePlan(cmd.Context(), app, planPath)
			if err != nil {
				return err
			}

			data, err := planfile.Encode(plan, planfile.FormatTOML)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "# source: %s\n", source); err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&planPath, "plan", "", "Plan file to show; defaults to the configured or built-in plan")

	return cmd
}

// resolvePlan loads the plan at path, falling back to the configured plan path and then to
// the built-in default plan. It also reports where the plan came from.
func resolvePlan(ctx context.Context, app *app, path string) (domain.Plan, string, error) {
	path = firstNonEmpty(path, app.config.PlanPath)
	if path == "" {
		return domain.DefaultPlan(), builtinPlanSource, nil
	}

	plan, err := app.plans.Load(ctx, path)
	if err != nil {
		return domain.Plan{}, "", err
	}

	return plan, path, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}

	return ""
}
