package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/zprov/internal/adapters/billing/zenskar"
	summaryadapter "github.com/bnema/zprov/internal/adapters/render/summary"
	"github.com/bnema/zprov/internal/application"
	"github.com/bnema/zprov/internal/domain"
	"github.com/spf13/cobra"
)

var errProvisioningIncomplete = errors.New("provisioning incomplete")

const provisionSpinnerLabel = "Provisioning billing entities..."

type provisionOptions struct {
	apiKey         string
	organisationID string
	userCount      int64
	planPath       string
	startDate      string
	endDate        string
	asJSON         bool
	failOnError    bool
}

func newProvisionCmd(app *app) *cobra.Command {
	opts := provisionOptions{}

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create the customer, products, pricings and contract described by a plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProvision(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "Zenskar API key")
	cmd.Flags().StringVar(&opts.organisationID, "organisation-id", "", "Zenskar organisation ID")
	cmd.Flags().Int64Var(&opts.userCount, "user-count", application.DefaultUserCount, "Number of users billed by metered pricings")
	cmd.Flags().StringVar(&opts.planPath, "plan", "", "Plan file (.toml, .yaml or .yml); defaults to the built-in plan")
	cmd.Flags().StringVar(&opts.startDate, "start-date", "", "Requested contract start (2006-01-02T15:04:05 or RFC3339)")
	cmd.Flags().StringVar(&opts.endDate, "end-date", "", "Requested contract end (2006-01-02T15:04:05 or RFC3339)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&opts.failOnError, "fail-on-error", false, "Exit with an error unless the contract was created")
	_ = cmd.MarkFlagRequired("api-key")
	_ = cmd.MarkFlagRequired("organisation-id")

	return cmd
}

func runProvision(cmd *cobra.Command, app *app, opts provisionOptions) error {
	credentials := domain.Credentials{
		APIKey:         strings.TrimSpace(opts.apiKey),
		OrganisationID: strings.TrimSpace(opts.organisationID),
	}
	if err := credentials.Validate(); err != nil {
		return err
	}
	if opts.userCount < 0 {
		return fmt.Errorf("%w: %d", application.ErrInvalidUserCount, opts.userCount)
	}

	plan, _, err := resolvePlan(cmd.Context(), app, opts.planPath)
	if err != nil {
		return err
	}

	start, end, err := requestedWindow(opts.startDate, opts.endDate)
	if err != nil {
		return err
	}

	var logOutput io.Writer = cmd.ErrOrStderr()
	var spinnerLogs *spinnerLogWriter
	if !opts.asJSON {
		spinnerLogs = newSpinnerLogWriter(logOutput)
		logOutput = spinnerLogs
	}
	logger := newLogger(logOutput, app.verbose)

	billing, err := app.newBilling(zenskar.Config{
		BaseURL:     app.config.BaseURL,
		Credentials: credentials,
		Timeout:     app.config.Timeout,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("wire billing client: %w", err)
	}

	provisioner := application.NewProvisioner(billing, app.clock, logger)
	command := application.ProvisionCommand{
		Plan:           plan,
		UserCount:      opts.userCount,
		RequestedStart: start,
		RequestedEnd:   end,
	}

	var report application.Report
	run := func(ctx context.Context) error {
		var runErr error
		report, runErr = provisioner.Run(ctx, command)
		return runErr
	}

	if opts.asJSON {
		err = run(cmd.Context())
	} else {
		err = runTaskSpinner(cmd.Context(), spinnerLogs, provisionSpinnerLabel, run)
	}
	if err != nil {
		return err
	}

	if err := writeReport(cmd, app, report, opts.asJSON); err != nil {
		return err
	}

	if opts.failOnError && !report.Succeeded() {
		return fmt.Errorf("%w: %s", errProvisioningIncomplete, report.Message)
	}

	return nil
}

func requestedWindow(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, end := application.DefaultRequestedWindow()

	if strings.TrimSpace(startRaw) != "" {
		parsed, err := domain.ParseTimestamp(startRaw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start-date: %w", err)
		}
		start = parsed
	}
	if strings.TrimSpace(endRaw) != "" {
		parsed, err := domain.ParseTimestamp(endRaw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end-date: %w", err)
		}
		end = parsed
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s is not after start date %s", domain.FormatTimestamp(end), domain.FormatTimestamp(start))
	}

	return start, end, nil
}

func writeReport(cmd *cobra.Command, app *app, report application.Report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	rendered, err := app.summaryRenderer(report, summaryadapter.RenderOptions{ShowFailures: app.verbose})
	if err != nil {
		return fmt.Errorf("render summary: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
