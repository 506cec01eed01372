package summary

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/zprov/internal/application"
	"github.com/bnema/zprov/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	// ShowFailures adds the remote error text under each failed step.
	ShowFailures bool
}

// sections returns the summary blocks in display order. Blocks for steps the run never
// reached are left out.
func sections(report application.Report, opts RenderOptions, s styles) []string {
	blocks := []string{
		lipgloss.JoinVertical(lipgloss.Left,
			s.title.Render("Billing Provisioning"),
			s.header.Render(runHeader(report)),
		),
		s.section.Render(renderCustomer(report, opts, s)),
	}

	if report.Customer != nil {
		blocks = append(blocks, s.section.Render(renderProducts(report, opts, s)))
	}
	if report.Contract != nil || report.ContractFailure != "" {
		blocks = append(blocks, s.section.Render(renderContract(report, opts, s)))
	}

	return append(blocks, s.section.Render(outcomeLine(report, s)))
}

func runHeader(report application.Report) string {
	header := fmt.Sprintf("run: %s", report.RunID)
	if !report.StartedAt.IsZero() && !report.FinishedAt.IsZero() {
		header += fmt.Sprintf(" (%s)", formatDuration(report.FinishedAt.Sub(report.StartedAt)))
	}

	return header
}

func renderCustomer(report application.Report, opts RenderOptions, s styles) string {
	if report.Customer == nil {
		parts := []string{s.failed.Render("customer: failed")}
		if opts.ShowFailures && report.CustomerFailure != "" {
			parts = append(parts, s.detail.Render("  "+report.CustomerFailure))
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	return s.entity.Render(fmt.Sprintf("customer: %s (%s)", report.Customer.Name, report.Customer.ID))
}

func renderProducts(report application.Report, opts RenderOptions, s styles) string {
	parts := []string{s.header.Render(fmt.Sprintf("products: %d/%d priced", len(report.Records()), len(report.Products)))}
	if len(report.Products) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(parts, s.empty.Render("No products attempted."))...)
	}

	for _, product := range report.Products {
		parts = append(parts, productLine(product, s))
		if opts.ShowFailures && product.Failure != "" {
			parts = append(parts, s.detail.Render("    "+product.Failure))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func productLine(product application.ProductOutcome, s styles) string {
	if product.Succeeded() {
		return lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.ok.Render("  ok     "),
			s.detail.Render(fmt.Sprintf("%s  product=%s pricing=%s", product.Name, product.ProductID, product.PricingID)),
		)
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.failed.Render("  failed "),
		s.detail.Render(fmt.Sprintf("%s  (%s step)", product.Name, product.FailedStage)),
	)
}

func renderContract(report application.Report, opts RenderOptions, s styles) string {
	if report.Contract == nil {
		parts := []string{s.failed.Render("contract: failed")}
		if opts.ShowFailures {
			parts = append(parts, s.detail.Render("  "+report.ContractFailure))
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	contract := report.Contract
	title := "contract: " + contract.Terms.Name
	if contract.ID != "" {
		title += fmt.Sprintf(" (%s)", contract.ID)
	}
	parts := []string{s.entity.Render(title)}
	for _, phase := range contract.Phases {
		parts = append(parts, s.detail.Render(phaseLine(phase)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func phaseLine(phase domain.ContractPhase) string {
	names := make([]string, 0, len(phase.Records))
	for _, record := range phase.Records {
		names = append(names, record.Name)
	}

	noun := "pricings"
	if len(phase.Records) == 1 {
		noun = "pricing"
	}

	line := fmt.Sprintf("  %s: %d %s, %s → %s",
		phase.Name,
		len(phase.Records),
		noun,
		phase.Start.Format("2006-01-02"),
		phase.End.Format("2006-01-02"),
	)
	if len(names) > 0 {
		line += fmt.Sprintf(" [%s]", strings.Join(names, ", "))
	}

	return line
}

func outcomeLine(report application.Report, s styles) string {
	if report.Succeeded() {
		return s.success.Render(report.Message)
	}

	return s.warning.Render(report.Message)
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	return d.Round(100 * time.Millisecond).String()
}
