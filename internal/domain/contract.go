package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the zone-less layout the billing API expects for contract dates.
const TimestampLayout = "2006-01-02T15:04:05"

const PlatformFeeProductName = "Monthly Platform Fee"

type ContractStatus string

const ContractStatusActive ContractStatus = "active"

// ProductRecord links a created product to its pricing for contract assembly.
type ProductRecord struct {
	ProductID string
	PricingID string
	Name      string
}

type Phase struct {
	Name        string
	Description string
	Start       time.Time
	End         time.Time
	// Excludes lists product names that are not billed during this phase.
	Excludes []string
}

func (p Phase) Admits(record ProductRecord) bool {
	for _, name := range p.Excludes {
		if name == record.Name {
			return false
		}
	}

	return true
}

func (p Phase) Select(records []ProductRecord) []ProductRecord {
	selected := make([]ProductRecord, 0, len(records))
	for _, record := range records {
		if p.Admits(record) {
			selected = append(selected, record)
		}
	}

	return selected
}

type ContractTerms struct {
	Name        string
	Description string
	Status      ContractStatus
	Currency    string
	Start       time.Time
	End         time.Time
	Phases      []Phase
}

// Validate requires ordered phases that sit inside the contract window and follow
// each other without gaps or overlap at one-second resolution.
func (t ContractTerms) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: contract name is required", ErrInvalidPlan)
	}
	if t.Start.IsZero() || t.End.IsZero() {
		return fmt.Errorf("%w: contract window is required", ErrInvalidPlan)
	}
	if !t.End.After(t.Start) {
		return fmt.Errorf("%w: contract end %s is not after start %s", ErrInvalidPlan, FormatTimestamp(t.End), FormatTimestamp(t.Start))
	}
	if len(t.Phases) == 0 {
		return fmt.Errorf("%w: contract needs at least one phase", ErrInvalidPlan)
	}

	for i, phase := range t.Phases {
		if strings.TrimSpace(phase.Name) == "" {
			return fmt.Errorf("%w: phase %d name is required", ErrInvalidPlan, i+1)
		}
		if phase.End.Before(phase.Start) {
			return fmt.Errorf("%w: phase %q ends before it starts", ErrInvalidPlan, phase.Name)
		}
		if phase.Start.Before(t.Start) || phase.End.After(t.End) {
			return fmt.Errorf("%w: phase %q is outside the contract window", ErrInvalidPlan, phase.Name)
		}
		if i == 0 {
			continue
		}

		previous := t.Phases[i-1]
		if !phase.Start.Equal(previous.End.Add(time.Second)) {
			return fmt.Errorf("%w: phase %q does not start right after %q", ErrInvalidPlan, phase.Name, previous.Name)
		}
	}

	return nil
}

type ContractPhase struct {
	Phase
	Records []ProductRecord
}

type Contract struct {
	ID         string
	CustomerID string
	Terms      ContractTerms
	Phases     []ContractPhase
}

// BuildContract distributes records over the phases of terms, preserving record order.
func BuildContract(customerID string, terms ContractTerms, records []ProductRecord) Contract {
	phases := make([]ContractPhase, 0, len(terms.Phases))
	for _, phase := range terms.Phases {
		phases = append(phases, ContractPhase{
			Phase:   phase,
			Records: phase.Select(records),
		})
	}

	return Contract{
		CustomerID: customerID,
		Terms:      terms,
		Phases:     phases,
	}
}

func FormatTimestamp(value time.Time) string {
	return value.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts the API layout as well as RFC3339. Zone-less values are read as UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := time.Parse(TimestampLayout, trimmed); err == nil {
		return parsed, nil
	}

	parsed, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}

	return parsed.UTC(), nil
}
