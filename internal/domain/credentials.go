package domain

import (
	"fmt"
	"strings"
)

// Credentials are attached to every billing API request as headers.
type Credentials struct {
	APIKey         string
	OrganisationID string
}

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: api key is required", ErrInvalidCredentials)
	}
	if strings.TrimSpace(c.OrganisationID) == "" {
		return fmt.Errorf("%w: organisation id is required", ErrInvalidCredentials)
	}

	return nil
}
