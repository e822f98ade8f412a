// Package types defines the tracked record schema shared across the tracker.
package types

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// CompanyType classifies how a company appeared on an event page.
type CompanyType string

const (
	// Sponsor marks a company listed as an event sponsor.
	Sponsor CompanyType = "sponsor"
	// Attendee marks a company listed as an event attendee.
	Attendee CompanyType = "attendee"
)

// Company is a tracked company, keyed by its name.
// FirstSeen, Website and Type are fixed at creation; only LastSeen
// advances when the company is observed again.
type Company struct {
	Name      string      `json:"name" validate:"required"`
	Website   string      `json:"website"`
	Type      CompanyType `json:"type" validate:"required,oneof=sponsor attendee"`
	FirstSeen time.Time   `json:"first_seen" validate:"required"`
	LastSeen  time.Time   `json:"last_seen" validate:"required,gtefield=FirstSeen"`
}

// Contact is a decision-maker discovered through contact search,
// keyed by its externally issued Apollo ID. The Company field is a
// soft reference by name; dangling references are tolerated.
type Contact struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Email    string `json:"email"`
	ApolloID string `json:"apollo_id" validate:"required"`
}

var validate = validator.New()

// ValidateCompany checks a company record against the schema constraints.
func ValidateCompany(c Company) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid company record %q: %w", c.Name, err)
	}
	return nil
}

// ValidateContact checks a contact record against the schema constraints.
func ValidateContact(c Contact) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid contact record %q: %w", c.ApolloID, err)
	}
	return nil
}
