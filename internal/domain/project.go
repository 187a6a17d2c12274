package domain

import (
	"fmt"
	"regexp"
	"time"
)

var identifierPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,11}$`)

type Project struct {
	ID            string
	WorkspaceSlug string
	Identifier    string
	Name          string

	// Feature toggles controlling which panel sections are shown.
	EstimateEnabled bool
	ModuleView      bool
	CycleView       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateIdentifier checks that Identifier is 2-12 uppercase letters or
// digits starting with a letter (e.g. WEB, OPS2).
func (p *Project) ValidateIdentifier() error {
	if p.Identifier == "" {
		return fmt.Errorf("identifier is required (use --identifier flag)")
	}
	if !identifierPattern.MatchString(p.Identifier) {
		return fmt.Errorf("identifier %q must be 2-12 uppercase letters or digits starting with a letter", p.Identifier)
	}
	return nil
}

type WorkflowState struct {
	ID        string
	ProjectID string
	Name      string
	Group     StateGroup
	CreatedAt time.Time
}
