package aggregate

import (
	"errors"
	"fmt"

	"github.com/existflow/credboard/internal/model"
)

// Resource identifies which fetch of a pass failed
type Resource string

const (
	ResourceCredentials Resource = "credentials"
	ResourceAttachments Resource = "attachments"
)

// Failure records one fetch that did not succeed during a pass.
// ID is the section id for credentials and the project id for attachments.
type Failure struct {
	Resource Resource
	ID       int64
	Name     string // section title or project name
	Err      error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s for %s (%d): %v", f.Resource, f.Name, f.ID, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Enriched is a credential together with its project's attachments. All
// credentials of one project share the same attachment slice.
type Enriched struct {
	model.Credential
	Attachments []model.Attachment
}

// View is the immutable result of one aggregation pass
type View struct {
	PassID     string
	Generation uint64

	Sections    []model.Section
	Credentials map[int64][]Enriched         // by section id
	Attachments map[int64][]model.Attachment // by project id
	Projects    []model.Project              // first-seen order across the pass
	Failures    []Failure
}

// CredentialsFor returns the enriched credentials of a section
func (v *View) CredentialsFor(sectionID int64) []Enriched {
	return v.Credentials[sectionID]
}

// PlainCredentials returns the section's credentials without attachments,
// in fetch order
func (v *View) PlainCredentials(sectionID int64) []model.Credential {
	enriched := v.Credentials[sectionID]
	out := make([]model.Credential, len(enriched))
	for i, e := range enriched {
		out[i] = e.Credential
	}
	return out
}

// Section returns a section of the pass by id
func (v *View) Section(id int64) (model.Section, bool) {
	for _, s := range v.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return model.Section{}, false
}

// Err joins every recorded failure, nil when the pass was clean
func (v *View) Err() error {
	if len(v.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(v.Failures))
	for i, f := range v.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}
