// Package fixture loads yaml data sets into the fixture backend's store.
package fixture

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/existflow/credboard/internal/db"
	"github.com/existflow/credboard/internal/model"
	"gopkg.in/yaml.v3"
)

// SampleName selects the built-in data set in Load
const SampleName = "sample"

//go:embed sample.yaml
var sample []byte

var ErrInvalid = errors.New("invalid fixture")

// Fixture is a complete data set for the backend
type Fixture struct {
	AttachmentTypes []AttachmentType `yaml:"attachment_types"`
	Sections        []model.Section  `yaml:"sections"`
	Projects        []Project        `yaml:"projects"`
	Credentials     []Credential     `yaml:"credentials"`
}

type AttachmentType struct {
	ID   int64         `yaml:"id"`
	Name string        `yaml:"name"`
	Icon model.IconKey `yaml:"icon"`
}

type Project struct {
	ID          int64        `yaml:"id"`
	Name        string       `yaml:"name"`
	Attachments []Attachment `yaml:"attachments"`
}

type Attachment struct {
	ID   int64  `yaml:"id"`
	Type int64  `yaml:"type"`
	URL  string `yaml:"url"`
}

type Credential struct {
	ID       int64  `yaml:"id"`
	Section  int64  `yaml:"section"`
	Project  int64  `yaml:"project"`
	Category string `yaml:"category"`
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Notes    string `yaml:"notes"`
}

// Load reads a fixture file; the name "sample" returns the built-in set
func Load(path string) (*Fixture, error) {
	if path == SampleName {
		return Parse(sample)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a fixture
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that every reference points at a declared row
func (f *Fixture) Validate() error {
	types := make(map[int64]bool, len(f.AttachmentTypes))
	for _, t := range f.AttachmentTypes {
		types[t.ID] = true
	}
	sections := make(map[int64]bool, len(f.Sections))
	for _, s := range f.Sections {
		sections[s.ID] = true
	}
	projects := make(map[int64]bool, len(f.Projects))
	for _, p := range f.Projects {
		projects[p.ID] = true
		for _, a := range p.Attachments {
			if !types[a.Type] {
				return fmt.Errorf("%w: attachment %d of project %d has unknown type %d", ErrInvalid, a.ID, p.ID, a.Type)
			}
		}
	}
	for _, c := range f.Credentials {
		if !sections[c.Section] {
			return fmt.Errorf("%w: credential %d has unknown section %d", ErrInvalid, c.ID, c.Section)
		}
		if !projects[c.Project] {
			return fmt.Errorf("%w: credential %d has unknown project %d", ErrInvalid, c.ID, c.Project)
		}
	}
	return nil
}

// Seed writes the fixture in one transaction. Rows with existing ids are
// replaced.
func (f *Fixture) Seed(ctx context.Context, store *db.DB) error {
	return store.InTx(ctx, func(q *db.Queries) error {
		for _, t := range f.AttachmentTypes {
			if err := q.UpsertAttachmentType(ctx, db.AttachmentType{ID: t.ID, Name: t.Name, Icon: t.Icon}); err != nil {
				return err
			}
		}
		for _, s := range f.Sections {
			if err := q.UpsertSection(ctx, s); err != nil {
				return err
			}
		}
		for _, p := range f.Projects {
			if err := q.UpsertProject(ctx, model.Project{ID: p.ID, Name: p.Name}); err != nil {
				return err
			}
			for _, a := range p.Attachments {
				if err := q.UpsertAttachment(ctx, a.ID, p.ID, a.Type, a.URL); err != nil {
					return err
				}
			}
		}
		for _, c := range f.Credentials {
			err := q.UpsertCredential(ctx, c.Section, model.Credential{
				ID:        c.ID,
				ProjectID: c.Project,
				Category:  c.Category,
				URL:       c.URL,
				Username:  c.Username,
				Password:  c.Password,
				Notes:     c.Notes,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}
