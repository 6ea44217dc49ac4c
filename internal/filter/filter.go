// Package filter derives filtered views of a section's credentials and
// attachments. Every function here is pure: the same inputs always give the
// same output and nothing is mutated.
package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/existflow/credboard/internal/model"
)

// AllLabel is the wire/display form of the "all projects" selection
const AllLabel = "All"

// Selection is either every project or one project id
type Selection struct {
	all       bool
	projectID int64
}

// All selects every project
func All() Selection {
	return Selection{all: true}
}

// Project selects a single project
func Project(id int64) Selection {
	return Selection{projectID: id}
}

// ParseSelection accepts "All" (any case) or a project id
func ParseSelection(s string) (Selection, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, AllLabel) {
		return All(), nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Selection{}, fmt.Errorf("invalid project selection %q: %w", s, err)
	}
	return Project(id), nil
}

// IsAll reports whether the selection is the "all projects" sentinel
func (s Selection) IsAll() bool {
	return s.all
}

// ProjectID returns the selected id; ok is false for All
func (s Selection) ProjectID() (id int64, ok bool) {
	return s.projectID, !s.all
}

func (s Selection) String() string {
	if s.all {
		return AllLabel
	}
	return strconv.FormatInt(s.projectID, 10)
}

// Result is the filtered view shown on the detail screen
type Result struct {
	Credentials []model.Credential
	Attachments []model.Attachment
}

// Apply filters credentials and attachments by sel.
//
// All keeps every credential and concatenates every project's attachments in
// project first-seen order. A project id keeps the matching credentials and
// that project's attachments; an id nobody references yields empty lists.
func Apply(credentials []model.Credential, attachments map[int64][]model.Attachment, sel Selection) Result {
	if sel.IsAll() {
		res := Result{Credentials: append([]model.Credential{}, credentials...), Attachments: []model.Attachment{}}
		for _, p := range Projects(credentials) {
			res.Attachments = append(res.Attachments, attachments[p.ID]...)
		}
		return res
	}

	res := Result{Credentials: []model.Credential{}, Attachments: []model.Attachment{}}
	for _, c := range credentials {
		if c.ProjectID == sel.projectID {
			res.Credentials = append(res.Credentials, c)
		}
	}
	res.Attachments = append(res.Attachments, attachments[sel.projectID]...)
	return res
}

// Projects lists the distinct projects referenced by credentials, in
// first-seen order
func Projects(credentials []model.Credential) []model.Project {
	seen := make(map[int64]bool)
	projects := []model.Project{}
	for _, c := range credentials {
		if seen[c.ProjectID] {
			continue
		}
		seen[c.ProjectID] = true
		projects = append(projects, c.Project())
	}
	return projects
}

// ProjectName returns the name of project id, or model.UnknownProjectName
func ProjectName(projects []model.Project, id int64) string {
	for _, p := range projects {
		if p.ID == id {
			return p.Name
		}
	}
	return model.UnknownProjectName
}

// Sections keeps the sections whose title contains term, case-insensitively.
// An empty term keeps everything.
func Sections(sections []model.Section, term string) []model.Section {
	needle := strings.ToLower(term)
	out := []model.Section{}
	for _, s := range sections {
		if strings.Contains(strings.ToLower(s.Title), needle) {
			out = append(out, s)
		}
	}
	return out
}

// Next cycles All -> first project -> ... -> last project -> All
func Next(sel Selection, projects []model.Project) Selection {
	if len(projects) == 0 {
		return All()
	}
	if sel.IsAll() {
		return Project(projects[0].ID)
	}
	for i, p := range projects {
		if p.ID == sel.projectID {
			if i == len(projects)-1 {
				return All()
			}
			return Project(projects[i+1].ID)
		}
	}
	return All()
}

// Prev cycles in the opposite direction of Next
func Prev(sel Selection, projects []model.Project) Selection {
	if len(projects) == 0 {
		return All()
	}
	if sel.IsAll() {
		return Project(projects[len(projects)-1].ID)
	}
	for i, p := range projects {
		if p.ID == sel.projectID {
			if i == 0 {
				return All()
			}
			return Project(projects[i-1].ID)
		}
	}
	return All()
}
