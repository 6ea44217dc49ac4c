package export

import (
	"errors"

	"github.com/existflow/credboard/internal/aggregate"
	"github.com/existflow/credboard/internal/filter"
	"github.com/existflow/credboard/internal/model"
)

var (
	// ErrEmptySelection means a project copy was asked for while every
	// project is selected
	ErrEmptySelection = errors.New("no project selected")
	// ErrNoData means there is nothing to copy
	ErrNoData = errors.New("no data to copy")
)

// ProjectCopy builds the export of the selected project of a section. It
// refuses the "All" selection and a project with neither credentials nor
// attachments.
func ProjectCopy(sel filter.Selection, credentials []model.Credential, attachments map[int64][]model.Attachment) (text, projectName string, err error) {
	id, ok := sel.ProjectID()
	if !ok {
		return "", "", ErrEmptySelection
	}

	res := filter.Apply(credentials, attachments, sel)
	projectName = filter.ProjectName(filter.Projects(credentials), id)
	if len(res.Credentials) == 0 && len(res.Attachments) == 0 {
		return "", projectName, ErrNoData
	}

	return FormatProject(projectName, res.Attachments, res.Credentials), projectName, nil
}

// SectionCopy builds the export of a whole section
func SectionCopy(sectionTitle string, credentials []aggregate.Enriched) (string, error) {
	if len(credentials) == 0 {
		return "", ErrNoData
	}
	return FormatSection(sectionTitle, credentials), nil
}
