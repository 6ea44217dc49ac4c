// Package export turns credentials and attachments into the plain-text
// layout copied to the clipboard.
//
// Formatting never fails and never validates: empty fields are written as
// empty values. Numbering (AttachmentN, CategoryN, ProjectN) is positional
// and starts at 1 in each scope on every call.
package export

import (
	"fmt"
	"strings"

	"github.com/existflow/credboard/internal/aggregate"
	"github.com/existflow/credboard/internal/model"
)

const (
	noAttachmentsProject = "No attachments"
	noAttachmentsSection = "No Attachments"
)

// FormatProject renders one project: header, attachment block and one
// category block per credential
func FormatProject(projectName string, attachments []model.Attachment, credentials []model.Credential) string {
	blocks := make([]string, len(credentials))
	for i, c := range credentials {
		blocks[i] = categoryBlock(i+1, c)
	}

	return fmt.Sprintf("Project: %s\n\nAttachments for %s:\n%s\n\n%s",
		projectName, projectName,
		attachmentLines(attachments, noAttachmentsProject),
		strings.Join(blocks, "\n\n"))
}

// FormatSection renders a whole section grouped by project name in
// first-seen order. A group takes its attachments from its first credential.
func FormatSection(sectionTitle string, credentials []aggregate.Enriched) string {
	groups := groupByProjectName(credentials)

	parts := make([]string, len(groups))
	for i, g := range groups {
		blocks := make([]string, len(g.credentials))
		for j, c := range g.credentials {
			blocks[j] = "\n" + categoryBlock(j+1, c)
		}
		parts[i] = fmt.Sprintf("Project%d Name: %s\n\nAttachments for Project%d:\n%s\n\n%s",
			i+1, g.name, i+1,
			attachmentLines(g.attachments, noAttachmentsSection),
			strings.Join(blocks, "\n"))
	}

	return fmt.Sprintf("Section: %s\n\n%s", sectionTitle, strings.Join(parts, "\n\n\n"))
}

// FormatCredential renders a single credential, optionally preceded by its
// project's attachments
func FormatCredential(c model.Credential, attachments []model.Attachment, withAttachments bool) string {
	fields := credentialFields(c)
	if !withAttachments {
		return fmt.Sprintf("Project: %s\n\n%s", c.ProjectName, fields)
	}
	return fmt.Sprintf("Project: %s\n\nAttachments for %s:\n%s\n\n%s",
		c.ProjectName, c.ProjectName,
		attachmentLines(attachments, noAttachmentsProject),
		fields)
}

func attachmentLines(attachments []model.Attachment, empty string) string {
	if len(attachments) == 0 {
		return empty
	}
	lines := make([]string, len(attachments))
	for i, a := range attachments {
		lines[i] = fmt.Sprintf("Attachment%d: %s\nAttachment%d Type: %s", i+1, a.URL, i+1, a.TypeName)
	}
	return strings.Join(lines, "\n")
}

func categoryBlock(n int, c model.Credential) string {
	return fmt.Sprintf("--- Category%d ---\n%s", n, credentialFields(c))
}

func credentialFields(c model.Credential) string {
	return fmt.Sprintf("Category: %s\nURL: %s\nUsername: %s\nPassword: %s\nNotes: %s",
		c.Category, c.URL, c.Username, c.Password, c.Notes)
}

type projectGroup struct {
	name        string
	attachments []model.Attachment
	credentials []model.Credential
}

func groupByProjectName(credentials []aggregate.Enriched) []*projectGroup {
	index := make(map[string]*projectGroup)
	var groups []*projectGroup
	for _, c := range credentials {
		g, ok := index[c.ProjectName]
		if !ok {
			g = &projectGroup{name: c.ProjectName, attachments: c.Attachments}
			index[c.ProjectName] = g
			groups = append(groups, g)
		}
		g.credentials = append(g.credentials, c.Credential)
	}
	return groups
}
