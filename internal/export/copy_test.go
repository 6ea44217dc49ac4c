package export

import (
	"errors"
	"fmt"
	"testing"

	"github.com/existflow/credboard/internal/aggregate"
	"github.com/existflow/credboard/internal/api"
	"github.com/existflow/credboard/internal/filter"
	"github.com/existflow/credboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCopy(t *testing.T) {
	creds := []model.Credential{
		portal(),
		{ProjectID: 6, ProjectName: "Globex", Category: "Mail"},
	}
	atts := map[int64][]model.Attachment{5: {{URL: "http://f", TypeName: "PDF"}}}

	text, name, err := ProjectCopy(filter.Project(5), creds, atts)
	require.NoError(t, err)
	assert.Equal(t, "Acme", name)
	assert.Equal(t, FormatProject("Acme", atts[5], creds[:1]), text)
	assert.NotContains(t, text, "Globex")

	_, _, err = ProjectCopy(filter.All(), creds, atts)
	assert.ErrorIs(t, err, ErrEmptySelection)

	_, name, err = ProjectCopy(filter.Project(404), creds, atts)
	assert.ErrorIs(t, err, ErrNoData)
	assert.Equal(t, model.UnknownProjectName, name)
}

func TestSectionCopy(t *testing.T) {
	_, err := SectionCopy("Schools", nil)
	assert.ErrorIs(t, err, ErrNoData)

	text, err := SectionCopy("Schools", []aggregate.Enriched{{Credential: portal()}})
	require.NoError(t, err)
	assert.Contains(t, text, "Section: Schools\n\nProject1 Name: Acme")
}

func TestNotice(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrEmptySelection, "Please select a specific project to copy credentials!"},
		{fmt.Errorf("copy: %w", ErrNoData), "No credentials available to copy!"},
		{aggregate.Failure{Resource: aggregate.ResourceAttachments, ID: 5, Name: "Acme", Err: errors.New("x")}, "Failed to load attachments for project Acme"},
		{aggregate.Failure{Resource: aggregate.ResourceCredentials, ID: 1, Name: "Schools", Err: errors.New("x")}, "Failed to load credentials for Schools"},
		{&api.FetchError{Resource: "sections", Status: 500, Err: api.ErrUnexpectedStatus}, "Failed to load sections"},
		{errors.New("plain"), "plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Notice(tt.err))
	}
}

func TestSuccessMessages(t *testing.T) {
	assert.Equal(t, "Credentials for Acme copied to clipboard!", ProjectCopied("Acme"))
	assert.Equal(t, "Section credentials copied to clipboard!", SectionCopied())
	assert.Equal(t, "Copied credentials with attachments for Acme", CredentialCopied("Acme", true))
	assert.Equal(t, "Copied credentials without attachments for Acme", CredentialCopied("Acme", false))
	assert.Equal(t, "Password copied to clipboard!", FieldCopied("Password"))
}
