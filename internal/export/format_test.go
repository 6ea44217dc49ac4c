package export

import (
	"strings"
	"testing"

	"github.com/existflow/credboard/internal/aggregate"
	"github.com/existflow/credboard/internal/model"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func portal() model.Credential {
	return model.Credential{
		ID: 1, ProjectID: 5, ProjectName: "Acme",
		Category: "Portal", URL: "http://x", Username: "u", Password: "p", Notes: "n",
	}
}

func TestFormatProject(t *testing.T) {
	got := FormatProject("Acme",
		[]model.Attachment{{URL: "http://f", TypeName: "PDF"}},
		[]model.Credential{portal()})

	want := "Project: Acme\n\n" +
		"Attachments for Acme:\n" +
		"Attachment1: http://f\n" +
		"Attachment1 Type: PDF\n\n" +
		"--- Category1 ---\n" +
		"Category: Portal\n" +
		"URL: http://x\n" +
		"Username: u\n" +
		"Password: p\n" +
		"Notes: n"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FormatProject() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatProject_NoAttachments(t *testing.T) {
	got := FormatProject("Acme", nil, []model.Credential{portal()})
	assert.True(t, strings.HasPrefix(got, "Project: Acme\n\nAttachments for Acme:\nNo attachments\n\n--- Category1 ---\n"), got)
}

func TestFormatProject_NumbersEveryCategory(t *testing.T) {
	a, b, c := portal(), portal(), portal()
	b.Category, c.Category = "Admin", "DB"

	got := FormatProject("Acme", []model.Attachment{{URL: "1"}, {URL: "2"}}, []model.Credential{a, b, c})

	for _, header := range []string{"--- Category1 ---", "--- Category2 ---", "--- Category3 ---", "Attachment2: 2"} {
		assert.Contains(t, got, header)
	}
	assert.NotContains(t, got, "Category4")
	assert.Contains(t, got, "Notes: n\n\n--- Category2 ---\nCategory: Admin")

	// numbering restarts on every call
	again := FormatProject("Acme", nil, []model.Credential{c})
	assert.Contains(t, again, "--- Category1 ---\nCategory: DB")
}

func TestFormatProject_EmptyFieldsStayEmpty(t *testing.T) {
	got := FormatProject("", nil, []model.Credential{{}})
	assert.Contains(t, got, "Project: \n")
	assert.Contains(t, got, "Category: \nURL: \nUsername: \nPassword: \nNotes: ")
}

func TestFormatSection(t *testing.T) {
	atts := []model.Attachment{{URL: "http://f", TypeName: "PDF"}}
	acme1 := portal()
	acme2 := portal()
	acme2.Category = "Admin"
	globex := model.Credential{ProjectID: 6, ProjectName: "Globex", Category: "Mail", URL: "http://g", Username: "g", Password: "q", Notes: ""}

	got := FormatSection("Schools", []aggregate.Enriched{
		{Credential: acme1, Attachments: atts},
		{Credential: globex},
		{Credential: acme2, Attachments: atts},
	})

	want := "Section: Schools\n\n" +
		"Project1 Name: Acme\n\n" +
		"Attachments for Project1:\n" +
		"Attachment1: http://f\n" +
		"Attachment1 Type: PDF\n\n" +
		"\n--- Category1 ---\nCategory: Portal\nURL: http://x\nUsername: u\nPassword: p\nNotes: n\n" +
		"\n--- Category2 ---\nCategory: Admin\nURL: http://x\nUsername: u\nPassword: p\nNotes: n" +
		"\n\n\n" +
		"Project2 Name: Globex\n\n" +
		"Attachments for Project2:\n" +
		"No Attachments\n\n" +
		"\n--- Category1 ---\nCategory: Mail\nURL: http://g\nUsername: g\nPassword: q\nNotes: "

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FormatSection() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatCredential(t *testing.T) {
	c := portal()
	atts := []model.Attachment{{URL: "http://f", TypeName: "PDF"}}

	with := FormatCredential(c, atts, true)
	assert.Equal(t, "Project: Acme\n\nAttachments for Acme:\nAttachment1: http://f\nAttachment1 Type: PDF\n\n"+
		"Category: Portal\nURL: http://x\nUsername: u\nPassword: p\nNotes: n", with)

	without := FormatCredential(c, atts, false)
	assert.Equal(t, "Project: Acme\n\nCategory: Portal\nURL: http://x\nUsername: u\nPassword: p\nNotes: n", without)

	assert.Contains(t, FormatCredential(c, nil, true), "Attachments for Acme:\nNo attachments\n\n")
}
