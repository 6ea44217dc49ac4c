package export

import (
	"errors"
	"fmt"

	"github.com/existflow/credboard/internal/aggregate"
	"github.com/existflow/credboard/internal/api"
)

// Notice turns an error from a load or copy into the message shown to the user
func Notice(err error) string {
	var fetchErr *api.FetchError
	var failure aggregate.Failure

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptySelection):
		return "Please select a specific project to copy credentials!"
	case errors.Is(err, ErrNoData):
		return "No credentials available to copy!"
	case errors.As(err, &failure):
		if failure.Resource == aggregate.ResourceAttachments {
			return fmt.Sprintf("Failed to load attachments for project %s", failure.Name)
		}
		return fmt.Sprintf("Failed to load credentials for %s", failure.Name)
	case errors.As(err, &fetchErr):
		return fmt.Sprintf("Failed to load %s", fetchErr.Resource)
	default:
		return err.Error()
	}
}

// Success messages shown after a clipboard write

func ProjectCopied(projectName string) string {
	return fmt.Sprintf("Credentials for %s copied to clipboard!", projectName)
}

func SectionCopied() string {
	return "Section credentials copied to clipboard!"
}

func CredentialCopied(projectName string, withAttachments bool) string {
	if withAttachments {
		return fmt.Sprintf("Copied credentials with attachments for %s", projectName)
	}
	return fmt.Sprintf("Copied credentials without attachments for %s", projectName)
}

func FieldCopied(field string) string {
	return fmt.Sprintf("%s copied to clipboard!", field)
}
