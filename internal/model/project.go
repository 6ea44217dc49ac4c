package model

// Project owns a set of credentials and attachments. It is never fetched on
// its own; projects are derived from the credentials that reference them.
type Project struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UnknownProjectName is shown when a selected project id has no name
const UnknownProjectName = "Unknown"
