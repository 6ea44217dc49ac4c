package model

// Credential is one stored secret belonging to exactly one project.
// Section membership is implied by the section fetch that returned it.
type Credential struct {
	ID          int64  `json:"id"`
	ProjectID   int64  `json:"project_id"`
	ProjectName string `json:"project_name"`
	Category    string `json:"category"`
	URL         string `json:"url"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Notes       string `json:"notes"`
}

// Project returns the project the credential belongs to
func (c Credential) Project() Project {
	return Project{ID: c.ProjectID, Name: c.ProjectName}
}

// Attachment is a project-scoped file reference
type Attachment struct {
	URL      string  `json:"url"`
	TypeName string  `json:"attachment_type_name"`
	TypeIcon IconKey `json:"attachment_type_icon"`
}
