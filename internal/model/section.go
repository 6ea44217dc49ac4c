package model

// Section is a top-level category (schools, banks, hospitals, ...)
type Section struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Icon  IconKey `json:"icon"`
}
