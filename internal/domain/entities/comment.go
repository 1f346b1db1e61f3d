package entities

import "time"

// Comment is a line comment attached to a File document.
type Comment struct {
	ID           string    `json:"id"            yaml:"id"`
	RepositoryID string    `json:"repository_id" yaml:"repository_id"`
	FileID       string    `json:"file_id"       yaml:"file_id"`
	Line         int       `json:"line"          yaml:"line"`
	Author       string    `json:"author"        yaml:"author"`
	Body         string    `json:"body"          yaml:"body"`
	CreatedAt    time.Time `json:"created_at"    yaml:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"    yaml:"updated_at"`
}
