package models

import "time"

// Resource is a user upload: a file, a link, both or neither.
type Resource struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Category    Category  `json:"category" db:"category"`
	Description string    `json:"description,omitempty" db:"description"`
	File        string    `json:"file,omitempty" db:"file"`
	Link        string    `json:"link,omitempty" db:"link"`
	UploadedBy  *int64    `json:"uploadedBy,omitempty" db:"uploaded_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	UploaderName string `json:"uploaderName,omitempty"`
}

func (r *Resource) OwnerID() *int64 { return r.UploadedBy }
