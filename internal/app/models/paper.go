package models

import "time"

// Paper is a previous-year exam paper attached to a course.
type Paper struct {
	ID         int64     `json:"id" db:"id"`
	CourseID   int64     `json:"courseId" db:"course_id"`
	Title      string    `json:"title" db:"title"`
	PaperType  PaperType `json:"paperType" db:"paper_type"`
	Year       int       `json:"year" db:"year"`
	File       string    `json:"file" db:"file"`
	UploadedBy *int64    `json:"uploadedBy,omitempty" db:"uploaded_by"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated by list queries)
	CourseCode   string `json:"courseCode,omitempty"`
	CourseTitle  string `json:"courseTitle,omitempty"`
	UploaderName string `json:"uploaderName,omitempty"`
}

func (p *Paper) OwnerID() *int64 { return p.UploadedBy }
