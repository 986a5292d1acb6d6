package models

import "time"

// Course is a course offered in a semester.
type Course struct {
	ID          int64     `json:"id" db:"id"`
	Code        string    `json:"code" db:"code"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Semester    int       `json:"semester" db:"semester"`
	Credits     int       `json:"credits" db:"credits"`
	Instructor  string    `json:"instructor" db:"instructor"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// DefaultCredits applies when a course is created without credits.
const DefaultCredits = 4
