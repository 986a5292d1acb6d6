package models

import "time"

// Activity is a college event, announcement, holiday, notice or deadline.
type Activity struct {
	ID           int64        `json:"id" db:"id"`
	Title        string       `json:"title" db:"title"`
	ActivityType ActivityType `json:"activityType" db:"activity_type"`
	Description  string       `json:"description" db:"description"`
	Date         time.Time    `json:"date" db:"date"`
	Location     string       `json:"location,omitempty" db:"location"`
	Image        string       `json:"image,omitempty" db:"image"`
	CreatedBy    *int64       `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`
}

func (a *Activity) OwnerID() *int64 { return a.CreatedBy }
