package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID             int64      `json:"id" db:"id"`
	Username       string     `json:"username" db:"username"`
	Email          string     `json:"email" db:"email"`
	Password       string     `json:"-" db:"password"` // bcrypt hash
	FirstName      string     `json:"firstName" db:"first_name"`
	LastName       string     `json:"lastName" db:"last_name"`
	CollegeID      string     `json:"collegeId,omitempty" db:"college_id"`
	Semester       *int       `json:"semester,omitempty" db:"semester"`
	Bio            string     `json:"bio,omitempty" db:"bio"`
	ProfilePicture string     `json:"profilePicture,omitempty" db:"profile_picture"` // storage key
	IsActive       bool       `json:"isActive" db:"is_active"`
	IsStaff        bool       `json:"isStaff" db:"is_staff"`
	IsSuperuser    bool       `json:"isSuperuser" db:"is_superuser"`
	DateJoined     time.Time  `json:"dateJoined" db:"date_joined"`
	LastLogin      *time.Time `json:"lastLogin,omitempty" db:"last_login"`
}

// EffectiveSemester is the semester used for semester-scoped listings.
func (u *User) EffectiveSemester() int {
	if u == nil || u.Semester == nil {
		return DefaultSemester
	}
	return *u.Semester
}

// DisplayName is the first name when set, otherwise the username.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

// FullName joins first and last name, falling back to the username.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Username
	}
}

// IsAdmin reports administrative privilege.
func (u *User) IsAdmin() bool {
	return u != nil && (u.IsStaff || u.IsSuperuser)
}
