package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository     *UserRepository
	CourseRepository   *CourseRepository
	PaperRepository    *PaperRepository
	ActivityRepository *ActivityRepository
	ResourceRepository *ResourceRepository
	SessionRepository  *SessionRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(db),
		CourseRepository:   NewCourseRepository(db),
		PaperRepository:    NewPaperRepository(db),
		ActivityRepository: NewActivityRepository(db),
		ResourceRepository: NewResourceRepository(db),
		SessionRepository:  NewSessionRepository(db),
	}
}
