package services

import (
	"context"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/app/repositories"
)

// CourseService defines the interface for course operations
type CourseService interface {
	// ListForSemester returns the semester's courses, optionally narrowed by search.
	ListForSemester(ctx context.Context, semester int, search string) ([]models.Course, error)
	// Detail returns a course and its papers, newest year first.
	Detail(ctx context.Context, id int64) (*models.Course, []models.Paper, error)
	Count(ctx context.Context) (int64, error)
}

type courseServiceImpl struct {
	courses CourseStore
	papers  PaperStore
}

// NewCourseService creates a new course service instance
func NewCourseService(courses CourseStore, papers PaperStore) CourseService {
	return &courseServiceImpl{courses: courses, papers: papers}
}

func (s *courseServiceImpl) ListForSemester(ctx context.Context, semester int, search string) ([]models.Course, error) {
	return s.courses.List(ctx, repositories.CourseFilter{Semester: &semester, Search: search})
}

func (s *courseServiceImpl) Detail(ctx context.Context, id int64) (*models.Course, []models.Paper, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	papers, err := s.papers.List(ctx, repositories.PaperFilter{CourseID: &course.ID, Order: repositories.PaperOrderYear})
	if err != nil {
		return nil, nil, err
	}
	return course, papers, nil
}

func (s *courseServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.courses.Count(ctx)
}
