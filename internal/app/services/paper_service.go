package services

import (
	"context"

	"github.com/yigit/brainora/internal/app/auth"
	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/app/repositories"
	"github.com/yigit/brainora/internal/pkg/filestorage"
	"github.com/yigit/brainora/internal/pkg/helpers"
	"github.com/yigit/brainora/internal/pkg/logger"
)

// PaperQuery holds the raw paper list filters from the query string.
type PaperQuery struct {
	Semester int
	Type     string
	// Course is ignored unless it parses as a positive id.
	Course string
}

// PaperService defines the interface for previous-year paper operations
type PaperService interface {
	List(ctx context.Context, q PaperQuery) ([]models.Paper, error)
	// Recent returns the newest papers of a semester.
	Recent(ctx context.Context, semester int, limit uint64) ([]models.Paper, error)
	Get(ctx context.Context, id int64) (*models.Paper, error)
	// Delete removes the paper and its file when user owns it or is an admin.
	Delete(ctx context.Context, user *models.User, id int64) error
}

type paperServiceImpl struct {
	papers  PaperStore
	storage filestorage.FileStorage
}

// NewPaperService creates a new paper service instance
func NewPaperService(papers PaperStore, storage filestorage.FileStorage) PaperService {
	return &paperServiceImpl{papers: papers, storage: storage}
}

// Filter converts the query into a repository filter.
func (q PaperQuery) Filter() repositories.PaperFilter {
	semester := q.Semester
	filter := repositories.PaperFilter{
		Semester: &semester,
		Type:     models.PaperType(q.Type),
		Order:    repositories.PaperOrderYear,
	}
	if id, ok := helpers.ParseID(q.Course); ok {
		filter.CourseID = &id
	}
	return filter
}

func (s *paperServiceImpl) List(ctx context.Context, q PaperQuery) ([]models.Paper, error) {
	return s.papers.List(ctx, q.Filter())
}

func (s *paperServiceImpl) Recent(ctx context.Context, semester int, limit uint64) ([]models.Paper, error) {
	return s.papers.List(ctx, repositories.PaperFilter{
		Semester: &semester,
		Order:    repositories.PaperOrderRecent,
		Limit:    limit,
	})
}

func (s *paperServiceImpl) Get(ctx context.Context, id int64) (*models.Paper, error) {
	return s.papers.GetByID(ctx, id)
}

func (s *paperServiceImpl) Delete(ctx context.Context, user *models.User, id int64) error {
	paper, err := s.papers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.Authorize(user, paper, "delete this paper"); err != nil {
		logger.Warn().Int64("paperID", id).Int64("userID", user.ID).Msg("Rejected paper delete")
		return err
	}

	removeStoredFile(ctx, s.storage, filestorage.DirPapers, paper.File)
	if err := s.papers.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("paperID", id).Int64("userID", user.ID).Msg("Paper deleted")
	return nil
}
