package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/pkg/apperrors"
	"github.com/yigit/brainora/internal/pkg/logger"
)

// PaperOrder selects the sort order of a paper listing.
type PaperOrder int

const (
	// PaperOrderYear sorts by year then creation time, both descending.
	PaperOrderYear PaperOrder = iota
	// PaperOrderRecent sorts by creation time descending.
	PaperOrderRecent
)

// PaperFilter narrows a paper listing. Zero values mean "no filter".
type PaperFilter struct {
	CourseID *int64
	// Semester scopes papers through their course.
	Semester *int
	Type     models.PaperType
	Order    PaperOrder
	Limit    uint64
}

// PaperRepository handles previous-year paper database operations
type PaperRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPaperRepository creates a new PaperRepository
func NewPaperRepository(db *pgxpool.Pool) *PaperRepository {
	return &PaperRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *PaperRepository) baseSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"p.id", "p.course_id", "p.title", "p.paper_type", "p.year", "p.file", "p.uploaded_by",
		"p.created_at", "p.updated_at", "c.code", "c.title",
		"COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.username, '')",
	).
		From("papers p").
		Join("courses c ON c.id = p.course_id").
		LeftJoin("users u ON u.id = p.uploaded_by")
}

func scanPaper(row pgx.Row, p *models.Paper) error {
	return row.Scan(&p.ID, &p.CourseID, &p.Title, &p.PaperType, &p.Year, &p.File, &p.UploadedBy,
		&p.CreatedAt, &p.UpdatedAt, &p.CourseCode, &p.CourseTitle, &p.UploaderName)
}

func (r *PaperRepository) listQuery(filter PaperFilter) squirrel.SelectBuilder {
	q := r.baseSelect()
	if filter.CourseID != nil {
		q = q.Where(squirrel.Eq{"p.course_id": *filter.CourseID})
	}
	if filter.Semester != nil {
		q = q.Where(squirrel.Eq{"c.semester": *filter.Semester})
	}
	if filter.Type != "" {
		q = q.Where(squirrel.Eq{"p.paper_type": string(filter.Type)})
	}

	switch filter.Order {
	case PaperOrderRecent:
		q = q.OrderBy("p.created_at DESC", "p.id DESC")
	default:
		q = q.OrderBy("p.year DESC", "p.created_at DESC", "p.id DESC")
	}

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	return q
}

// List returns papers matching the filter.
func (r *PaperRepository) List(ctx context.Context, filter PaperFilter) ([]models.Paper, error) {
	query, args, err := r.listQuery(filter).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list papers SQL")
		return nil, fmt.Errorf("failed to build list papers query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list papers query")
		return nil, fmt.Errorf("failed to query papers: %w", err)
	}
	defer rows.Close()

	papers := []models.Paper{}
	for rows.Next() {
		var p models.Paper
		if err := scanPaper(rows, &p); err != nil {
			logger.Error().Err(err).Msg("Error scanning paper row")
			return nil, fmt.Errorf("failed to scan paper row: %w", err)
		}
		papers = append(papers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating paper rows: %w", err)
	}
	return papers, nil
}

// GetByID retrieves a paper by ID
func (r *PaperRepository) GetByID(ctx context.Context, id int64) (*models.Paper, error) {
	query, args, err := r.baseSelect().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get paper query: %w", err)
	}

	paper := &models.Paper{}
	if err := scanPaper(r.db.QueryRow(ctx, query, args...), paper); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPaperNotFound
		}
		logger.Error().Err(err).Int64("paperID", id).Msg("Error scanning paper row")
		return nil, fmt.Errorf("error retrieving paper: %w", err)
	}
	return paper, nil
}

// Create inserts a paper.
func (r *PaperRepository) Create(ctx context.Context, paper *models.Paper) error {
	now := time.Now()
	query, args, err := r.sb.Insert("papers").
		Columns("course_id", "title", "paper_type", "year", "file", "uploaded_by", "created_at", "updated_at").
		Values(paper.CourseID, paper.Title, string(paper.PaperType), paper.Year, paper.File, paper.UploadedBy, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create paper query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&paper.ID, &paper.CreatedAt, &paper.UpdatedAt); err != nil {
		logger.Error().Err(err).Int64("courseID", paper.CourseID).Msg("Error executing create paper query")
		return fmt.Errorf("error creating paper: %w", err)
	}
	return nil
}

// Delete removes a paper record.
func (r *PaperRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("papers").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete paper query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("paperID", id).Msg("Error executing delete paper query")
		return fmt.Errorf("error deleting paper: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPaperNotFound
	}
	return nil
}
