package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/pkg/apperrors"
	"github.com/yigit/brainora/internal/pkg/dberrors"
	"github.com/yigit/brainora/internal/pkg/logger"
)

var courseColumns = []string{
	"id", "code", "title", "description", "semester", "credits", "instructor", "created_at", "updated_at",
}

// CourseFilter narrows a course listing. Zero values mean "no filter".
type CourseFilter struct {
	Semester *int
	// Search is a case-insensitive substring over code, title and instructor.
	Search string
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanCourse(row pgx.Row, c *models.Course) error {
	return row.Scan(&c.ID, &c.Code, &c.Title, &c.Description, &c.Semester, &c.Credits,
		&c.Instructor, &c.CreatedAt, &c.UpdatedAt)
}

func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func (r *CourseRepository) listQuery(filter CourseFilter) squirrel.SelectBuilder {
	q := r.sb.Select(courseColumns...).From("courses")
	if filter.Semester != nil {
		q = q.Where(squirrel.Eq{"semester": *filter.Semester})
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		p := likePattern(s)
		q = q.Where(squirrel.Or{
			squirrel.ILike{"code": p},
			squirrel.ILike{"title": p},
			squirrel.ILike{"instructor": p},
		})
	}
	return q.OrderBy("semester ASC", "code ASC")
}

// List returns courses ordered by semester then code.
func (r *CourseRepository) List(ctx context.Context, filter CourseFilter) ([]models.Course, error) {
	query, args, err := r.listQuery(filter).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var c models.Course
		if err := scanCourse(rows, &c); err != nil {
			logger.Error().Err(err).Msg("Error scanning course row")
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course := &models.Course{}
	if err := scanCourse(r.db.QueryRow(ctx, query, args...), course); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// Count returns the total number of courses.
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := r.sb.Select("COUNT(*)").From("courses").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting courses")
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}
	return total, nil
}

// Create inserts a course. A duplicate code yields ErrResourceAlreadyExists.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.Credits == 0 {
		course.Credits = models.DefaultCredits
	}
	now := time.Now()

	query, args, err := r.sb.Insert("courses").
		Columns("code", "title", "description", "semester", "credits", "instructor", "created_at", "updated_at").
		Values(course.Code, course.Title, course.Description, course.Semester, course.Credits, course.Instructor, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.CoursesCodeKey) {
			return apperrors.ErrResourceAlreadyExists
		}
		logger.Error().Err(err).Str("code", course.Code).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}
