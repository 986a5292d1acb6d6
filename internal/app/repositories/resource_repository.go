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
	"github.com/yigit/brainora/internal/pkg/helpers"
	"github.com/yigit/brainora/internal/pkg/logger"
)

// ResourceFilter narrows a resource listing. Zero values mean "no filter".
type ResourceFilter struct {
	Category models.Category
	// Search is a case-insensitive substring over title and description.
	Search string
	Limit  uint64
}

// ResourceRepository handles uploaded resource database operations
type ResourceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ResourceRepository) baseSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"r.id", "r.title", "r.category", "COALESCE(r.description, '')", "COALESCE(r.file, '')",
		"COALESCE(r.link, '')", "r.uploaded_by", "r.created_at",
		"COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.username, '')",
	).
		From("resources r").
		LeftJoin("users u ON u.id = r.uploaded_by")
}

func scanResource(row pgx.Row, res *models.Resource) error {
	return row.Scan(&res.ID, &res.Title, &res.Category, &res.Description, &res.File,
		&res.Link, &res.UploadedBy, &res.CreatedAt, &res.UploaderName)
}

func (r *ResourceRepository) listQuery(filter ResourceFilter) squirrel.SelectBuilder {
	q := r.baseSelect()
	if filter.Category != "" {
		q = q.Where(squirrel.Eq{"r.category": string(filter.Category)})
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		p := likePattern(s)
		q = q.Where(squirrel.Or{
			squirrel.ILike{"r.title": p},
			squirrel.ILike{"r.description": p},
		})
	}
	q = q.OrderBy("r.created_at DESC", "r.id DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	return q
}

// List returns resources newest first.
func (r *ResourceRepository) List(ctx context.Context, filter ResourceFilter) ([]models.Resource, error) {
	query, args, err := r.listQuery(filter).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list resources SQL")
		return nil, fmt.Errorf("failed to build list resources query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list resources query")
		return nil, fmt.Errorf("failed to query resources: %w", err)
	}
	defer rows.Close()

	resources := []models.Resource{}
	for rows.Next() {
		var res models.Resource
		if err := scanResource(rows, &res); err != nil {
			logger.Error().Err(err).Msg("Error scanning resource row")
			return nil, fmt.Errorf("failed to scan resource row: %w", err)
		}
		resources = append(resources, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resource rows: %w", err)
	}
	return resources, nil
}

// GetByID retrieves a resource by ID
func (r *ResourceRepository) GetByID(ctx context.Context, id int64) (*models.Resource, error) {
	query, args, err := r.baseSelect().Where(squirrel.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get resource query: %w", err)
	}

	res := &models.Resource{}
	if err := scanResource(r.db.QueryRow(ctx, query, args...), res); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceItemAbsent
		}
		logger.Error().Err(err).Int64("resourceID", id).Msg("Error scanning resource row")
		return nil, fmt.Errorf("error retrieving resource: %w", err)
	}
	return res, nil
}

// Create inserts a resource.
func (r *ResourceRepository) Create(ctx context.Context, res *models.Resource) error {
	query, args, err := r.sb.Insert("resources").
		Columns("title", "category", "description", "file", "link", "uploaded_by", "created_at").
		Values(res.Title, string(res.Category), helpers.GetContentNullString(res.Description),
			helpers.GetContentNullString(res.File), helpers.GetContentNullString(res.Link),
			res.UploadedBy, time.Now()).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create resource query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&res.ID, &res.CreatedAt); err != nil {
		logger.Error().Err(err).Str("title", res.Title).Msg("Error executing create resource query")
		return fmt.Errorf("error creating resource: %w", err)
	}
	return nil
}

// Delete removes a resource record.
func (r *ResourceRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("resources").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete resource query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("resourceID", id).Msg("Error executing delete resource query")
		return fmt.Errorf("error deleting resource: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceItemAbsent
	}
	return nil
}
