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
	"github.com/yigit/brainora/internal/pkg/helpers"
	"github.com/yigit/brainora/internal/pkg/logger"
)

var activityColumns = []string{
	"id", "title", "activity_type", "description", "date",
	"COALESCE(location, '')", "COALESCE(image, '')", "created_by", "created_at", "updated_at",
}

// ActivityOrder selects the sort order of an activity listing.
type ActivityOrder int

const (
	// ActivityOrderDateDesc is the default listing order: date then creation time, newest first.
	ActivityOrderDateDesc ActivityOrder = iota
	// ActivityOrderDateAsc puts the nearest date first.
	ActivityOrderDateAsc
	// ActivityOrderCreatedDesc puts the most recently created first.
	ActivityOrderCreatedDesc
)

// ActivityFilter narrows an activity listing. Zero values mean "no filter".
type ActivityFilter struct {
	Types []models.ActivityType
	// From keeps activities dated at or after this instant.
	From  *time.Time
	Order ActivityOrder
	Limit uint64
}

// ActivityRepository handles college activity database operations
type ActivityRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanActivity(row pgx.Row, a *models.Activity) error {
	return row.Scan(&a.ID, &a.Title, &a.ActivityType, &a.Description, &a.Date,
		&a.Location, &a.Image, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
}

func (r *ActivityRepository) listQuery(filter ActivityFilter) squirrel.SelectBuilder {
	q := r.sb.Select(activityColumns...).From("activities")

	switch len(filter.Types) {
	case 0:
	case 1:
		q = q.Where(squirrel.Eq{"activity_type": string(filter.Types[0])})
	default:
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		q = q.Where(squirrel.Eq{"activity_type": types})
	}
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.From})
	}

	switch filter.Order {
	case ActivityOrderDateAsc:
		q = q.OrderBy("date ASC", "created_at ASC", "id ASC")
	case ActivityOrderCreatedDesc:
		q = q.OrderBy("created_at DESC", "id DESC")
	default:
		q = q.OrderBy("date DESC", "created_at DESC", "id DESC")
	}

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	return q
}

// List returns activities matching the filter.
func (r *ActivityRepository) List(ctx context.Context, filter ActivityFilter) ([]models.Activity, error) {
	query, args, err := r.listQuery(filter).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list activities SQL")
		return nil, fmt.Errorf("failed to build list activities query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list activities query")
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	activities := []models.Activity{}
	for rows.Next() {
		var a models.Activity
		if err := scanActivity(rows, &a); err != nil {
			logger.Error().Err(err).Msg("Error scanning activity row")
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}
	return activities, nil
}

// GetByID retrieves an activity by ID
func (r *ActivityRepository) GetByID(ctx context.Context, id int64) (*models.Activity, error) {
	query, args, err := r.sb.Select(activityColumns...).
		From("activities").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get activity query: %w", err)
	}

	activity := &models.Activity{}
	if err := scanActivity(r.db.QueryRow(ctx, query, args...), activity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrActivityNotFound
		}
		logger.Error().Err(err).Int64("activityID", id).Msg("Error scanning activity row")
		return nil, fmt.Errorf("error retrieving activity: %w", err)
	}
	return activity, nil
}

// Create inserts an activity.
func (r *ActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	now := time.Now()
	query, args, err := r.sb.Insert("activities").
		Columns("title", "activity_type", "description", "date", "location", "image", "created_by", "created_at", "updated_at").
		Values(activity.Title, string(activity.ActivityType), activity.Description, activity.Date,
			helpers.GetContentNullString(activity.Location), helpers.GetContentNullString(activity.Image),
			activity.CreatedBy, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create activity query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&activity.ID, &activity.CreatedAt, &activity.UpdatedAt); err != nil {
		logger.Error().Err(err).Str("title", activity.Title).Msg("Error executing create activity query")
		return fmt.Errorf("error creating activity: %w", err)
	}
	return nil
}

// TitleExists reports whether an activity with exactly this title exists.
func (r *ActivityRepository) TitleExists(ctx context.Context, title string) (bool, error) {
	sub, args, err := r.sb.Select("1").From("activities").Where(squirrel.Eq{"title": title}).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build activity exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS("+sub+")", args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("title", title).Msg("Error checking activity existence")
		return false, fmt.Errorf("error checking activity existence: %w", err)
	}
	return exists, nil
}

// Delete removes an activity record.
func (r *ActivityRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("activities").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete activity query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("activityID", id).Msg("Error executing delete activity query")
		return fmt.Errorf("error deleting activity: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrActivityNotFound
	}
	return nil
}
