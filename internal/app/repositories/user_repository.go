package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/pkg/apperrors"
	"github.com/yigit/brainora/internal/pkg/dberrors"
	"github.com/yigit/brainora/internal/pkg/helpers"
	"github.com/yigit/brainora/internal/pkg/logger"
)

var userColumns = []string{
	"id", "username", "email", "password", "first_name", "last_name",
	"COALESCE(college_id, '')", "semester", "COALESCE(bio, '')", "COALESCE(profile_picture, '')",
	"is_active", "is_staff", "is_superuser", "date_joined", "last_login",
}

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row, u *models.User) error {
	var semester sql.NullInt32
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Password, &u.FirstName, &u.LastName,
		&u.CollegeID, &semester, &u.Bio, &u.ProfilePicture,
		&u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.DateJoined, &u.LastLogin,
	)
	if err != nil {
		return err
	}
	u.Semester = helpers.IntPtr(semester)
	return nil
}

// Create inserts a user and sets its ID and DateJoined.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.DateJoined.IsZero() {
		user.DateJoined = time.Now()
	}

	query, args, err := r.sb.Insert("users").
		Columns("username", "email", "password", "first_name", "last_name", "college_id",
			"semester", "bio", "profile_picture", "is_active", "is_staff", "is_superuser", "date_joined").
		Values(user.Username, user.Email, user.Password, user.FirstName, user.LastName,
			helpers.GetContentNullString(user.CollegeID), helpers.GetNullInt32(user.Semester),
			helpers.GetContentNullString(user.Bio), helpers.GetContentNullString(user.ProfilePicture),
			user.IsActive, user.IsStaff, user.IsSuperuser, user.DateJoined).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&user.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.UsersUsernameKey) {
			logger.Warn().Str("username", user.Username).Msg("Attempted to create duplicate username")
			return apperrors.ErrUsernameExists
		}
		logger.Error().Err(err).Str("username", user.Username).Msg("Error executing create user query")
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by ID SQL")
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user := &models.User{}
	if err := scanUser(r.db.QueryRow(ctx, query, args...), user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// identifierQuery matches username OR email in a single statement. Two rows
// are enough to tell an ambiguous identifier from a unique one.
func (r *UserRepository) identifierQuery(identifier string) squirrel.SelectBuilder {
	return r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Or{
			squirrel.Eq{"username": identifier},
			squirrel.Eq{"email": identifier},
		}).
		OrderBy("id").
		Limit(2)
}

// FindByIdentifier returns up to two users whose username or email equals identifier.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) ([]models.User, error) {
	query, args, err := r.identifierQuery(identifier).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building find by identifier SQL")
		return nil, fmt.Errorf("failed to build find by identifier query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing find by identifier query")
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u); err != nil {
			logger.Error().Err(err).Msg("Error scanning user row")
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

func (r *UserRepository) exists(ctx context.Context, cond squirrel.Sqlizer) (bool, error) {
	sub, args, err := r.sb.Select("1").From("users").Where(cond).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS("+sub+")", args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Msg("Error executing exists query")
		return false, fmt.Errorf("error checking user existence: %w", err)
	}
	return exists, nil
}

// EmailExists checks if an email is already registered, ignoring case.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, squirrel.Expr("LOWER(email) = LOWER(?)", email))
}

// UsernameExists checks if a username is taken.
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"username": username})
}

// UpdateProfile persists the editable profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query, args, err := r.sb.Update("users").
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("college_id", helpers.GetContentNullString(user.CollegeID)).
		Set("semester", helpers.GetNullInt32(user.Semester)).
		Set("bio", helpers.GetContentNullString(user.Bio)).
		Set("profile_picture", helpers.GetContentNullString(user.ProfilePicture)).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update profile SQL")
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Error executing update profile query")
		return fmt.Errorf("error updating profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin records a successful login.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	query, args, err := r.sb.Update("users").
		Set("last_login", at).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update last login query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error updating last login")
		return fmt.Errorf("failed to update last login time: %w", err)
	}
	return nil
}

// SetAdmin grants or revokes the staff and superuser flags.
func (r *UserRepository) SetAdmin(ctx context.Context, userID int64, admin bool) error {
	query, args, err := r.sb.Update("users").
		Set("is_staff", admin).
		Set("is_superuser", admin).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set admin query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error updating admin flags")
		return fmt.Errorf("failed to update admin flags: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
