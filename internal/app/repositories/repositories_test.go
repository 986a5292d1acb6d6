package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/pkg/apperrors"
	"github.com/yigit/brainora/internal/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestUserIdentifierQuery_SingleStatement(t *testing.T) {
	repo := NewUserRepository(nil)

	sql, args, err := repo.identifierQuery("alice@example.com").ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM users WHERE (username = $1 OR email = $2)")
	assert.Contains(t, sql, "LIMIT 2")
	assert.Equal(t, []interface{}{"alice@example.com", "alice@example.com"}, args)
}

func TestCourseListQuery(t *testing.T) {
	repo := NewCourseRepository(nil)

	t.Run("semester and search", func(t *testing.T) {
		sql, args, err := repo.listQuery(CourseFilter{Semester: intPtr(1), Search: " cs1 "}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, sql, "WHERE semester = $1 AND (code ILIKE $2 OR title ILIKE $3 OR instructor ILIKE $4)")
		assert.Contains(t, sql, "ORDER BY semester ASC, code ASC")
		assert.Equal(t, []interface{}{1, "%cs1%", "%cs1%", "%cs1%"}, args)
	})

	t.Run("no filter keeps ordering", func(t *testing.T) {
		sql, args, err := repo.listQuery(CourseFilter{}).ToSql()
		require.NoError(t, err)

		assert.NotContains(t, sql, "WHERE")
		assert.Contains(t, sql, "ORDER BY semester ASC, code ASC")
		assert.Empty(t, args)
	})
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}

func TestPaperListQuery(t *testing.T) {
	repo := NewPaperRepository(nil)

	t.Run("default order is year then created", func(t *testing.T) {
		sql, args, err := repo.listQuery(PaperFilter{Semester: intPtr(2), Type: models.PaperFinal}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, sql, "JOIN courses c ON c.id = p.course_id")
		assert.Contains(t, sql, "c.semester = $1")
		assert.Contains(t, sql, "p.paper_type = $2")
		assert.Contains(t, sql, "ORDER BY p.year DESC, p.created_at DESC")
		assert.NotContains(t, sql, "LIMIT")
		assert.Equal(t, []interface{}{2, "final"}, args)
	})

	t.Run("recent with limit", func(t *testing.T) {
		sql, _, err := repo.listQuery(PaperFilter{CourseID: int64Ptr(7), Order: PaperOrderRecent, Limit: 5}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, sql, "p.course_id = $1")
		assert.Contains(t, sql, "ORDER BY p.created_at DESC")
		assert.Contains(t, sql, "LIMIT 5")
	})
}

func TestActivityListQuery(t *testing.T) {
	repo := NewActivityRepository(nil)

	t.Run("default order", func(t *testing.T) {
		sql, args, err := repo.listQuery(ActivityFilter{Types: []models.ActivityType{models.ActivityHoliday}}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, sql, "WHERE activity_type = $1")
		assert.Contains(t, sql, "ORDER BY date DESC, created_at DESC")
		assert.Equal(t, []interface{}{"holiday"}, args)
	})

	t.Run("upcoming", func(t *testing.T) {
		now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		sql, args, err := repo.listQuery(ActivityFilter{
			Types: models.UpcomingActivityTypes,
			From:  &now,
			Order: ActivityOrderDateAsc,
			Limit: 6,
		}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, sql, "activity_type IN ($1,$2)")
		assert.Contains(t, sql, "date >= $3")
		assert.Contains(t, sql, "ORDER BY date ASC")
		assert.Contains(t, sql, "LIMIT 6")
		assert.Equal(t, []interface{}{"event", "deadline", now}, args)
	})

	t.Run("recent announcements", func(t *testing.T) {
		sql, _, err := repo.listQuery(ActivityFilter{
			Types: []models.ActivityType{models.ActivityAnnouncement},
			Order: ActivityOrderCreatedDesc,
			Limit: 5,
		}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, sql, "ORDER BY created_at DESC")
		assert.Contains(t, sql, "LIMIT 5")
	})
}

func TestResourceListQuery(t *testing.T) {
	repo := NewResourceRepository(nil)

	sql, args, err := repo.listQuery(ResourceFilter{Category: models.CategoryNotes, Search: "graph"}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "LEFT JOIN users u ON u.id = r.uploaded_by")
	assert.Contains(t, sql, "r.category = $1 AND (r.title ILIKE $2 OR r.description ILIKE $3)")
	assert.Contains(t, sql, "ORDER BY r.created_at DESC")
	assert.Equal(t, []interface{}{"notes", "%graph%", "%graph%"}, args)

	sql, _, err = repo.listQuery(ResourceFilter{Limit: 50}).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "WHERE")
	assert.Contains(t, sql, "LIMIT 50")
}

func newRedisSessions(t *testing.T) (*RedisSessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisSessionRepository(redis.NewFromClient(rdb)), mr
}

func TestRedisSessionRepository_Lifecycle(t *testing.T) {
	repo, mr := newRedisSessions(t)
	ctx := context.Background()

	session := &models.Session{
		ID:        "5f2b8a4e-1111-4c5d-9e0f-000000000001",
		UserID:    42,
		IP:        "127.0.0.1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, session))
	assert.True(t, mr.Exists(sessionKey(session.ID)))
	assert.InDelta(t, time.Hour.Seconds(), mr.TTL(sessionKey(session.ID)).Seconds(), 5)

	got, err := repo.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, "127.0.0.1", got.IP)

	require.NoError(t, repo.Delete(ctx, session.ID))
	_, err = repo.Get(ctx, session.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestRedisSessionRepository_Expiry(t *testing.T) {
	repo, mr := newRedisSessions(t)
	ctx := context.Background()

	err := repo.Create(ctx, &models.Session{ID: "old", UserID: 1, ExpiresAt: time.Now().Add(-time.Minute)})
	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)

	require.NoError(t, repo.Create(ctx, &models.Session{ID: "short", UserID: 1, ExpiresAt: time.Now().Add(time.Minute)}))
	mr.FastForward(2 * time.Minute)

	_, err = repo.Get(ctx, "short")
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}
