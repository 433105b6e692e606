package sqlxrepos

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/skillboost/core"
	"github.com/trezcool/skillboost/core/course"
	"github.com/trezcool/skillboost/core/payment"
	"github.com/trezcool/skillboost/core/user"
	"github.com/trezcool/skillboost/tests"
)

func TestUserRepository(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	created := time.Now().UTC().Truncate(time.Millisecond)
	usr := testutil.CreateUser(t, repo, "Jane", "jane@x.com", user.RoleStudent, created)

	_, err := repo.CreateUser(ctx, user.User{Email: "jane@x.com"})
	assert.ErrorIs(t, err, user.ErrEmailExists)

	got, err := repo.GetUserByEmail(ctx, "jane@x.com")
	require.NoError(t, err)
	assert.Equal(t, usr, got)

	_, err = repo.GetUserByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, user.ErrNotFound)

	res, err := repo.SetUserRole(ctx, usr.ID, user.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, core.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, res)

	res, err = repo.SetUserRole(ctx, usr.ID, user.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, core.UpdateResult{Acknowledged: true, MatchedCount: 1}, res)

	req, err := repo.CreateTeacherRequest(ctx, user.TeacherRequest{
		Email: "jane@x.com", Title: "Go", Category: "dev", Experience: "mid", Status: user.RequestStatusPending,
	})
	require.NoError(t, err)

	del, err := repo.DeleteTeacherRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, del.DeletedCount)

	_, err = repo.GetUserByID(ctx, usr.ID)
	assert.NoError(t, err)
}

func TestCourseRepository_QueryCourses(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	repo := NewCourseRepository(db)

	var titles []string
	for i := 0; i < 25; i++ {
		c, err := repo.CreateCourse(ctx, course.Course{
			Title:        "course " + strconv.Itoa(i),
			TeacherEmail: "t@x.com",
			CreatedAt:    time.Now().UTC(),
		})
		require.NoError(t, err)
		titles = append(titles, c.Title)
	}

	page, err := repo.QueryCourses(ctx, core.Pagination{Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, page, 10)
	assert.Equal(t, titles[10], page[0].Title)
	assert.Equal(t, titles[19], page[9].Title)

	all, err := repo.QueryCourses(ctx, core.Pagination{})
	require.NoError(t, err)
	assert.Len(t, all, 25)

	count, err := repo.CountCourses(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 25, count)
}

func TestPaymentRepository(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	repo := NewPaymentRepository(db)

	p, err := repo.CreatePayment(ctx, payment.Payment{
		Email: "jane@x.com", Price: 19.99, TransactionID: "pi_1", CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	got, err := repo.GetPaymentByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "pi_1", got.TransactionID)

	_, err = repo.GetPaymentByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, payment.ErrNotFound)
}
