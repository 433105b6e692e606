package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/skillboost/core"
	"github.com/trezcool/skillboost/core/user"
)

type (
	userRow struct {
		ID        string    `db:"id"`
		Name      string    `db:"name"`
		Email     string    `db:"email"`
		Photo     string    `db:"photo"`
		Role      string    `db:"role"`
		CreatedAt time.Time `db:"created_at"`
	}

	requestRow struct {
		ID         string    `db:"id"`
		Name       string    `db:"name"`
		Email      string    `db:"email"`
		Image      string    `db:"image"`
		Title      string    `db:"title"`
		Category   string    `db:"category"`
		Experience string    `db:"experience"`
		Status     string    `db:"status"`
		CreatedAt  time.Time `db:"created_at"`
	}
)

func (r userRow) user() user.User {
	return user.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Photo:     r.Photo,
		Role:      user.Role(r.Role),
		CreatedAt: r.CreatedAt.UTC(),
	}
}

func (r requestRow) request() user.TeacherRequest {
	return user.TeacherRequest{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		Image:      r.Image,
		Title:      r.Title,
		Category:   r.Category,
		Experience: r.Experience,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt.UTC(),
	}
}

const (
	userColumns    = `id, name, email, photo, role, created_at`
	requestColumns = `id, name, email, image, title, category, experience, status, created_at`
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	usr.ID = newID()
	row := userRow{
		ID:        usr.ID,
		Name:      usr.Name,
		Email:     usr.Email,
		Photo:     usr.Photo,
		Role:      string(usr.Role),
		CreatedAt: usr.CreatedAt,
	}
	q := `INSERT INTO users (` + userColumns + `) VALUES (:id, :name, :email, :photo, :role, :created_at)`
	if err := insert(ctx, repo.db, q, row); err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	users, err := selectAll(ctx, repo.db, userRow.user, `SELECT `+userColumns+` FROM users ORDER BY seq`)
	return users, errors.Wrap(err, "querying users")
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	var row userRow
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := getByID(ctx, repo.db, &row, user.ErrNotFound, q, id); err != nil {
		return user.User{}, err
	}
	return row.user(), nil
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var row userRow
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	if err := get(ctx, repo.db, &row, user.ErrNotFound, q, email); err != nil {
		return user.User{}, err
	}
	return row.user(), nil
}

func (repo *userRepository) SetUserRole(ctx context.Context, id string, role user.Role) (core.UpdateResult, error) {
	res := core.UpdateResult{Acknowledged: true}
	if _, err := uuid.Parse(id); err != nil {
		return res, nil
	}

	var current string
	if err := get(ctx, repo.db, &current, user.ErrNotFound, `SELECT role FROM users WHERE id = $1`, id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return res, nil
		}
		return core.UpdateResult{}, errors.Wrap(err, "getting user role")
	}
	res.MatchedCount = 1

	sqlRes, err := repo.db.ExecContext(ctx, `UPDATE users SET role = $1 WHERE id = $2 AND role <> $1`, string(role), id)
	if err != nil {
		return core.UpdateResult{}, errors.Wrap(err, "updating user role")
	}
	if res.ModifiedCount, err = rowsAffected(sqlRes); err != nil {
		return core.UpdateResult{}, err
	}
	return res, nil
}

func (repo *userRepository) CreateTeacherRequest(ctx context.Context, req user.TeacherRequest) (user.TeacherRequest, error) {
	req.ID = newID()
	row := requestRow{
		ID:         req.ID,
		Name:       req.Name,
		Email:      req.Email,
		Image:      req.Image,
		Title:      req.Title,
		Category:   req.Category,
		Experience: req.Experience,
		Status:     req.Status,
		CreatedAt:  req.CreatedAt,
	}
	q := `INSERT INTO teacher_requests (` + requestColumns + `)
		VALUES (:id, :name, :email, :image, :title, :category, :experience, :status, :created_at)`
	if err := insert(ctx, repo.db, q, row); err != nil {
		return user.TeacherRequest{}, errors.Wrap(err, "inserting teacher request")
	}
	return req, nil
}

func (repo *userRepository) QueryAllTeacherRequests(ctx context.Context) ([]user.TeacherRequest, error) {
	reqs, err := selectAll(ctx, repo.db, requestRow.request, `SELECT `+requestColumns+` FROM teacher_requests ORDER BY seq`)
	return reqs, errors.Wrap(err, "querying teacher requests")
}

func (repo *userRepository) GetTeacherRequestByID(ctx context.Context, id string) (user.TeacherRequest, error) {
	var row requestRow
	q := `SELECT ` + requestColumns + ` FROM teacher_requests WHERE id = $1`
	if err := getByID(ctx, repo.db, &row, user.ErrRequestNotFound, q, id); err != nil {
		return user.TeacherRequest{}, err
	}
	return row.request(), nil
}

func (repo *userRepository) DeleteTeacherRequest(ctx context.Context, id string) (core.DeleteResult, error) {
	res := core.DeleteResult{Acknowledged: true}
	if _, err := uuid.Parse(id); err != nil {
		return res, nil
	}

	sqlRes, err := repo.db.ExecContext(ctx, `DELETE FROM teacher_requests WHERE id = $1`, id)
	if err != nil {
		return core.DeleteResult{}, errors.Wrap(err, "deleting teacher request")
	}
	if res.DeletedCount, err = rowsAffected(sqlRes); err != nil {
		return core.DeleteResult{}, err
	}
	return res, nil
}
