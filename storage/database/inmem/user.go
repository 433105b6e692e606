package inmemdb

import (
	"context"

	"github.com/trezcool/skillboost/core"
	"github.com/trezcool/skillboost/core/user"
)

type userRepository struct {
	db *DB
}

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	tbl := repo.db.user
	tbl.mutex.Lock()
	defer tbl.mutex.Unlock()

	for _, u := range tbl.rows {
		if u.Email == usr.Email {
			return user.User{}, user.ErrEmailExists
		}
	}
	usr.ID = newID()
	tbl.insert(usr.ID, usr)
	return usr, nil
}

func (repo *userRepository) QueryAllUsers(context.Context) ([]user.User, error) {
	return repo.db.user.all(), nil
}

func (repo *userRepository) GetUserByID(_ context.Context, id string) (user.User, error) {
	if usr, ok := repo.db.user.get(id); ok {
		return usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	if usr, ok := repo.db.user.find(func(u user.User) bool { return u.Email == email }); ok {
		return usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) SetUserRole(_ context.Context, id string, role user.Role) (core.UpdateResult, error) {
	res := core.UpdateResult{Acknowledged: true}
	repo.db.user.update(id, func(u *user.User) {
		res.MatchedCount = 1
		if u.Role != role {
			u.Role = role
			res.ModifiedCount = 1
		}
	})
	return res, nil
}

func (repo *userRepository) CreateTeacherRequest(_ context.Context, req user.TeacherRequest) (user.TeacherRequest, error) {
	return create(repo.db.request, req, func(r *user.TeacherRequest, id string) { r.ID = id }), nil
}

func (repo *userRepository) QueryAllTeacherRequests(context.Context) ([]user.TeacherRequest, error) {
	return repo.db.request.all(), nil
}

func (repo *userRepository) GetTeacherRequestByID(_ context.Context, id string) (user.TeacherRequest, error) {
	if req, ok := repo.db.request.get(id); ok {
		return req, nil
	}
	return user.TeacherRequest{}, user.ErrRequestNotFound
}

func (repo *userRepository) DeleteTeacherRequest(_ context.Context, id string) (core.DeleteResult, error) {
	res := core.DeleteResult{Acknowledged: true}
	if repo.db.request.delete(id) {
		res.DeletedCount = 1
	}
	return res, nil
}
