package user

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/skillboost/core"
)

var (
	// errors
	ErrNotFound        = errors.New("user not found")
	ErrRequestNotFound = errors.New("teacher request not found")
	ErrEmailExists     = errors.New("a user with this email already exists")
	ErrInvalidRole     = errors.New("invalid role")
)

const msgUserExists = "user already exists"

type (
	Repository interface {
		// CreateUser returns ErrEmailExists if the email is already taken.
		CreateUser(ctx context.Context, user User) (User, error)
		QueryAllUsers(ctx context.Context) ([]User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		SetUserRole(ctx context.Context, id string, role Role) (core.UpdateResult, error)

		CreateTeacherRequest(ctx context.Context, req TeacherRequest) (TeacherRequest, error)
		QueryAllTeacherRequests(ctx context.Context) ([]TeacherRequest, error)
		GetTeacherRequestByID(ctx context.Context, id string) (TeacherRequest, error)
		DeleteTeacherRequest(ctx context.Context, id string) (core.DeleteResult, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a student User unless one with the same email exists,
// in which case nothing is written and the result reports it.
func (svc *Service) Register(ctx context.Context, nu NewUser) (RegisterResult, error) {
	email := core.CleanEmail(nu.Email)

	if _, err := svc.repo.GetUserByEmail(ctx, email); err == nil {
		return RegisterResult{Message: msgUserExists}, nil
	} else if !errors.Is(err, ErrNotFound) {
		return RegisterResult{}, err
	}

	usr, err := svc.repo.CreateUser(ctx, User{
		Name:      core.CleanString(nu.Name),
		Email:     email,
		Photo:     core.CleanString(nu.Photo),
		Role:      RoleStudent,
		CreatedAt: time.Now().UTC(),
	})
	switch {
	case errors.Is(err, ErrEmailExists): // lost a race with a concurrent registration
		return RegisterResult{Message: msgUserExists}, nil
	case err != nil:
		return RegisterResult{}, pkgerrors.Wrap(err, "creating user")
	}
	return RegisterResult{Acknowledged: true, InsertedID: &usr.ID}, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]User, error) {
	return svc.repo.QueryAllUsers(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanEmail(email))
}

// ResolveRole returns the role of the User with the given email.
// Unknown emails resolve to RoleUnset; only store failures are errors.
func (svc *Service) ResolveRole(ctx context.Context, email string) (Role, error) {
	usr, err := svc.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, ErrNotFound):
		return RoleUnset, nil
	case err != nil:
		return RoleUnset, pkgerrors.Wrap(err, "resolving role")
	}
	return usr.EffectiveRole(), nil
}

func (svc *Service) IsAdmin(ctx context.Context, email string) (bool, error) {
	role, err := svc.ResolveRole(ctx, email)
	return role == RoleAdmin, err
}

func (svc *Service) IsTeacher(ctx context.Context, email string) (bool, error) {
	role, err := svc.ResolveRole(ctx, email)
	return role == RoleTeacher, err
}

// SetRole sets the role of the User with the given id.
// A missing id is reported through a zero MatchedCount, not an error.
func (svc *Service) SetRole(ctx context.Context, id string, role Role) (core.UpdateResult, error) {
	if !role.IsValid() {
		return core.UpdateResult{}, ErrInvalidRole
	}
	return svc.repo.SetUserRole(ctx, id, role)
}

func (svc *Service) PromoteToTeacher(ctx context.Context, id string) (core.UpdateResult, error) {
	return svc.SetRole(ctx, id, RoleTeacher)
}

func (svc *Service) PromoteToAdmin(ctx context.Context, id string) (core.UpdateResult, error) {
	return svc.SetRole(ctx, id, RoleAdmin)
}

// SetRoleByEmail is used to bootstrap roles outside of the API.
func (svc *Service) SetRoleByEmail(ctx context.Context, email string, role Role) (core.UpdateResult, error) {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return core.UpdateResult{}, err
	}
	return svc.SetRole(ctx, usr.ID, role)
}

func (svc *Service) RequestTeacherRole(ctx context.Context, nr NewTeacherRequest) (core.InsertResult, error) {
	req, err := svc.repo.CreateTeacherRequest(ctx, TeacherRequest{
		Name:       nr.Name,
		Email:      core.CleanEmail(nr.Email),
		Image:      nr.Image,
		Title:      nr.Title,
		Category:   nr.Category,
		Experience: nr.Experience,
		Status:     RequestStatusPending,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return core.InsertResult{}, pkgerrors.Wrap(err, "creating teacher request")
	}
	return core.NewInsertResult(req.ID), nil
}

func (svc *Service) QueryTeacherRequests(ctx context.Context) ([]TeacherRequest, error) {
	return svc.repo.QueryAllTeacherRequests(ctx)
}

func (svc *Service) GetTeacherRequest(ctx context.Context, id string) (TeacherRequest, error) {
	return svc.repo.GetTeacherRequestByID(ctx, id)
}

// RejectTeacherRequest deletes the request; the requesting User is left untouched.
func (svc *Service) RejectTeacherRequest(ctx context.Context, id string) (core.DeleteResult, error) {
	return svc.repo.DeleteTeacherRequest(ctx, id)
}
