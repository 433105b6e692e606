package user_test

import (
	"context"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/skillboost/core"
	"github.com/trezcool/skillboost/core/user"
	"github.com/trezcool/skillboost/storage/database/inmem"
)

func newService() *user.Service {
	return user.NewService(inmemdb.NewUserRepository(inmemdb.Open()))
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	res, err := svc.Register(ctx, user.NewUser{Name: "Jane", Email: " Jane@X.com "})
	require.NoError(t, err)
	assert.False(t, res.AlreadyExists())
	assert.True(t, res.Acknowledged)

	usr, err := svc.GetByEmail(ctx, "jane@x.com")
	require.NoError(t, err)
	assert.Equal(t, *res.InsertedID, usr.ID)
	assert.Equal(t, user.RoleStudent, usr.Role)

	res, err = svc.Register(ctx, user.NewUser{Name: "Other Jane", Email: "jane@x.com"})
	require.NoError(t, err)
	assert.True(t, res.AlreadyExists())
	assert.Equal(t, user.RegisterResult{Message: "user already exists"}, res)

	users, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestService_Register_concurrent(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(ctx, user.NewUser{Email: "jane@x.com"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	users, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestService_ResolveRole(t *testing.T) {
	ctx := context.Background()
	repo := inmemdb.NewUserRepository(inmemdb.Open())
	svc := user.NewService(repo)

	for _, usr := range []user.User{
		{Email: "admin@x.com", Role: user.RoleAdmin},
		{Email: "teacher@x.com", Role: user.RoleTeacher},
		{Email: "student@x.com", Role: user.RoleStudent},
		{Email: "norole@x.com"},
	} {
		_, err := repo.CreateUser(ctx, usr)
		require.NoError(t, err)
	}

	tests := []struct {
		email string
		want  user.Role
	}{
		{email: "admin@x.com", want: user.RoleAdmin},
		{email: "ADMIN@x.com ", want: user.RoleAdmin},
		{email: "teacher@x.com", want: user.RoleTeacher},
		{email: "student@x.com", want: user.RoleStudent},
		{email: "norole@x.com", want: user.RoleUnset},
		{email: "unknown@x.com", want: user.RoleUnset},
		{email: "", want: user.RoleUnset},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			got, err := svc.ResolveRole(ctx, tt.email)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	isAdmin, err := svc.IsAdmin(ctx, "admin@x.com")
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isTeacher, err := svc.IsTeacher(ctx, "admin@x.com")
	require.NoError(t, err)
	assert.False(t, isTeacher)
}

func TestService_Promote(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	res, err := svc.Register(ctx, user.NewUser{Email: "jane@x.com"})
	require.NoError(t, err)
	id := *res.InsertedID

	upd, err := svc.PromoteToTeacher(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, core.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, upd)

	role, err := svc.ResolveRole(ctx, "jane@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.RoleTeacher, role)

	upd, err = svc.PromoteToAdmin(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, upd.ModifiedCount)

	role, err = svc.ResolveRole(ctx, "jane@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, role)

	upd, err = svc.PromoteToAdmin(ctx, "unknown")
	require.NoError(t, err)
	assert.Zero(t, upd.MatchedCount)

	_, err = svc.SetRole(ctx, id, user.Role("root"))
	assert.ErrorIs(t, err, user.ErrInvalidRole)

	_, err = svc.SetRoleByEmail(ctx, "unknown@x.com", user.RoleAdmin)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestService_TeacherRequests(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	res, err := svc.Register(ctx, user.NewUser{Email: "jane@x.com"})
	require.NoError(t, err)

	ins, err := svc.RequestTeacherRole(ctx, user.NewTeacherRequest{
		Email:      "Jane@x.com",
		Title:      "Go",
		Category:   "programming",
		Experience: "beginner",
	})
	require.NoError(t, err)
	assert.True(t, ins.Acknowledged)

	req, err := svc.GetTeacherRequest(ctx, ins.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, user.RequestStatusPending, req.Status)
	assert.Equal(t, "jane@x.com", req.Email)

	del, err := svc.RejectTeacherRequest(ctx, ins.InsertedID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, del.DeletedCount)

	_, err = svc.GetTeacherRequest(ctx, ins.InsertedID)
	assert.ErrorIs(t, err, user.ErrRequestNotFound)

	_, err = svc.GetByID(ctx, *res.InsertedID)
	assert.NoError(t, err)
}

func TestNewUser_Validate(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name    string
		nu      user.NewUser
		wantErr bool
	}{
		{name: "valid", nu: user.NewUser{Name: "Jane", Email: "jane@x.com"}},
		{name: "valid with photo", nu: user.NewUser{Email: "jane@x.com", Photo: "https://i.ibb.co/x.png"}},
		{name: "missing email", nu: user.NewUser{Name: "Jane"}, wantErr: true},
		{name: "invalid email", nu: user.NewUser{Email: "jane"}, wantErr: true},
		{name: "invalid photo", nu: user.NewUser{Email: "jane@x.com", Photo: "x"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.nu.Validate(validate)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoleValidation(t *testing.T) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	type data struct {
		Role string `json:"role" validate:"role"`
	}

	assert.NoError(t, validate.Struct(data{Role: "admin"}))

	err := validate.Struct(data{Role: "root"})
	require.Error(t, err)
	var vErrs validator.ValidationErrors
	require.ErrorAs(t, err, &vErrs)
	assert.Equal(t, map[string]string{"role": "invalid role"}, core.TranslateErrors(vErrs, translator))
}
