package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/skillboost/core/user"
)

type (
	adminResponse struct {
		Admin bool `json:"admin"`
	}

	teacherResponse struct {
		Teacher bool `json:"teacher"`
	}
)

type userApi struct {
	svc      *user.Service
	validate *validator.Validate
}

func registerUserAPI(
	g *echo.Group,
	authed echo.MiddlewareFunc,
	adminOnly []echo.MiddlewareFunc,
	svc *user.Service,
	validate *validator.Validate,
) {
	api := userApi{
		svc:      svc,
		validate: validate,
	}

	ug := g.Group("/users")

	// un-authed endpoints
	ug.POST("", api.register)

	// authed endpoints
	ug.GET("", api.query, authed)
	ug.GET("/admin/:email", api.isAdmin, authed, selfMiddleware("email"))
	ug.GET("/teacher/:email", api.isTeacher, authed, selfMiddleware("email"))

	// admin endpoints
	ug.PATCH("/teacher/:id", api.promoteToTeacher, adminOnly...)
	ug.PATCH("/admin/:id", api.promoteToAdmin, adminOnly...)
}

// Handlers

func (api *userApi) register(ctx echo.Context) error {
	var data user.NewUser
	if err := bindAndValidate(ctx, &data, api.validate); err != nil {
		return err
	}

	res, err := api.svc.Register(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering user")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *userApi) query(ctx echo.Context) error {
	users, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) isAdmin(ctx echo.Context) error {
	email, err := emailParam(ctx, "email")
	if err != nil {
		return errForbidden
	}
	ok, err := api.svc.IsAdmin(ctx.Request().Context(), email)
	if err != nil {
		return errors.Wrap(err, "checking admin role")
	}
	return ctx.JSON(http.StatusOK, adminResponse{Admin: ok})
}

func (api *userApi) isTeacher(ctx echo.Context) error {
	email, err := emailParam(ctx, "email")
	if err != nil {
		return errForbidden
	}
	ok, err := api.svc.IsTeacher(ctx.Request().Context(), email)
	if err != nil {
		return errors.Wrap(err, "checking teacher role")
	}
	return ctx.JSON(http.StatusOK, teacherResponse{Teacher: ok})
}

func (api *userApi) promoteToTeacher(ctx echo.Context) error {
	res, err := api.svc.PromoteToTeacher(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "promoting user to teacher")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *userApi) promoteToAdmin(ctx echo.Context) error {
	res, err := api.svc.PromoteToAdmin(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "promoting user to admin")
	}
	return ctx.JSON(http.StatusOK, res)
}
