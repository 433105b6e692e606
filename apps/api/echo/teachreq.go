package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/skillboost/core/user"
)

type teacherRequestApi struct {
	svc      *user.Service
	validate *validator.Validate
}

func registerTeacherRequestAPI(
	g *echo.Group,
	adminOnly []echo.MiddlewareFunc,
	svc *user.Service,
	validate *validator.Validate,
) {
	api := teacherRequestApi{
		svc:      svc,
		validate: validate,
	}

	tg := g.Group("/teachReq")
	tg.GET("", api.query)
	tg.POST("", api.create)

	// admin endpoints
	tg.GET("/admin/:id", api.retrieve, adminOnly...)
	tg.DELETE("/admin/:id", api.reject, adminOnly...)
}

// Handlers

func (api *teacherRequestApi) query(ctx echo.Context) error {
	reqs, err := api.svc.QueryTeacherRequests(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying teacher requests")
	}
	return ctx.JSON(http.StatusOK, reqs)
}

func (api *teacherRequestApi) create(ctx echo.Context) error {
	var data user.NewTeacherRequest
	if err := bindAndValidate(ctx, &data, api.validate); err != nil {
		return err
	}

	res, err := api.svc.RequestTeacherRole(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating teacher request")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *teacherRequestApi) retrieve(ctx echo.Context) error {
	req, err := api.svc.GetTeacherRequest(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, user.ErrRequestNotFound) {
			return ctx.JSON(http.StatusOK, nil)
		}
		return errors.Wrap(err, "getting teacher request")
	}
	return ctx.JSON(http.StatusOK, req)
}

// reject deletes the request; the requesting user is not touched.
func (api *teacherRequestApi) reject(ctx echo.Context) error {
	res, err := api.svc.RejectTeacherRequest(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "deleting teacher request")
	}
	return ctx.JSON(http.StatusOK, res)
}
