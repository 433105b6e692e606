package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/skillboost/core/course"
)

// recordApi serves the append-only course records: assignments, submissions, reviews & classes.
type recordApi struct {
	svc      *course.Service
	validate *validator.Validate
}

func registerRecordAPI(g *echo.Group, svc *course.Service, validate *validator.Validate) {
	api := recordApi{
		svc:      svc,
		validate: validate,
	}

	g.GET("/assignments", api.queryAssignments)
	g.POST("/assignments", api.createAssignment)
	g.GET("/submission", api.querySubmissions)
	g.POST("/submission", api.submit)
	g.GET("/reviews", api.queryReviews)
	g.POST("/reviews", api.review)
	g.GET("/addClass", api.queryClasses)
	g.POST("/addClass", api.submitClass)
}

// Handlers

func (api *recordApi) queryAssignments(ctx echo.Context) error {
	items, err := api.svc.ListAssignments(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *recordApi) createAssignment(ctx echo.Context) error {
	var data course.NewAssignment
	if err := bindAndValidate(ctx, &data, api.validate); err != nil {
		return err
	}
	res, err := api.svc.CreateAssignment(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *recordApi) querySubmissions(ctx echo.Context) error {
	items, err := api.svc.ListSubmissions(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying submissions")
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *recordApi) submit(ctx echo.Context) error {
	var data course.NewSubmission
	if err := bindAndValidate(ctx, &data, api.validate); err != nil {
		return err
	}
	res, err := api.svc.Submit(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating submission")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *recordApi) queryReviews(ctx echo.Context) error {
	items, err := api.svc.ListReviews(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying reviews")
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *recordApi) review(ctx echo.Context) error {
	var data course.NewReview
	if err := bindAndValidate(ctx, &data, api.validate); err != nil {
		return err
	}
	res, err := api.svc.Review(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating review")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *recordApi) queryClasses(ctx echo.Context) error {
	items, err := api.svc.ListClasses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *recordApi) submitClass(ctx echo.Context) error {
	var data course.NewClass
	if err := bindAndValidate(ctx, &data, api.validate); err != nil {
		return err
	}
	res, err := api.svc.SubmitClass(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusOK, res)
}
