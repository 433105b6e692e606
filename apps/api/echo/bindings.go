package echoapi

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/skillboost/core"
)

const (
	pageParam = "page"
	sizeParam = "size"

	errNotNonNegativeInt = "must be a non-negative integer"
	errPageOutOfRange    = "is out of range for this page size"
)

// bindPagination reads the page & size query params. Absent params are 0; a zero size means no limit.
func bindPagination(ctx echo.Context) (core.Pagination, error) {
	var p core.Pagination
	var flds []core.FieldError

	parse := func(name string, dst *int) {
		raw := strings.TrimSpace(ctx.QueryParam(name))
		if raw == "" {
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			flds = append(flds, core.FieldError{Field: name, Error: errNotNonNegativeInt})
			return
		}
		*dst = n
	}
	parse(pageParam, &p.Page)
	parse(sizeParam, &p.Size)

	// page*size is the number of items skipped and must fit in an int64
	if len(flds) == 0 && p.Size > 0 && int64(p.Page) > math.MaxInt64/int64(p.Size) {
		flds = append(flds, core.FieldError{Field: pageParam, Error: errPageOutOfRange})
	}

	if len(flds) > 0 {
		return core.Pagination{}, core.NewValidationError(nil, flds...)
	}
	return p, nil
}

// payload is a request body that cleans and validates itself.
type payload interface {
	Validate(validate *validator.Validate) error
}

func bindAndValidate(ctx echo.Context, data payload, validate *validator.Validate) error {
	if err := ctx.Bind(data); err != nil {
		return errors.Wrap(err, "binding request body")
	}
	return data.Validate(validate)
}
