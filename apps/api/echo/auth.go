package echoapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/skillboost/core"
	"github.com/trezcool/skillboost/core/auth"
	"github.com/trezcool/skillboost/core/user"
)

const bearerScheme = "Bearer"

type roleResolver interface {
	ResolveRole(ctx context.Context, email string) (user.Role, error)
}

// authMiddleware requires a valid bearer token and stores its claims in the request context.
func authMiddleware(tokens *auth.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			scheme, token, ok := strings.Cut(ctx.Request().Header.Get(echo.HeaderAuthorization), " ")
			if !ok || !strings.EqualFold(scheme, bearerScheme) || token == "" {
				return errUnauthorized
			}
			claims, err := tokens.Verify(strings.TrimSpace(token))
			if err != nil {
				return errUnauthorized
			}

			req := ctx.Request()
			ctx.SetRequest(req.WithContext(auth.NewContext(req.Context(), claims)))
			return next(ctx)
		}
	}
}

// selfMiddleware only lets through requests whose token email equals the unescaped email path param.
// The comparison is exact; issued tokens carry lower-cased emails.
// Must run after authMiddleware.
func selfMiddleware(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			email, err := url.PathUnescape(ctx.Param(param))
			if err != nil || email != claims.Email {
				return errForbidden
			}
			return next(ctx)
		}
	}
}

// adminMiddleware resolves the role of the token's email on every request.
// Must run after authMiddleware.
func adminMiddleware(resolver roleResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			role, err := resolver.ResolveRole(ctx.Request().Context(), claims.Email)
			if err != nil {
				return errors.Wrap(err, "resolving role")
			}
			if role != user.RoleAdmin {
				return errForbidden
			}
			return next(ctx)
		}
	}
}

// emailParam returns the normalized email path param.
func emailParam(ctx echo.Context, param string) (string, error) {
	email, err := url.PathUnescape(ctx.Param(param))
	return core.CleanEmail(email), err
}

func getContextClaims(ctx echo.Context) (auth.Claims, error) {
	if claims, ok := auth.FromContext(ctx.Request().Context()); ok {
		return claims, nil
	}
	return auth.Claims{}, errUnauthorized
}

type (
	tokenRequest struct {
		Email string                 `json:"email" validate:"required,email"`
		Data  map[string]interface{} `json:"-"`
	}

	tokenResponse struct {
		Token string `json:"token"`
	}
)

type tokenApi struct {
	tokens   *auth.TokenService
	validate *validator.Validate
}

func registerTokenAPI(g *echo.Group, tokens *auth.TokenService, validate *validator.Validate) {
	api := tokenApi{tokens: tokens, validate: validate}
	g.POST("/jwt", api.issue)
}

// issue signs a token for the posted claims. Fields other than email are kept as extra data.
func (api *tokenApi) issue(ctx echo.Context) error {
	body := make(echo.Map)
	if err := ctx.Bind(&body); err != nil {
		return errors.Wrap(err, "binding token claims")
	}

	var data tokenRequest
	if email, ok := body["email"].(string); ok {
		data.Email = core.CleanEmail(email)
	}
	delete(body, "email")
	if len(body) > 0 {
		data.Data = body
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	token, err := api.tokens.Issue(auth.Claims{Email: data.Email, Data: data.Data})
	if err != nil {
		return errors.Wrap(err, "issuing token")
	}
	return ctx.JSON(http.StatusOK, tokenResponse{Token: token})
}
