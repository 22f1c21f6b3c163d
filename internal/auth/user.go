package auth

import (
	"net/http"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"cultofdrive/internal/errors"
)

const claimsContextKey = "auth_claims"

// OptionalUser verifies a bearer token when one is sent and stores its claims on the
// context. Requests without a token pass through anonymously; invalid tokens get 401.
func OptionalUser(svc *JWTService) echo.MiddlewareFunc {
	if !svc.Enabled() {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: claimsContextKey,
		Skipper: func(c echo.Context) bool {
			return c.Request().Header.Get(echo.HeaderAuthorization) == ""
		},
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return svc.ValidateToken(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrUnauthorized.Error())
		},
	})
}

// CurrentClaims returns the verified claims, or nil for anonymous requests.
func CurrentClaims(c echo.Context) *Claims {
	claims, _ := c.Get(claimsContextKey).(*Claims)
	return claims
}

// ActingUser resolves who is performing a request. A verified token wins, and a
// different user id claimed in the request is rejected. Without a token the claimed
// id is trusted.
func ActingUser(c echo.Context, claimed string) (uuid.UUID, error) {
	if claims := CurrentClaims(c); claims != nil {
		id, err := claims.UserID()
		if err != nil {
			return uuid.Nil, errors.ErrUnauthorized
		}
		if claimed != "" {
			claimedID, err := uuid.Parse(claimed)
			if err != nil || claimedID != id {
				return uuid.Nil, errors.ErrUnauthorized
			}
		}
		return id, nil
	}

	if claimed == "" {
		return uuid.Nil, errors.Invalid("user_id is required")
	}
	id, err := uuid.Parse(claimed)
	if err != nil {
		return uuid.Nil, errors.Invalid("Invalid user_id")
	}
	return id, nil
}
