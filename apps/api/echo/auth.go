package echoapi

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/abovethehill/churchadmin/core"
)

const (
	roleAdmin = "admin"

	claimsContextKey = "adminToken"
)

var (
	errInvalidPassword = echo.NewHTTPError(http.StatusUnauthorized, "Invalid password")
	errMissingToken    = echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	errExpiredToken    = echo.NewHTTPError(http.StatusUnauthorized, "expired token")
	errInvalidToken    = echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	errForbidden       = echo.NewHTTPError(http.StatusForbidden, "permission denied")
)

type Claims struct {
	jwt.StandardClaims
	Role string `json:"role"`
}

// configureAuth returns the JWT middleware guarding the /api group.
func configureAuth(conf *core.Config) echo.MiddlewareFunc {
	return middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey:    conf.SecretKey,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    claimsContextKey,
		Claims:        &Claims{},
		ErrorHandler:  jwtErrorHandler,
	})
}

// jwtErrorHandler normalizes JWT middleware failures: any bad or absent
// credential is a 401, never a 400.
func jwtErrorHandler(err error) error {
	if err == middleware.ErrJWTMissing {
		return errMissingToken
	}
	if vErr, ok := err.(*jwt.ValidationError); ok && vErr.Errors&jwt.ValidationErrorExpired != 0 {
		return errExpiredToken
	}
	return errInvalidToken
}

// authorizeRoles only lets through tokens carrying one of the given roles.
func authorizeRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims := getContextClaims(ctx)
			if claims == nil {
				return errInvalidToken
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(ctx)
				}
			}
			return errForbidden
		}
	}
}

func getContextClaims(ctx echo.Context) *Claims {
	token, ok := ctx.Get(claimsContextKey).(*jwt.Token)
	if !ok {
		return nil
	}
	claims, _ := token.Claims.(*Claims)
	return claims
}

// NewAdminClaims builds the claim set placed in issued tokens. There is a
// single admin identity; its ID is the subject.
func NewAdminClaims(conf *core.Config) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   conf.Admin.ID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
		},
		Role: roleAdmin,
	}
}

func GenerateToken(claims *Claims, secretKey []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// checkAdminPassword prefers the bcrypt hash when one is configured and only
// falls back to a constant-time plain comparison for local setups.
func checkAdminPassword(conf *core.Config, password string) bool {
	if hash := conf.Admin.PasswordHash; hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	if conf.Admin.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(conf.Admin.Password), []byte(password)) == 1
}
