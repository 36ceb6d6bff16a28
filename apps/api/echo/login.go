package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/abovethehill/churchadmin/core"
)

type (
	authApi struct {
		conf *core.Config
	}

	LoginRequest struct {
		Password string `json:"password" validate:"required"`
	}

	loginUser struct {
		ID   string `json:"_id"`
		Role string `json:"role"`
	}

	loginResponse struct {
		Success bool      `json:"success"`
		Message string    `json:"message"`
		Token   string    `json:"token"`
		User    loginUser `json:"user"`
	}
)

func (r *LoginRequest) Validate() error {
	return core.Validate.Struct(r)
}

func registerAuthAPI(g *echo.Group, conf *core.Config) {
	api := authApi{conf: conf}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
}

// login exchanges the admin password for a signed token. There is exactly one
// account; no username is asked for.
func (api *authApi) login(ctx echo.Context) error {
	data := new(LoginRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if !checkAdminPassword(api.conf, data.Password) {
		return errInvalidPassword
	}

	claims := NewAdminClaims(api.conf)
	token, err := GenerateToken(claims, api.conf.SecretKey)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, loginResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    loginUser{ID: api.conf.Admin.ID, Role: claims.Role},
	})
}
