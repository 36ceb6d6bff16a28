package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"

	echoapi "github.com/abovethehill/churchadmin/apps/api/echo"
	"github.com/abovethehill/churchadmin/core"
)

func Test_home(t *testing.T) {
	app, _ := setup(t)

	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
	}
	if want := "Welcome to the ChurchAdmin API!"; rec.Body.String() != want {
		t.Errorf("body = %q; want %q", rec.Body.String(), want)
	}
}

func Test_authApi_login(t *testing.T) {
	app, _ := setup(t)

	t.Run("wrong password", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/api/auth/login", []byte(`{"password": "nope"}`))
		env := do(t, app, req, rec, http.StatusUnauthorized)
		if env.Success {
			t.Error("success = true; want false")
		}
		if env.Message != "Invalid password" {
			t.Errorf("message = %q; want %q", env.Message, "Invalid password")
		}
	})

	t.Run("missing password", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/api/auth/login", []byte(`{}`))
		env := do(t, app, req, rec, http.StatusBadRequest)
		if flds := fieldErrors(t, env); flds["password"] != "this field is required" {
			t.Errorf("error.password = %q; want %q", flds["password"], "this field is required")
		}
	})

	t.Run("correct password", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/api/auth/login", []byte(`{"password": "`+adminPassword+`"}`))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		var res struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
			Token   string `json:"token"`
			User    struct {
				ID   string `json:"_id"`
				Role string `json:"role"`
			} `json:"user"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if !res.Success {
			t.Error("success = false; want true")
		}
		if res.Message != "Login successful" {
			t.Errorf("message = %q; want %q", res.Message, "Login successful")
		}
		if res.User.ID != core.Conf.Admin.ID || res.User.Role != "admin" {
			t.Errorf("user = %+v; want admin %s", res.User, core.Conf.Admin.ID)
		}

		// the token must be decodable and carry the admin identity
		claims := new(echoapi.Claims)
		_, err := jwt.ParseWithClaims(res.Token, claims, func(*jwt.Token) (interface{}, error) {
			return core.Conf.SecretKey, nil
		})
		if err != nil {
			t.Fatalf("parsing token: %v", err)
		}
		if claims.Subject != core.Conf.Admin.ID {
			t.Errorf("sub = %q; want %q", claims.Subject, core.Conf.Admin.ID)
		}
		if claims.Role != "admin" {
			t.Errorf("role = %q; want admin", claims.Role)
		}
		expIn := time.Until(time.Unix(claims.ExpiresAt, 0))
		if expIn < 23*time.Hour || expIn > 25*time.Hour {
			t.Errorf("token expires in %v; want ~%v", expIn, core.Conf.Server.JWTExpirationDelta)
		}
	})
}

func Test_api_requiresToken(t *testing.T) {
	app, _ := setup(t)

	tests := []struct {
		name     string
		token    string
		wantCode int
		wantMsg  string
	}{
		{name: "missing token", wantCode: http.StatusUnauthorized, wantMsg: "missing token"},
		{name: "garbage token", token: "lol.lol.lol", wantCode: http.StatusUnauthorized, wantMsg: "invalid token"},
		{name: "expired token", token: expiredToken(t), wantCode: http.StatusUnauthorized, wantMsg: "expired token"},
		{name: "wrong role", token: roleToken(t, "guest"), wantCode: http.StatusForbidden, wantMsg: "permission denied"},
		{name: "valid token", token: getToken(t), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/api/members", tt.token)
			env := do(t, app, req, rec, tt.wantCode)
			if tt.wantMsg != "" && env.Message != tt.wantMsg {
				t.Errorf("message = %q; want %q", env.Message, tt.wantMsg)
			}
		})
	}
}

func expiredToken(t *testing.T) string {
	t.Helper()

	claims := echoapi.NewAdminClaims(core.Conf)
	claims.IssuedAt = time.Now().Add(-48 * time.Hour).Unix()
	claims.ExpiresAt = time.Now().Add(-24 * time.Hour).Unix()
	token, err := echoapi.GenerateToken(claims, core.Conf.SecretKey)
	if err != nil {
		t.Fatalf("expiredToken(): %v", err)
	}
	return token
}

func roleToken(t *testing.T, role string) string {
	t.Helper()

	claims := echoapi.NewAdminClaims(core.Conf)
	claims.Role = role
	token, err := echoapi.GenerateToken(claims, core.Conf.SecretKey)
	if err != nil {
		t.Fatalf("roleToken(): %v", err)
	}
	return token
}
