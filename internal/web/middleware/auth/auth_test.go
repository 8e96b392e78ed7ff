package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sciencemesh/sciencemesh-admin/internal/db/models"
	"github.com/sciencemesh/sciencemesh-admin/internal/web/session"
)

func newSession(t *testing.T, u models.User) string {
	t.Helper()

	id, err := session.GenerateSessionID()
	require.NoError(t, err)
	require.NoError(t, (&session.Data{User: u}).Write(id, time.Minute))

	return id
}

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/admin", RequireAdmin, func(c *fiber.Ctx) error {
		u, _ := CurrentUser(c)
		return c.SendString(u.Username)
	})
	app.Post("/save", RequireLogin, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	return app
}

func TestGuards(t *testing.T) {
	session.Init(nil)

	adminID := newSession(t, models.User{ID: 1, Username: "root", Active: true, Admin: true})
	userID := newSession(t, models.User{ID: 2, Username: "jane", Active: true})
	inactiveID := newSession(t, models.User{ID: 3, Username: "gone", Active: false, Admin: true})

	tests := []struct {
		name       string
		method     string
		path       string
		cookie     string
		wantStatus int
		wantBody   string
	}{
		{name: "admin page anonymous", method: http.MethodGet, path: "/admin", wantStatus: fiber.StatusFound},
		{name: "admin page unknown session", method: http.MethodGet, path: "/admin", cookie: "nope", wantStatus: fiber.StatusFound},
		{name: "admin page plain user", method: http.MethodGet, path: "/admin", cookie: userID, wantStatus: fiber.StatusForbidden},
		{name: "admin page inactive admin", method: http.MethodGet, path: "/admin", cookie: inactiveID, wantStatus: fiber.StatusFound},
		{name: "admin page admin", method: http.MethodGet, path: "/admin", cookie: adminID, wantStatus: fiber.StatusOK, wantBody: "root"},
		{name: "save anonymous", method: http.MethodPost, path: "/save", wantStatus: fiber.StatusUnauthorized},
		{name: "save plain user", method: http.MethodPost, path: "/save", cookie: userID, wantStatus: fiber.StatusNoContent},
		{name: "save admin", method: http.MethodPost, path: "/save", cookie: adminID, wantStatus: fiber.StatusNoContent},
	}

	app := newTestApp()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: session.CookieName, Value: tt.cookie})
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() {
				_ = resp.Body.Close()
			}()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == fiber.StatusFound {
				assert.Equal(t, LoginPath, resp.Header.Get(fiber.HeaderLocation))
			}

			if tt.wantBody != "" {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, tt.wantBody, string(body))
			}
		})
	}
}
