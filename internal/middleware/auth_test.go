package middleware

import (
	"net/http/httptest"
	"testing"

	"go-assetreport/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

func newAuthedApp(skipAuth bool) *fiber.App {
	app := fiber.New()
	app.Get("/org", AuthMiddleware(skipAuth), func(c *fiber.Ctx) error {
		return c.SendString(OrgID(c))
	})
	return app
}

func TestAuthMiddlewareInjectsOrgFromToken(t *testing.T) {
	utils.SetSecret("test-secret")
	app := newAuthedApp(false)

	token, err := utils.GenerateToken("user-1", "org-42")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest("GET", "/org", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	if got := string(body[:n]); got != "org-42" {
		t.Errorf("org id = %q, want org-42", got)
	}
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	utils.SetSecret("test-secret")
	app := newAuthedApp(false)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/org", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != fiber.StatusUnauthorized {
				t.Errorf("status = %d, want 401", resp.StatusCode)
			}
		})
	}
}

func TestAuthMiddlewareSkipAuthUsesDevOrg(t *testing.T) {
	app := newAuthedApp(true)

	req := httptest.NewRequest("GET", "/org", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	if got := string(body[:n]); got != "dev-org" {
		t.Errorf("org id = %q, want dev-org", got)
	}
}
