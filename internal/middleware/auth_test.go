package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/ABeGood/klim-fit/pkg/utils"
)

const testSecret = "test-secret"

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", AuthRequired(testSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("user_id"),
			"role":    c.Locals("role"),
		})
	})
	app.Get("/admin", AuthRequired(testSecret), AdminRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func request(t *testing.T, app *fiber.App, target, authHeader string) int {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("GET %s: %v", target, err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestAuthRequiredMissingHeader(t *testing.T) {
	app := protectedApp()

	if status := request(t, app, "/protected", ""); status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
}

func TestAuthRequiredMalformedHeader(t *testing.T) {
	app := protectedApp()

	for _, header := range []string{"garbage", "Basic abc", "Bearer"} {
		if status := request(t, app, "/protected", header); status != fiber.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, status)
		}
	}
}

func TestAuthRequiredInvalidToken(t *testing.T) {
	app := protectedApp()

	if status := request(t, app, "/protected", "Bearer not-a-token"); status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
}

func TestAuthRequiredRejectsWrongSecret(t *testing.T) {
	app := protectedApp()

	token, err := utils.GenerateToken("1", "user", "other-secret")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if status := request(t, app, "/protected", "Bearer "+token); status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
}

func TestAuthRequiredSetsClaims(t *testing.T) {
	app := protectedApp()

	token, err := utils.GenerateToken("7", "user", testSecret)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if status := request(t, app, "/protected", "Bearer "+token); status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
}

func TestAdminRequiredRejectsUserToken(t *testing.T) {
	app := protectedApp()

	token, err := utils.GenerateToken("7", "user", testSecret)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if status := request(t, app, "/admin", "Bearer "+token); status != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", status)
	}
}

func TestAdminRequiredAllowsAdminToken(t *testing.T) {
	app := protectedApp()

	token, err := utils.GenerateToken("1", "admin", testSecret)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if status := request(t, app, "/admin", "Bearer "+token); status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
}
