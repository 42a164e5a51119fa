package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/docspot/docspot-api/internal/utils"
)

type fakeDenylist struct {
	revoked map[string]bool
}

func (d *fakeDenylist) IsRevoked(_ context.Context, token string) bool {
	return d.revoked[token]
}

func newGateRouter(role string, denylist Denylist) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded", RequireRole(role, denylist), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID"), "userRole": c.GetString("userRole")})
	})
	return r
}

func doRequest(t *testing.T, r *gin.Engine, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRoleMatrix(t *testing.T) {
	utils.InitJWT("gate-test-secret")

	adminToken, err := utils.GenerateJWT("64a0c1f2e3b4d5a6f7089b10", "admin")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	patientToken, err := utils.GenerateJWT("64a0c1f2e3b4d5a6f7089b11", "patient")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	cases := []struct {
		name     string
		gateRole string
		cookie   string
		want     int
	}{
		{name: "missing cookie", gateRole: "admin", cookie: "", want: http.StatusUnauthorized},
		{name: "garbage token", gateRole: "admin", cookie: "garbage", want: http.StatusBadRequest},
		{name: "role mismatch", gateRole: "admin", cookie: patientToken, want: http.StatusForbidden},
		{name: "role match", gateRole: "admin", cookie: adminToken, want: http.StatusOK},
		{name: "any role accepts admin", gateRole: "", cookie: adminToken, want: http.StatusOK},
		{name: "any role accepts patient", gateRole: "", cookie: patientToken, want: http.StatusOK},
		{name: "any role still needs session", gateRole: "", cookie: "", want: http.StatusUnauthorized},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := doRequest(t, newGateRouter(c.gateRole, nil), c.cookie)
			if w.Code != c.want {
				t.Fatalf("got %d, want %d (body %s)", w.Code, c.want, w.Body.String())
			}
		})
	}
}

func TestRequireRoleExpiredSignature(t *testing.T) {
	utils.InitJWT("old-secret")
	token, err := utils.GenerateJWT("64a0c1f2e3b4d5a6f7089b10", "admin")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	// Rotating the secret invalidates outstanding tokens.
	utils.InitJWT("new-secret")
	w := doRequest(t, newGateRouter("admin", nil), token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", w.Code)
	}
}

func TestRequireRoleDenylist(t *testing.T) {
	utils.InitJWT("gate-test-secret")
	token, err := utils.GenerateJWT("64a0c1f2e3b4d5a6f7089b10", "admin")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	denylist := &fakeDenylist{revoked: map[string]bool{token: true}}
	w := doRequest(t, newGateRouter("admin", denylist), token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("revoked token: got %d, want 400", w.Code)
	}

	denylist.revoked[token] = false
	w = doRequest(t, newGateRouter("admin", denylist), token)
	if w.Code != http.StatusOK {
		t.Fatalf("live token: got %d, want 200", w.Code)
	}
}

func TestRequireRolePrincipalInContext(t *testing.T) {
	utils.InitJWT("gate-test-secret")
	token, err := utils.GenerateJWT("64a0c1f2e3b4d5a6f7089b10", "doctor")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	w := doRequest(t, newGateRouter("doctor", nil), token)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "64a0c1f2e3b4d5a6f7089b10") {
		t.Errorf("expected principal id in context, body: %s", body)
	}
	if !strings.Contains(body, "doctor") {
		t.Errorf("expected role in context, body: %s", body)
	}
}
