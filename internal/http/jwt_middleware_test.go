package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"induk-agents/internal/service"
)

func protectedEngine(jwtSvc *service.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", OperatorAuthMiddleware(zap.NewNop(), jwtSvc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"operator": operatorID(c)})
	})
	return r
}

func getWithAuth(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestOperatorAuthMiddleware_StoresOperatorID(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", 15*time.Minute)
	token, err := jwtSvc.GenerateAccessToken("op-1")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	rec := getWithAuth(protectedEngine(jwtSvc), "bearer "+token.AccessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"operator":"op-1"}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestOperatorAuthMiddleware_Rejects(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", 15*time.Minute)
	foreign, err := service.NewJWTService("other-secret", 15*time.Minute).GenerateAccessToken("op-1")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	expiredClaims := service.Claims{
		OperatorID: "op-1",
		TokenType:  "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "op-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	cases := []struct {
		name   string
		header string
		body   string
	}{
		{name: "missing header", header: "", body: `{"error":"missing bearer token"}`},
		{name: "wrong scheme", header: "Basic abc", body: `{"error":"missing bearer token"}`},
		{name: "empty bearer", header: "Bearer   ", body: `{"error":"missing bearer token"}`},
		{name: "foreign signature", header: "Bearer " + foreign.AccessToken, body: `{"error":"invalid token"}`},
		{name: "expired", header: "Bearer " + expired, body: `{"error":"token expired"}`},
	}

	r := protectedEngine(jwtSvc)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := getWithAuth(r, tc.header)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if rec.Body.String() != tc.body {
				t.Fatalf("expected body %s, got %s", tc.body, rec.Body.String())
			}
		})
	}
}
