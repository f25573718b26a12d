package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/kz_bookkeeping/internal/middleware"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// handlerSuite carries the router, tenant and actor shared by the handler suites.
type handlerSuite struct {
	suite.Suite
	router   *gin.Engine
	tenant   *gin.RouterGroup
	tenantID string
	userID   string
}

func (s *handlerSuite) setupRouter() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.AuthMiddleware(testJWTSecret))
	s.tenant = s.router.Group("/api/v1/tenants/:tenant_id")
	s.tenantID = uuid.NewString()
	s.userID = uuid.NewString()
}

// generateTestToken creates a signed JWT for userID.
func (s *handlerSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "kzbooks-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		s.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

// do sends an authenticated request to a path under the test tenant. A nil
// body sends no body at all.
func (s *handlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			s.Require().NoError(err)
			raw = string(b)
		}
		reader = bytes.NewReader([]byte(raw))
	}

	url := "/api/v1/tenants/" + s.tenantID + path
	var req *http.Request
	if reader != nil {
		req = httptest.NewRequest(method, url, reader)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+s.generateTestToken(s.userID))
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *handlerSuite) decode(w *httptest.ResponseRecorder, into any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), into), w.Body.String())
}
