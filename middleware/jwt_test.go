package middleware

import (
	"bitwise74/drive-api/model"
	"bitwise74/drive-api/security"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testSecret = []byte("middleware-test-secret")

func newTestRouter(t *testing.T, accessTTL time.Duration) (*gin.Engine, *gorm.DB, *security.Tokens) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.User{}))

	tokens := security.NewTokens(testSecret, accessTTL)

	router := gin.New()
	router.Use(NewRequestIDMiddleware(), NewJWTMiddleware(db, tokens))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.MustGet("userID")})
	})

	return router, db, tokens
}

func createTestUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()

	user := model.User{
		DisplayName:  "Alice",
		UserName:     "alice",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	router, db, tokens := newTestRouter(t, 15*time.Minute)
	user := createTestUser(t, db)

	token, err := tokens.IssueAccessToken(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userID":1`)
}

func TestJWTMiddleware_Rejections(t *testing.T) {
	router, db, tokens := newTestRouter(t, 15*time.Minute)
	user := createTestUser(t, db)

	expired := security.NewTokens(testSecret, -time.Second)
	expiredToken, err := expired.IssueAccessToken(user.ID)
	require.NoError(t, err)

	foreign := security.NewTokens([]byte("some-other-service-secret!!!"), 15*time.Minute)
	foreignToken, err := foreign.IssueAccessToken(user.ID)
	require.NoError(t, err)

	validToken, err := tokens.IssueAccessToken(user.ID)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic YWxpY2U6c2VjcmV0"},
		{"scheme only", "Bearer"},
		{"blank token", "Bearer   "},
		{"garbage token", "Bearer not-a-jwt"},
		{"expired token", "Bearer " + expiredToken},
		{"foreign signature", "Bearer " + foreignToken},
		{"token without scheme", validToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			// Every failure mode is the same 401 with a bearer challenge
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestJWTMiddleware_DeletedUser(t *testing.T) {
	router, db, tokens := newTestRouter(t, 15*time.Minute)
	user := createTestUser(t, db)

	token, err := tokens.IssueAccessToken(user.ID)
	require.NoError(t, err)

	// The token outlives its subject
	require.NoError(t, db.Delete(&model.User{}, user.ID).Error)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}
