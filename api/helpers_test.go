package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// newTestAPI wires a full router against a throwaway sqlite file and local
// storage so handler tests run the real middleware chain
func newTestAPI(t *testing.T) *API {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()

	viper.Set("app.log_level", "error")
	viper.Set("jwt.secret", "api-test-secret")
	viper.Set("jwt.access_ttl", 15*time.Minute)
	viper.Set("jwt.refresh_ttl", 7*24*time.Hour)
	viper.Set("db.engine", "sqlite")
	viper.Set("db.path", filepath.Join(dir, "test.db"))
	viper.Set("storage.type", "local")
	viper.Set("storage.path", filepath.Join(dir, "uploads"))
	viper.Set("upload.max_size", int64(10<<20))

	a, err := NewRouter()
	require.NoError(t, err)

	return a
}

func doJSON(t *testing.T, a *API, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func doUpload(t *testing.T, a *API, name, content, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)

	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates a user and returns its token pair
func registerAndLogin(t *testing.T, a *API, userName, password string) (access, refresh string) {
	t.Helper()

	w := doJSON(t, a, http.MethodPost, "/api/auth/register", gin.H{
		"displayName": userName,
		"userName":    userName,
		"password":    password,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, a, http.MethodPost, "/api/auth/login", gin.H{
		"userName": userName,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp tokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.AccessToken, resp.RefreshToken
}
