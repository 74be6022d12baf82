// File: tests/integration/setup_test.go
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"profilehub_backend/internal/account"
	"profilehub_backend/internal/config"
	"profilehub_backend/internal/middleware"
	"profilehub_backend/internal/shared"
	"profilehub_backend/internal/user"
)

const testSchema = `
CREATE TABLE users (
    id TEXT PRIMARY KEY,
    user_name TEXT NOT NULL,
    email TEXT NOT NULL,
    password TEXT,
    is_admin BOOLEAN NOT NULL DEFAULT 0,
    is_verified BOOLEAN NOT NULL DEFAULT 0,
    verification_code TEXT,
    created_at DATETIME,
    updated_at DATETIME,
    CONSTRAINT users_email_key UNIQUE (email),
    CONSTRAINT users_user_name_key UNIQUE (user_name)
);
CREATE TABLE user_info (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    first_name TEXT NOT NULL,
    last_name TEXT,
    bio TEXT,
    profile_picture TEXT,
    dob DATE,
    country TEXT,
    created_at DATETIME,
    updated_at DATETIME,
    CONSTRAINT user_info_user_id_key UNIQUE (user_id),
    FOREIGN KEY (user_id) REFERENCES users (id)
);
`

// stubIdentity verifies tokens against a fixed map and records deletions.
type stubIdentity struct {
	tokens    map[string]string // bearer token -> provider uid
	deleted   []string
	deleteErr error
}

func (s *stubIdentity) VerifyIDToken(_ context.Context, idToken string) (*firebaseauth.Token, error) {
	uid, ok := s.tokens[idToken]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return &firebaseauth.Token{UID: uid}, nil
}

func (s *stubIdentity) DeleteAccount(_ context.Context, uid string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, uid)
	return nil
}

// stubMedia records upload calls and returns a canned asset.
type stubMedia struct {
	uploads   []string // file names as received
	uploadErr error
	url       string
}

func (s *stubMedia) Upload(_ context.Context, file io.Reader, fileName string) (*shared.MediaAsset, error) {
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	if _, err := io.Copy(io.Discard, file); err != nil {
		return nil, err
	}
	s.uploads = append(s.uploads, fileName)
	return &shared.MediaAsset{URL: s.url, FileID: "file-1", Name: fileName}, nil
}

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	repo     user.Repository
	identity *stubIdentity
	media    *stubMedia
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to open test database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec(testSchema).Error, "failed to create test schema")

	ident := &stubIdentity{tokens: map[string]string{}}
	med := &stubMedia{url: "https://ik.example.com/profile-pictures/uid-1"}

	repo := user.NewGORMRepository(db)
	userService := user.NewService(repo, &config.Config{}, logger)
	userHandler := user.NewHandler(userService, logger)
	accountService := account.NewService(repo, ident, med, logger)
	accountHandler := account.NewHandler(accountService, logger)

	router := gin.New()
	router.Use(middleware.ErrorHandler(logger))
	authMW := middleware.AuthMiddleware(ident, logger)
	api := router.Group("/api")
	userHandler.RegisterRoutes(api, authMW)
	accountHandler.RegisterRoutes(api, authMW)

	return &testEnv{router: router, db: db, repo: repo, identity: ident, media: med}
}

// seedUser inserts an identity record and returns a bearer token for it.
func (env *testEnv) seedUser(t *testing.T, uid, userName, email string) string {
	t.Helper()
	require.NoError(t, env.repo.Create(context.Background(), &user.User{
		ID:       uid,
		UserName: userName,
		Email:    email,
	}))
	token := "token-" + uid
	env.identity.tokens[token] = uid
	return token
}

type envelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Action  string         `json:"action"`
	URL     string         `json:"url"`
	Data    map[string]any `json:"data"`
}

func (env *testEnv) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	var body envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body),
			"response was not the expected envelope: %s", rec.Body.String())
	}
	return rec, body
}

// onboardingBody builds a multipart body for the onboarding endpoint.
// imageType of "" omits the file part.
func onboardingBody(t *testing.T, fields map[string]string, imageType string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, mw.WriteField(name, value))
	}
	if imageType != "" {
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{`form-data; name="profileImage"; filename="avatar.png"`}
		header["Content-Type"] = []string{imageType}
		fw, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func postOnboarding(t *testing.T, token string, fields map[string]string, imageType string) *http.Request {
	t.Helper()
	body, contentType := onboardingBody(t, fields, imageType)
	req := httptest.NewRequest(http.MethodPost, "/api/account/onboarding-user", body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func validFields() map[string]string {
	return map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"bio":       "First programmer.",
		"dob":       "1815-12-10",
		"country":   "UK",
	}
}
