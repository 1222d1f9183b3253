package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Fatimata-sang/OC-S.F-Project10/internal/authz"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/handler"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/model"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/router"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "e2e-secret"

// memoryTokenStore backs the denylist in tests the way Redis does in
// production.
type memoryTokenStore struct {
	mu   sync.Mutex
	keys map[string]time.Time
}

func (m *memoryTokenStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	m.keys[key] = time.Now().Add(expiration)
	m.mu.Unlock()
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (m *memoryTokenStore) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	m.mu.Lock()
	for _, k := range keys {
		if expireAt, ok := m.keys[k]; ok && time.Now().Before(expireAt) {
			n++
		}
	}
	m.mu.Unlock()
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(n)
	return cmd
}

func newTestApp(t *testing.T) http.Handler {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Contributor{},
		&model.Issue{},
		&model.Comment{},
	))

	zlog := zap.NewNop()
	denylist := service.NewTokenDenylist(&memoryTokenStore{keys: make(map[string]time.Time)})
	graph := authz.NewGraph(db)
	engine := authz.NewEngine(graph)

	authService := service.NewAuthService(db, denylist, testSecret, 1)
	userService := service.NewUserService(db)
	projectService := service.NewProjectService(db, engine)
	contributorService := service.NewContributorService(db, engine)
	issueService := service.NewIssueService(db, graph, engine)
	commentService := service.NewCommentService(db, engine, "http://test")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	router.Setup(r, router.Deps{
		DB:                 db,
		Logger:             zlog,
		JWTSecret:          testSecret,
		Denylist:           denylist,
		AuthHandler:        handler.NewAuthHandler(authService, zlog),
		UserHandler:        handler.NewUserHandler(userService, zlog),
		ProjectHandler:     handler.NewProjectHandler(projectService, zlog),
		ContributorHandler: handler.NewContributorHandler(contributorService, zlog),
		IssueHandler:       handler.NewIssueHandler(issueService, zlog),
		CommentHandler:     handler.NewCommentHandler(commentService, zlog),
	})
	return r
}

func do(t *testing.T, app http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func signup(t *testing.T, app http.Handler, username string) {
	t.Helper()
	w := do(t, app, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"username": username,
		"password": "secretpass",
		"age":      30,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func login(t *testing.T, app http.Handler, username string) (string, uint) {
	t.Helper()
	w := do(t, app, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": username,
		"password": "secretpass",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeData(t, w)
	token := data["token"].(string)
	user := data["user"].(map[string]interface{})
	return token, uint(user["id"].(float64))
}

func TestSignupValidation(t *testing.T) {
	app := newTestApp(t)

	w := do(t, app, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"username": "kid", "password": "secretpass", "age": 15,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"age"`)

	w = do(t, app, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"username": "ok", "password": "secretpass", "age": 16,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestMissingTokenUnauthorized(t *testing.T) {
	app := newTestApp(t)

	w := do(t, app, http.MethodGet, "/api/v1/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, app, http.MethodGet, "/api/v1/projects", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Full lifecycle: A creates a project and adds B; B files an issue only B may
// mutate; A still owns the project and its deletion cascades.
func TestProjectIssueLifecycle(t *testing.T) {
	app := newTestApp(t)

	signup(t, app, "alice")
	signup(t, app, "bob")
	signup(t, app, "eve")
	aliceToken, _ := login(t, app, "alice")
	bobToken, bobID := login(t, app, "bob")
	eveToken, _ := login(t, app, "eve")

	// Alice creates a project.
	w := do(t, app, http.MethodPost, "/api/v1/projects", aliceToken, gin.H{
		"name": "tracker", "type": "backend", "description": "issue tracker",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	projectID := uint(decodeData(t, w)["id"].(float64))
	base := fmt.Sprintf("/api/v1/projects/%d", projectID)

	// Eve is not a member and may not see it.
	w = do(t, app, http.MethodGet, base, eveToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Bob cannot add himself; Alice can add Bob.
	w = do(t, app, http.MethodPost, base+"/contributors", bobToken, gin.H{"user_id": bobID})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = do(t, app, http.MethodPost, base+"/contributors", aliceToken, gin.H{"user_id": bobID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Adding Bob twice is a conflict.
	w = do(t, app, http.MethodPost, base+"/contributors", aliceToken, gin.H{"user_id": bobID})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Bob files an issue; a spoofed author_id in the payload is ignored.
	w = do(t, app, http.MethodPost, base+"/issues", bobToken, gin.H{
		"title": "crash on login", "tag": "bug", "priority": "high",
		"author_id": 9999,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	issueData := decodeData(t, w)
	issueID := uint(issueData["id"].(float64))
	assert.EqualValues(t, bobID, issueData["author_id"].(float64))
	issuePath := fmt.Sprintf("%s/issues/%d", base, issueID)

	// Only the author may change the status: Alice owns the project but did
	// not write the issue.
	w = do(t, app, http.MethodPut, issuePath, aliceToken, gin.H{"status": "in_progress"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = do(t, app, http.MethodPut, issuePath, bobToken, gin.H{"status": "in_progress"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Alice comments; Bob, who wrote no comments, can still list them.
	w = do(t, app, http.MethodPost, issuePath+"/comments", aliceToken, gin.H{"body": "looking into it"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = do(t, app, http.MethodGet, issuePath+"/comments", bobToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Alice deletes the project; the issue is gone with it.
	w = do(t, app, http.MethodDelete, base, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = do(t, app, http.MethodGet, issuePath, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	app := newTestApp(t)

	signup(t, app, "alice")
	aliceToken, _ := login(t, app, "alice")

	w := do(t, app, http.MethodGet, "/api/v1/auth/me", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, app, http.MethodPost, "/api/v1/auth/logout", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The token is dead for every authenticated route from now on.
	w = do(t, app, http.MethodGet, "/api/v1/auth/me", aliceToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token revoked")

	w = do(t, app, http.MethodGet, "/api/v1/projects", aliceToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserSelfAccessOnly(t *testing.T) {
	app := newTestApp(t)

	signup(t, app, "alice")
	signup(t, app, "bob")
	aliceToken, aliceID := login(t, app, "alice")
	_, bobID := login(t, app, "bob")

	w := do(t, app, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", aliceID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, app, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", bobID), aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
