package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Fatimata-sang/OC-S.F-Project10/internal/model"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/service"
	"github.com/Fatimata-sang/OC-S.F-Project10/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

// brokenTokenStore fails every lookup, standing in for an unreachable Redis.
type brokenTokenStore struct{}

func (brokenTokenStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetErr(errors.New("connection refused"))
	return cmd
}

func (brokenTokenStore) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	cmd.SetErr(errors.New("connection refused"))
	return cmd
}

// revokedTokenStore reports every key as present.
type revokedTokenStore struct{}

func (revokedTokenStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (revokedTokenStore) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(1)
	return cmd
}

func newAuthTestRouter(t *testing.T, store service.TokenStore) (*gin.Engine, string, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	user := &model.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Age: 30}
	require.NoError(t, db.Create(user).Error)

	token, _, err := jwt.GenerateToken(testSecret, user.ID, user.Username, 1)
	require.NoError(t, err)

	core, logs := observer.New(zap.ErrorLevel)
	r := gin.New()
	r.Use(AuthMiddleware(testSecret, db, service.NewTokenDenylist(store), zap.New(core)))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetCurrentUserID(c)})
	})
	return r, token, logs
}

func doAuthRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	r, token, _ := newAuthTestRouter(t, nil)
	w := doAuthRequest(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	r, token, _ := newAuthTestRouter(t, revokedTokenStore{})
	w := doAuthRequest(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token revoked")
}

// A denylist outage is a server fault, not a caller fault: the response is an
// opaque 500 and the cause goes to the log, never to the client.
func TestAuthMiddleware_DenylistFailure(t *testing.T) {
	r, token, logs := newAuthTestRouter(t, brokenTokenStore{})
	w := doAuthRequest(r, token)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
	assert.NotContains(t, w.Body.String(), "revoked")
	assert.NotContains(t, w.Body.String(), "connection refused")

	entries := logs.FilterMessage("token denylist lookup").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	r, _, _ := newAuthTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
