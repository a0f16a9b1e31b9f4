package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gofiber/fiber/v2"

	"mesa/internal/config"
	"mesa/internal/database"
	"mesa/internal/models"
	"mesa/internal/recommend"
	"mesa/internal/repository"
	"mesa/internal/service"
)

type testEnv struct {
	server *Server
	app    *fiber.App
	users  *repository.Users
	groups *repository.Groups
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	fs := afero.NewMemMapFs()
	users := repository.NewUsers(fs, "data")
	posts := repository.NewPosts(fs, "data")
	friends := repository.NewFriends(fs, "data")
	groups := repository.NewGroups(fs, "data")

	db, err := database.ConnectInMemory()
	require.NoError(t, err)

	cfg := &config.Config{
		AppEnv:    "test",
		DataDir:   "data",
		JWTSecret: "test_secret",
	}

	s := &Server{
		config:      cfg,
		accounts:    service.NewAccountService(users, posts, friends, groups),
		friends:     service.NewFriendService(users, friends),
		posts:       service.NewPostService(users, posts),
		groups:      service.NewGroupService(users, groups),
		restaurants: service.NewRestaurantService(db),
		engine: recommend.NewEngine(users, groups, recommend.EngineConfig{
			TrainingGroups: 150,
			ForestTrees:    10,
			Seed:           1,
		}),
	}

	app := fiber.New()
	s.SetupRoutes(app)
	return &testEnv{server: s, app: app, users: users, groups: groups}
}

// seedUser writes a user row directly so tests can skip the expensive
// registration hash.
func (e *testEnv) seedUser(t *testing.T, username string, favorites []string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, e.users.Append(t.Context(), models.User{
		Username:         username,
		PasswordHash:     string(hash),
		AccountType:      models.AccountTypeUser,
		FavoriteCuisines: favorites,
	}))
}

func (e *testEnv) token(t *testing.T, username string) string {
	t.Helper()
	token, err := e.server.generateToken(username)
	require.NoError(t, err)
	return token
}

func jsonRequest(method, target, token string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return out
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)
	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decodeBody(t, resp)["status"])
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username":     "alice",
		"password":     "password123",
		"account_type": "user",
	}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "alice", body["username"])
	assert.NotEmpty(t, body["token"])

	// Duplicate usernames are rejected.
	resp, err = env.app.Test(jsonRequest(http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username":     "alice",
		"password":     "password123",
		"account_type": "user",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, err = env.app.Test(jsonRequest(http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": "alice",
		"password": "password123",
	}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decodeBody(t, resp)["token"])

	resp, err = env.app.Test(jsonRequest(http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": "alice",
		"password": "wrong-password",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/friends", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/friends", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFriendEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", nil)
	env.seedUser(t, "bob", nil)
	token := env.token(t, "alice")

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/api/friends", token,
		fiber.Map{"friend": "bob"}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{"bob"}, decodeBody(t, resp)["friends"])

	resp, err = env.app.Test(jsonRequest(http.MethodGet, "/api/friends", token, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{"bob"}, decodeBody(t, resp)["friends"])

	resp, err = env.app.Test(jsonRequest(http.MethodDelete, "/api/friends/bob", token, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{}, decodeBody(t, resp)["friends"])
}

func TestGroupRecommendEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", []string{"japanese", "thai"})
	env.seedUser(t, "bob", []string{"japanese"})
	token := env.token(t, "alice")

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/api/groups", token, fiber.Map{
		"group_name": "dinner club",
		"members":    []string{"bob"},
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	groupID := int(created["group_id"].(float64))
	assert.Equal(t, []any{"bob", "alice"}, created["members"])

	resp, err = env.app.Test(jsonRequest(http.MethodPost,
		fmt.Sprintf("/api/groups/%d/recommend", groupID), token, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rec := decodeBody(t, resp)
	cuisine, _ := rec["recommended_cuisine"].(string)
	assert.NotEqual(t, -1, recommend.CatalogIndex(cuisine))

	resp, err = env.app.Test(jsonRequest(http.MethodPost, "/api/groups/999/recommend", token, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPostEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", nil)
	token := env.token(t, "alice")

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/api/posts", token,
		fiber.Map{"post_text": "great ramen tonight"}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	post := decodeBody(t, resp)
	assert.Equal(t, "alice", post["username"])

	// The feed is public.
	resp, err = env.app.Test(httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	posts := decodeBody(t, resp)["posts"].([]any)
	assert.Len(t, posts, 1)
}
