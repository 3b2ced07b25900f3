package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/docuvault/docuvault/internal/access"
	"github.com/docuvault/docuvault/internal/auth"
	"github.com/docuvault/docuvault/internal/config"
	"github.com/docuvault/docuvault/internal/document/repository"
	"github.com/docuvault/docuvault/internal/document/service"
	"github.com/docuvault/docuvault/internal/models"
	"github.com/docuvault/docuvault/internal/roles"
	"github.com/docuvault/docuvault/internal/users"
	"github.com/docuvault/docuvault/pkg/middleware"
)

// testEnv wires the full HTTP stack against in-memory repositories, the
// same way main.go wires it against Mongo.
type testEnv struct {
	router   *gin.Engine
	cfg      *config.Config
	roleRepo *roles.MemoryRepository
	userRepo *users.MemoryRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWT:    config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour},
		Access: config.AccessConfig{PrivilegedRole: "Admin"},
	}

	roleRepo := roles.NewMemoryRepository()
	userRepo := users.NewMemoryRepository()
	docRepo := repository.NewMemoryRepo()
	policy := access.NewPolicy(cfg.Access.PrivilegedRole)
	docSvc := service.New(docRepo, roleRepo, userRepo, policy)
	userSvc := users.NewService(userRepo, roleRepo)
	blacklist := auth.NewBlacklist(nil)

	r := gin.New()
	authMW := middleware.Auth(cfg, blacklist)
	public := r.Group("/api")
	api := r.Group("/api", authMW)

	NewDocumentHandler(docSvc).Register(api, middleware.RoleAccess(cfg.Access.PrivilegedRole))
	NewRoleHandler(roleRepo).Register(api, middleware.RoleAuth(roleRepo, cfg.Access.PrivilegedRole))
	NewUserHandler(cfg, userSvc, blacklist).Register(public, api)

	return &testEnv{router: r, cfg: cfg, roleRepo: roleRepo, userRepo: userRepo}
}

func (e *testEnv) seedRole(t *testing.T, title string) string {
	t.Helper()
	id, err := e.roleRepo.Create(context.Background(), &models.Role{Title: title})
	require.NoError(t, err)
	return id
}

// seedUser stores a user directly and mints a token for it.
func (e *testEnv) seedUser(t *testing.T, username, roleID string) (*models.User, string) {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Role: roleID}
	id, err := e.userRepo.Create(context.Background(), u)
	require.NoError(t, err)
	u.ID = id
	token, err := auth.GenerateAccessToken(e.cfg, u, time.Hour)
	require.NoError(t, err)
	return u, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
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
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateDocumentRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/api/documents", "", gin.H{"title": "report"})
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "No token provided", decodeBody(t, w)["message"])
}

func TestCreateDocumentFlow(t *testing.T) {
	env := newTestEnv(t)
	roleID := env.seedRole(t, "Member")
	u, token := env.seedUser(t, "alice", roleID)

	w := env.do(t, "POST", "/api/documents", token, gin.H{
		"title":   "quarterly report",
		"content": "numbers",
		"userId":  u.ID,
		"role":    roleID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, true, body["success"])
	require.Equal(t, "Document successfully created", body["message"])
	doc := body["doc"].(map[string]interface{})
	require.Equal(t, "quarterly report", doc["title"])
	require.NotEmpty(t, doc["id"])

	// same title again
	w = env.do(t, "POST", "/api/documents", token, gin.H{
		"title":  "quarterly report",
		"userId": u.ID,
		"role":   roleID,
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "Document already exists", decodeBody(t, w)["message"])
}

func TestCreateDocumentChecksReferences(t *testing.T) {
	env := newTestEnv(t)
	roleID := env.seedRole(t, "Member")
	u, token := env.seedUser(t, "alice", roleID)

	w := env.do(t, "POST", "/api/documents", token, gin.H{
		"title": "orphan", "userId": u.ID, "role": "no-such-role",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Role not found. Create first", decodeBody(t, w)["message"])

	w = env.do(t, "POST", "/api/documents", token, gin.H{
		"title": "orphan", "userId": "no-such-user", "role": roleID,
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "User not found", decodeBody(t, w)["message"])
}

func TestCreateDocumentPrivilegedTitleDenied(t *testing.T) {
	env := newTestEnv(t)
	roleID := env.seedRole(t, "Member")
	u, token := env.seedUser(t, "alice", roleID)

	// a title equal to the privileged role name trips the gate even for a
	// caller whose references are all valid
	w := env.do(t, "POST", "/api/documents", token, gin.H{
		"title": "Admin", "userId": u.ID, "role": roleID,
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Access Denied", decodeBody(t, w)["message"])
}

func TestListAndSearchDocuments(t *testing.T) {
	env := newTestEnv(t)
	roleID := env.seedRole(t, "Member")
	u, token := env.seedUser(t, "alice", roleID)

	for i := 0; i < 3; i++ {
		w := env.do(t, "POST", "/api/documents", token, gin.H{
			"title":  fmt.Sprintf("note %d", i),
			"userId": u.ID,
			"role":   roleID,
		})
		require.Equal(t, http.StatusOK, w.Code)
		time.Sleep(2 * time.Millisecond) // distinct createdAt for ordering
	}

	w := env.do(t, "GET", "/api/documents", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	docs := decodeList(t, w)
	require.Len(t, docs, 3)
	// newest first
	require.Equal(t, "note 2", docs[0]["title"])
	require.Equal(t, "note 0", docs[2]["title"])

	w = env.do(t, "GET", "/api/documents?limit=2&after=1", token, nil)
	docs = decodeList(t, w)
	require.Len(t, docs, 2)
	require.Equal(t, "note 1", docs[0]["title"])

	w = env.do(t, "GET", "/api/documents?title=note+1", token, nil)
	docs = decodeList(t, w)
	require.Len(t, docs, 1)

	// no matches is still a 200 with an empty array
	w = env.do(t, "GET", "/api/documents?title=missing", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeList(t, w), 0)
}

func TestGetDocumentByID(t *testing.T) {
	env := newTestEnv(t)
	roleID := env.seedRole(t, "Member")
	u, token := env.seedUser(t, "alice", roleID)

	w := env.do(t, "POST", "/api/documents", token, gin.H{
		"title": "memo", "userId": u.ID, "role": roleID,
	})
	id := decodeBody(t, w)["doc"].(map[string]interface{})["id"].(string)

	w = env.do(t, "GET", "/api/documents/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "memo", decodeBody(t, w)["title"])

	w = env.do(t, "GET", "/api/documents/unknown-id", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Document not found", decodeBody(t, w)["message"])
}

func TestUpdateDocumentOwnership(t *testing.T) {
	env := newTestEnv(t)
	roleID := env.seedRole(t, "Member")
	owner, ownerToken := env.seedUser(t, "alice", roleID)
	_, otherToken := env.seedUser(t, "bob", roleID)

	w := env.do(t, "POST", "/api/documents", ownerToken, gin.H{
		"title": "draft", "content": "v1", "userId": owner.ID, "role": roleID,
	})
	id := decodeBody(t, w)["doc"].(map[string]interface{})["id"].(string)

	// same role is not enough; only the owner may mutate
	w = env.do(t, "PUT", "/api/documents/"+id, otherToken, gin.H{"content": "hijack"})
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Access Denied", decodeBody(t, w)["message"])

	w = env.do(t, "PUT", "/api/documents/"+id, ownerToken, gin.H{"content": "v2"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Document successfully updated", decodeBody(t, w)["message"])

	w = env.do(t, "GET", "/api/documents/"+id, ownerToken, nil)
	require.Equal(t, "v2", decodeBody(t, w)["content"])

	// a missing document reports 404 before any ownership check
	w = env.do(t, "PUT", "/api/documents/unknown-id", otherToken, gin.H{"content": "x"})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Document not found", decodeBody(t, w)["message"])
}

func TestDeleteDocument(t *testing.T) {
	env := newTestEnv(t)
	roleID := env.seedRole(t, "Member")
	owner, ownerToken := env.seedUser(t, "alice", roleID)
	_, otherToken := env.seedUser(t, "bob", roleID)

	w := env.do(t, "POST", "/api/documents", ownerToken, gin.H{
		"title": "ephemeral", "userId": owner.ID, "role": roleID,
	})
	id := decodeBody(t, w)["doc"].(map[string]interface{})["id"].(string)

	w = env.do(t, "DELETE", "/api/documents/"+id, otherToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, "DELETE", "/api/documents/"+id, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Document successfully deleted", decodeBody(t, w)["message"])

	w = env.do(t, "GET", "/api/documents/"+id, ownerToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocumentsByRoleAndUser(t *testing.T) {
	env := newTestEnv(t)
	memberID := env.seedRole(t, "Member")
	guestID := env.seedRole(t, "Guest")
	u, token := env.seedUser(t, "alice", memberID)

	for i := 0; i < 3; i++ {
		w := env.do(t, "POST", "/api/documents", token, gin.H{
			"title":  fmt.Sprintf("member doc %d", i),
			"userId": u.ID,
			"role":   memberID,
		})
		require.Equal(t, http.StatusOK, w.Code)
		time.Sleep(2 * time.Millisecond)
	}

	w := env.do(t, "GET", "/api/documents/role/"+memberID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	docs := decodeList(t, w)
	require.Len(t, docs, 3)
	require.Equal(t, "member doc 2", docs[0]["title"])

	w = env.do(t, "GET", "/api/documents/role/"+memberID+"/2", token, nil)
	require.Len(t, decodeList(t, w), 2)

	// the static "role" segment coexists with the by-id wildcard
	w = env.do(t, "GET", "/api/documents/role", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// alias shape
	w = env.do(t, "GET", "/api/roles/"+memberID+"/documents", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeList(t, w), 3)

	w = env.do(t, "GET", "/api/roles/"+memberID+"/documents/2", token, nil)
	require.Len(t, decodeList(t, w), 2)

	// a role with no documents is a 404, unlike the search endpoint
	w = env.do(t, "GET", "/api/documents/role/"+guestID, token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Role has no document", decodeBody(t, w)["message"])

	w = env.do(t, "GET", "/api/user/"+u.ID+"/documents", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeList(t, w), 3)

	w = env.do(t, "GET", "/api/user/"+u.ID+"/documents/1", token, nil)
	require.Len(t, decodeList(t, w), 1)

	w = env.do(t, "GET", "/api/user/nobody/documents", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "User has no document", decodeBody(t, w)["message"])
}

// The limiter sits after Auth on the protected group, so two users sharing
// one client IP get separate buckets.
func TestRateLimiterKeyedPerPrincipal(t *testing.T) {
	env := newTestEnv(t)
	roleID := env.seedRole(t, "Member")
	_, tokenA := env.seedUser(t, "alice", roleID)
	_, tokenB := env.seedUser(t, "bob", roleID)

	r := gin.New()
	api := r.Group("/api", middleware.Auth(env.cfg, auth.NewBlacklist(nil)))
	api.Use(middleware.RateLimit(0.5, 1))
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	do := func(token string) int {
		req := httptest.NewRequest("GET", "/api/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, do(tokenA))
	require.Equal(t, http.StatusTooManyRequests, do(tokenA))
	// per-IP keying would reject this too
	require.Equal(t, http.StatusOK, do(tokenB))
}
