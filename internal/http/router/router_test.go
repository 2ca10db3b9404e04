package router

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/skillswap-backend/internal/config"
	"github.com/ignatzorin/skillswap-backend/internal/domain/event"
	"github.com/ignatzorin/skillswap-backend/internal/infrastructure/export"
	"github.com/ignatzorin/skillswap-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/skillswap-backend/internal/logger"
	"github.com/ignatzorin/skillswap-backend/internal/service"
	"github.com/ignatzorin/skillswap-backend/internal/storage"
	"github.com/ignatzorin/skillswap-backend/internal/ws"
)

const testPassword = "Secret123"

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Pagination *struct {
		Total   int  `json:"total"`
		Limit   int  `json:"limit"`
		Offset  int  `json:"offset"`
		HasMore bool `json:"has_more"`
	} `json:"pagination"`
}

type testAPI struct {
	t       *testing.T
	engine  *gin.Engine
	store   *memory.Store
	exports *export.LogScheduler
}

type testUser struct {
	ID    string
	Token string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Discard()

	cfg := &config.Config{
		Env:              "test",
		AllowedOrigins:   []string{"http://localhost:3000"},
		RateLimitLimit:   1000,
		RateLimitPeriod:  time.Minute,
		AvatarStorage:    config.AvatarStorageLocal,
		MediaStoragePath: t.TempDir(),
	}

	avatars, err := storage.NewLocalAvatarStorage(cfg.MediaStoragePath, "/media", 1)
	require.NoError(t, err)

	store := memory.NewStore()
	exports := export.NewLogScheduler()
	tokens := service.NewTokenManager("test-access-secret", "test-refresh-secret", time.Minute, time.Hour)

	handlers := NewHandlers(context.Background(), Deps{
		Config:    cfg,
		Store:     store,
		Publisher: event.NopPublisher{},
		Hub:       ws.NewHub(),
		Tokens:    tokens,
		Avatars:   avatars,
		Exports:   exports,
	})

	return &testAPI{t: t, engine: SetupRouter(cfg, handlers, tokens), store: store, exports: exports}
}

func (a *testAPI) do(method, path, token string, body any) (*httptest.ResponseRecorder, apiEnvelope) {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.serve(req)
}

func (a *testAPI) serve(req *http.Request) (*httptest.ResponseRecorder, apiEnvelope) {
	a.t.Helper()
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env apiEnvelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func (a *testAPI) register(name, email string) testUser {
	a.t.Helper()
	w, env := a.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": testPassword,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		User   struct{ ID string } `json:"user"`
		Tokens struct {
			AccessToken string `json:"access_token"`
		} `json:"tokens"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &data))
	return testUser{ID: data.User.ID, Token: data.Tokens.AccessToken}
}

func (a *testAPI) admin() testUser {
	a.t.Helper()
	require.NoError(a.t, service.NewSeedService(a.store).EnsureAdmin(context.Background(), "admin@skillswap.dev", testPassword))

	w, env := a.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "admin@skillswap.dev", "password": testPassword,
	})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		User   struct{ ID string } `json:"user"`
		Tokens struct {
			AccessToken string `json:"access_token"`
		} `json:"tokens"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &data))
	return testUser{ID: data.User.ID, Token: data.Tokens.AccessToken}
}

func decode[T any](t *testing.T, env apiEnvelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func TestHealth_MemoryStore(t *testing.T) {
	api := newTestAPI(t)

	w, _ := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"storage":"memory"`)
}

func TestAuth_RegisterLoginRefresh(t *testing.T) {
	api := newTestAPI(t)
	api.register("Alice Smith", "alice@example.com")

	t.Run("duplicate email", func(t *testing.T) {
		w, env := api.do(http.MethodPost, "/api/auth/register", "", map[string]string{
			"name": "Alice Two", "email": "ALICE@example.com", "password": testPassword,
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})

	t.Run("weak password", func(t *testing.T) {
		w, env := api.do(http.MethodPost, "/api/auth/register", "", map[string]string{
			"name": "Bob Weak", "email": "bob@example.com", "password": "password",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		w, env := api.do(http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "alice@example.com", "password": "Wrong1234",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, env.Success)
	})

	t.Run("refresh", func(t *testing.T) {
		w, env := api.do(http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "alice@example.com", "password": testPassword,
		})
		require.Equal(t, http.StatusOK, w.Code)
		data := decode[struct {
			Tokens struct {
				RefreshToken string `json:"refresh_token"`
			} `json:"tokens"`
		}](t, env)

		w, env = api.do(http.MethodPost, "/api/auth/refresh", "", map[string]string{"refresh_token": data.Tokens.RefreshToken})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(env.Data), "access_token")

		w, _ = api.do(http.MethodPost, "/api/auth/refresh", "", map[string]string{"refresh_token": "garbage"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	w, _ = api.do(http.MethodGet, "/api/profile", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	user := api.register("Alice Smith", "alice@example.com")
	w, _ = api.do(http.MethodGet, "/api/requests/not-a-uuid", user.Token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfiles_DirectoryAndVisibility(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("Alice Smith", "alice@example.com")
	bob := api.register("Bob Jones", "bob@example.com")

	w, _ := api.do(http.MethodPatch, "/api/profile", alice.Token, map[string]any{
		"location":       "Berlin",
		"availability":   "weekends",
		"skills_offered": []string{"Go", "Guitar"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = api.do(http.MethodPatch, "/api/profile", bob.Token, map[string]any{"is_public": false})
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("directory hides private profiles", func(t *testing.T) {
		w, env := api.do(http.MethodGet, "/api/profiles", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		profiles := decode[[]map[string]any](t, env)
		require.Len(t, profiles, 1)
		assert.Equal(t, alice.ID, profiles[0]["id"])
		assert.NotContains(t, profiles[0], "email")
		assert.Equal(t, 1, env.Pagination.Total)
	})

	t.Run("search by skill", func(t *testing.T) {
		w, env := api.do(http.MethodGet, "/api/profiles?q=guit&availability=Weekends", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]map[string]any](t, env), 1)

		_, env = api.do(http.MethodGet, "/api/profiles?q=piano", "", nil)
		assert.Empty(t, decode[[]map[string]any](t, env))
	})

	t.Run("private profile", func(t *testing.T) {
		w, _ := api.do(http.MethodGet, "/api/profiles/"+bob.ID, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w, _ = api.do(http.MethodGet, "/api/profiles/"+bob.ID, alice.Token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w, env := api.do(http.MethodGet, "/api/profiles/"+bob.ID, bob.Token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "bob@example.com", decode[map[string]any](t, env)["email"])
	})

	t.Run("skills", func(t *testing.T) {
		w, env := api.do(http.MethodPost, "/api/profile/skills", alice.Token, map[string]string{"kind": "wanted", "skill": "Cooking"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, decode[map[string]any](t, env)["skills_wanted"], "Cooking")

		w, env = api.do(http.MethodDelete, "/api/profile/skills/offered/Guitar", alice.Token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, decode[map[string]any](t, env)["skills_offered"], "Guitar")

		w, _ = api.do(http.MethodPost, "/api/profile/skills", alice.Token, map[string]string{"kind": "other", "skill": "X"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSwapFlow(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("Alice Smith", "alice@example.com")
	bob := api.register("Bob Jones", "bob@example.com")

	api.do(http.MethodPatch, "/api/profile", alice.Token, map[string]any{"skills_offered": []string{"Go"}})
	api.do(http.MethodPatch, "/api/profile", bob.Token, map[string]any{"skills_offered": []string{"Piano"}, "skills_wanted": []string{"Go"}})

	w, env := api.do(http.MethodPost, "/api/requests", alice.Token, map[string]string{
		"provider_id": bob.ID, "skill_offered": "Go", "skill_wanted": "Go", "message": "Hi!",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	requestID := decode[map[string]any](t, env)["id"].(string)

	t.Run("skill must belong to requester", func(t *testing.T) {
		w, _ := api.do(http.MethodPost, "/api/requests", alice.Token, map[string]string{
			"provider_id": bob.ID, "skill_offered": "Piano", "skill_wanted": "Go",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wanted skill must be on provider's wanted list", func(t *testing.T) {
		w, env := api.do(http.MethodPost, "/api/requests", alice.Token, map[string]string{
			"provider_id": bob.ID, "skill_offered": "Go", "skill_wanted": "Piano",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("lists by direction", func(t *testing.T) {
		_, env := api.do(http.MethodGet, "/api/requests?direction=sent", alice.Token, nil)
		assert.Len(t, decode[[]map[string]any](t, env), 1)

		_, env = api.do(http.MethodGet, "/api/requests", bob.Token, nil)
		assert.Len(t, decode[[]map[string]any](t, env), 1)

		_, env = api.do(http.MethodGet, "/api/requests", alice.Token, nil)
		assert.Empty(t, decode[[]map[string]any](t, env))
	})

	t.Run("only provider responds", func(t *testing.T) {
		w, env := api.do(http.MethodPatch, "/api/requests/"+requestID+"/respond", alice.Token, map[string]string{"decision": "accept"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})

	t.Run("feedback before accept", func(t *testing.T) {
		w, _ := api.do(http.MethodPost, "/api/requests/"+requestID+"/feedback", alice.Token, map[string]any{"rating": 5})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	w, env = api.do(http.MethodPatch, "/api/requests/"+requestID+"/respond", bob.Token, map[string]string{"decision": "accept"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "accepted", decode[map[string]any](t, env)["status"])

	t.Run("second response is rejected", func(t *testing.T) {
		w, env := api.do(http.MethodPatch, "/api/requests/"+requestID+"/respond", bob.Token, map[string]string{"decision": "reject"})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "INVALID_TRANSITION", env.Error.Code)
	})

	t.Run("feedback", func(t *testing.T) {
		w, _ := api.do(http.MethodPost, "/api/requests/"+requestID+"/feedback", alice.Token, map[string]any{"rating": 4, "comment": "Great"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w, _ = api.do(http.MethodPost, "/api/requests/"+requestID+"/feedback", alice.Token, map[string]any{"rating": 5})
		assert.Equal(t, http.StatusConflict, w.Code)

		w, _ = api.do(http.MethodPost, "/api/requests/"+requestID+"/feedback", bob.Token, map[string]any{"rating": 9})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		_, env := api.do(http.MethodGet, "/api/profiles/"+bob.ID+"/feedback", "", nil)
		assert.Len(t, decode[[]map[string]any](t, env), 1)

		_, env = api.do(http.MethodGet, "/api/profiles/"+bob.ID, "", nil)
		profile := decode[map[string]any](t, env)
		assert.Equal(t, 4.0, profile["rating"])
		assert.Equal(t, 1.0, profile["total_swaps"])
	})

	t.Run("outsider cannot read", func(t *testing.T) {
		carol := api.register("Carol White", "carol@example.com")
		w, _ := api.do(http.MethodGet, "/api/requests/"+requestID, carol.Token, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("remove hides for caller", func(t *testing.T) {
		w, _ := api.do(http.MethodDelete, "/api/requests/"+requestID, alice.Token, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		_, env := api.do(http.MethodGet, "/api/requests?direction=sent", alice.Token, nil)
		assert.Empty(t, decode[[]map[string]any](t, env))

		_, env = api.do(http.MethodGet, "/api/requests?direction=received", bob.Token, nil)
		assert.Len(t, decode[[]map[string]any](t, env), 1)
	})
}

func TestSwapFlow_Cancel(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("Alice Smith", "alice@example.com")
	bob := api.register("Bob Jones", "bob@example.com")
	api.do(http.MethodPatch, "/api/profile", alice.Token, map[string]any{"skills_offered": []string{"Go"}})
	api.do(http.MethodPatch, "/api/profile", bob.Token, map[string]any{"skills_wanted": []string{"Go"}})

	_, env := api.do(http.MethodPost, "/api/requests", alice.Token, map[string]string{
		"provider_id": bob.ID, "skill_offered": "Go", "skill_wanted": "Go",
	})
	requestID := decode[map[string]any](t, env)["id"].(string)

	w, _ := api.do(http.MethodPatch, "/api/requests/"+requestID+"/cancel", bob.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = api.do(http.MethodPatch, "/api/requests/"+requestID+"/cancel", alice.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cancelled", decode[map[string]any](t, env)["status"])

	w, _ = api.do(http.MethodPatch, "/api/requests/"+requestID+"/cancel", alice.Token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdmin_Access(t *testing.T) {
	api := newTestAPI(t)
	user := api.register("Alice Smith", "alice@example.com")

	for _, path := range []string{"/api/admin/users", "/api/admin/reports", "/api/admin/stats", "/api/admin/requests"} {
		w, env := api.do(http.MethodGet, path, user.Token, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
		assert.Equal(t, "FORBIDDEN", env.Error.Code, path)
	}

	w, _ := api.do(http.MethodGet, "/api/admin/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdmin_Moderation(t *testing.T) {
	api := newTestAPI(t)
	admin := api.admin()
	alice := api.register("Alice Smith", "alice@example.com")
	bob := api.register("Bob Jones", "bob@example.com")
	api.do(http.MethodPatch, "/api/profile", alice.Token, map[string]any{"skills_offered": []string{"Go"}})
	api.do(http.MethodPatch, "/api/profile", bob.Token, map[string]any{"skills_offered": []string{"Piano"}, "skills_wanted": []string{"Go"}})

	_, env := api.do(http.MethodPost, "/api/requests", alice.Token, map[string]string{
		"provider_id": bob.ID, "skill_offered": "Go", "skill_wanted": "Go",
	})
	requestID := decode[map[string]any](t, env)["id"].(string)

	w, env := api.do(http.MethodPost, "/api/reports", alice.Token, map[string]string{
		"reported_user_id": bob.ID, "type": "spam", "description": "sends spam",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reportID := decode[map[string]any](t, env)["id"].(string)

	t.Run("list and resolve reports", func(t *testing.T) {
		_, env := api.do(http.MethodGet, "/api/admin/reports?status=pending", admin.Token, nil)
		assert.Len(t, decode[[]map[string]any](t, env), 1)

		w, env := api.do(http.MethodPatch, "/api/admin/reports/"+reportID+"/resolve", admin.Token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "resolved", decode[map[string]any](t, env)["status"])

		w, _ = api.do(http.MethodPatch, "/api/admin/reports/"+reportID+"/resolve", admin.Token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("stats", func(t *testing.T) {
		w, env := api.do(http.MethodGet, "/api/admin/stats", admin.Token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		stats := decode[map[string]any](t, env)
		assert.Equal(t, 3.0, stats["total_users"])
		assert.Equal(t, 3.0, stats["active_users"])
	})

	t.Run("ban cancels pending swaps", func(t *testing.T) {
		w, env := api.do(http.MethodPost, "/api/admin/users/"+bob.ID+"/ban", admin.Token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "banned", decode[map[string]any](t, env)["status"])

		_, env = api.do(http.MethodGet, "/api/admin/requests", admin.Token, nil)
		swaps := decode[[]map[string]any](t, env)
		require.Len(t, swaps, 1)
		assert.Equal(t, requestID, swaps[0]["id"])
		assert.Equal(t, "cancelled", swaps[0]["status"])

		w, _ = api.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "bob@example.com", "password": testPassword})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("edit user", func(t *testing.T) {
		w, env := api.do(http.MethodPatch, "/api/admin/users/"+alice.ID, admin.Token, map[string]any{
			"location": "Paris", "status": "suspended",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		user := decode[map[string]any](t, env)
		assert.Equal(t, "Paris", user["location"])
		assert.Equal(t, "suspended", user["status"])

		w, _ = api.do(http.MethodPost, "/api/admin/users/"+alice.ID+"/reactivate", admin.Token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("broadcast and export", func(t *testing.T) {
		w, env := api.do(http.MethodPost, "/api/admin/broadcast", admin.Token, map[string]string{"message": "Maintenance tonight"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Maintenance tonight", decode[map[string]any](t, env)["message"])

		w, _ = api.do(http.MethodPost, "/api/admin/exports", admin.Token, map[string]string{"kind": "swap_statistics"})
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Len(t, api.exports.Recent(), 1)

		w, _ = api.do(http.MethodPost, "/api/admin/exports", admin.Token, map[string]string{"kind": "everything"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete user", func(t *testing.T) {
		w, _ := api.do(http.MethodDelete, "/api/admin/users/"+bob.ID, admin.Token, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, _ = api.do(http.MethodGet, "/api/admin/users/"+bob.ID, admin.Token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProfile_UploadAvatar(t *testing.T) {
	api := newTestAPI(t)
	user := api.register("Alice Smith", "alice@example.com")

	upload := func(content []byte) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("file", "avatar.png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/profile/avatar", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+user.Token)
		w, _ := api.serve(req)
		return w
	}

	png := append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, bytes.Repeat([]byte{0}, 64)...)
	w := upload(png)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"avatar_url":"/media/`+user.ID+`/`)

	w = upload([]byte("definitely not an image"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
