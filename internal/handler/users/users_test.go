package users

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"maya-shop/internal/cache"
	"maya-shop/internal/database"
	"maya-shop/internal/middleware"
	"maya-shop/internal/model"
	"maya-shop/internal/service"
	"maya-shop/internal/storage"
	"maya-shop/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func restore() {
	hashPassword = service.HashPassword
	comparePassword = service.ComparePassword
	updateUserProfile = store.UpdateUserProfile
	updateUserPassword = store.UpdateUserPassword
	deleteUser = store.DeleteUser
	deleteSession = store.DeleteSession
}

func newJSONCtx(e *echo.Echo, method, body string, user *model.User) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.ContextUserKey, user)
	}
	return c, rec
}

// noopCache 允許 Get miss、Set/Del 成功
func noopCache() *cache.FakeCache {
	return &cache.FakeCache{
		GetFn: func(ctx context.Context, key string) *redis.StringCmd {
			return redis.NewStringResult("", redis.Nil)
		},
		SetFn: func(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
			return redis.NewStatusResult("OK", nil)
		},
		DelFn: func(ctx context.Context, keys ...string) *redis.IntCmd {
			return redis.NewIntResult(1, nil)
		},
	}
}

func TestGetUserInfoHandler(t *testing.T) {
	e := echo.New()
	user := &model.User{ID: 5, Firstname: "Alice", Role: model.RoleStaff}

	t.Run("cache miss populates cache", func(t *testing.T) {
		var setKey string
		var setPayload []byte
		cch := &cache.FakeCache{
			GetFn: func(ctx context.Context, key string) *redis.StringCmd {
				return redis.NewStringResult("", redis.Nil)
			},
			SetFn: func(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
				setKey = key
				setPayload = value.([]byte)
				require.Equal(t, userCacheTTL, ttl)
				return redis.NewStatusResult("OK", nil)
			},
		}
		ctx, rec := newJSONCtx(e, http.MethodGet, "", user)
		require.NoError(t, GetUserInfoHandler(cch)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Welcome to your dashboard!")
		require.Contains(t, rec.Body.String(), `"firstname":"Alice"`)
		require.NotContains(t, rec.Body.String(), "password")
		require.Equal(t, "user:5", setKey)
		require.Contains(t, string(setPayload), `"firstname":"Alice"`)
	})

	t.Run("cache hit serves stored payload", func(t *testing.T) {
		payload := `{"message":"Welcome to your dashboard!","user":{"id":5}}`
		cch := &cache.FakeCache{
			GetFn: func(ctx context.Context, key string) *redis.StringCmd {
				require.Equal(t, "user:5", key)
				return redis.NewStringResult(payload, nil)
			},
		}
		ctx, rec := newJSONCtx(e, http.MethodGet, "", user)
		require.NoError(t, GetUserInfoHandler(cch)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, payload, rec.Body.String())
	})

	t.Run("nil cache still responds", func(t *testing.T) {
		ctx, rec := newJSONCtx(e, http.MethodGet, "", user)
		require.NoError(t, GetUserInfoHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestEditUserHandler(t *testing.T) {
	e := echo.New()
	admin := &model.User{ID: 1, Role: model.RoleAdmin}
	staff := &model.User{ID: 5, Role: model.RoleStaff}

	t.Run("staff cannot touch name fields", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		body := `{"id":5,"firstname":"New"}`
		ctx, rec := newJSONCtx(e, http.MethodPost, body, staff)
		require.NoError(t, EditUserHandler(nil, nil, &storage.FakeStore{})(ctx))
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "Staff can only update their profile picture.")
	})

	t.Run("staff updates profile picture", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		images := &storage.FakeStore{
			UploadFn: func(_ context.Context, source string, opts storage.UploadOptions) (string, error) {
				require.Equal(t, "https://example.com/raw.png", source)
				require.Equal(t, "user_profiles", opts.Folder)
				require.Equal(t, profilePicLimit, opts.MaxWidth)
				require.Equal(t, profilePicLimit, opts.MaxHeight)
				return "/uploads/user_profiles/x.jpg", nil
			},
		}
		var gotPatch model.UserPatch
		updateUserProfile = func(_ context.Context, _ database.DB, id int, patch model.UserPatch) (*model.User, error) {
			require.Equal(t, 5, id)
			gotPatch = patch
			u := *staff
			u.ProfilePic = *patch.ProfilePic
			return &u, nil
		}
		body := `{"id":5,"profilePic":"https://example.com/raw.png"}`
		ctx, rec := newJSONCtx(e, http.MethodPost, body, staff)
		require.NoError(t, EditUserHandler(nil, noopCache(), images)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "User information updated successfully")
		require.Equal(t, "/uploads/user_profiles/x.jpg", *gotPatch.ProfilePic)
		require.Nil(t, gotPatch.Firstname)
	})

	t.Run("admin updates name and gender", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		updateUserProfile = func(_ context.Context, _ database.DB, id int, patch model.UserPatch) (*model.User, error) {
			require.Equal(t, 5, id)
			require.Equal(t, "New", *patch.Firstname)
			require.Equal(t, "female", *patch.Gender)
			require.Nil(t, patch.ProfilePic)
			return &model.User{ID: 5, Firstname: "New", Gender: "female"}, nil
		}
		body := `{"id":5,"firstname":"New","gender":"female"}`
		ctx, rec := newJSONCtx(e, http.MethodPost, body, admin)
		require.NoError(t, EditUserHandler(nil, noopCache(), &storage.FakeStore{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("upload failure", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		images := &storage.FakeStore{
			UploadFn: func(context.Context, string, storage.UploadOptions) (string, error) {
				return "", errors.New("upload")
			},
		}
		body := `{"id":5,"profilePic":"https://example.com/raw.png"}`
		ctx, rec := newJSONCtx(e, http.MethodPost, body, staff)
		require.NoError(t, EditUserHandler(nil, nil, images)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("nothing to update", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"id":5}`, staff)
		require.NoError(t, EditUserHandler(nil, nil, &storage.FakeStore{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("target user missing", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		updateUserProfile = func(context.Context, database.DB, int, model.UserPatch) (*model.User, error) {
			return nil, pgx.ErrNoRows
		}
		body := `{"id":99,"firstname":"New"}`
		ctx, rec := newJSONCtx(e, http.MethodPost, body, admin)
		require.NoError(t, EditUserHandler(nil, nil, &storage.FakeStore{})(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "User not found or not updated")
	})
}

func TestUpdatePasswordMeHandler(t *testing.T) {
	e := echo.New()
	user := &model.User{ID: 5, PasswordHash: "old-hash", Role: model.RoleStaff}
	const body = `{"old_password":"oldpassword1","new_password":"newpassword1"}`

	t.Run("wrong old password", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		comparePassword = func(string, string) error { return errors.New("mismatch") }
		ctx, rec := newJSONCtx(e, http.MethodPatch, body, user)
		require.NoError(t, UpdatePasswordMeHandler(nil, nil)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid current password")
	})

	t.Run("success invalidates cache", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		comparePassword = func(hash, password string) error {
			require.Equal(t, "old-hash", hash)
			require.Equal(t, "oldpassword1", password)
			return nil
		}
		hashPassword = func(p string) (string, error) {
			require.Equal(t, "newpassword1", p)
			return "new-hash", nil
		}
		updated := false
		updateUserPassword = func(_ context.Context, _ database.DB, id int, hash string) error {
			require.Equal(t, 5, id)
			require.Equal(t, "new-hash", hash)
			updated = true
			return nil
		}
		var delKeys []string
		cch := noopCache()
		cch.DelFn = func(_ context.Context, keys ...string) *redis.IntCmd {
			delKeys = keys
			return redis.NewIntResult(1, nil)
		}
		ctx, rec := newJSONCtx(e, http.MethodPatch, body, user)
		require.NoError(t, UpdatePasswordMeHandler(nil, cch)(ctx))
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.True(t, updated)
		require.Equal(t, []string{"user:5"}, delKeys)
	})
}

func TestDeleteUserHandler(t *testing.T) {
	e := echo.New()

	newParamCtx := func(id string) (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodDelete, "/users/"+id, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/users/:id")
		c.SetParamNames("id")
		c.SetParamValues(id)
		return c, rec
	}

	t.Run("bad id", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newParamCtx("abc")
		require.NoError(t, DeleteUserHandler(nil, nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("success revokes session and cache", func(t *testing.T) {
		t.Cleanup(restore)
		sessionGone := false
		userGone := false
		deleteSession = func(_ context.Context, _ database.DB, id int) error {
			require.Equal(t, 7, id)
			sessionGone = true
			return nil
		}
		deleteUser = func(_ context.Context, _ database.DB, id int) error {
			require.Equal(t, 7, id)
			require.True(t, sessionGone)
			userGone = true
			return nil
		}
		var delKeys []string
		cch := noopCache()
		cch.DelFn = func(_ context.Context, keys ...string) *redis.IntCmd {
			delKeys = keys
			return redis.NewIntResult(1, nil)
		}
		ctx, rec := newParamCtx("7")
		require.NoError(t, DeleteUserHandler(nil, cch)(ctx))
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.True(t, userGone)
		require.Equal(t, []string{"user:7"}, delKeys)
	})

	t.Run("delete error", func(t *testing.T) {
		t.Cleanup(restore)
		deleteSession = func(context.Context, database.DB, int) error { return nil }
		deleteUser = func(context.Context, database.DB, int) error { return errors.New("del") }
		ctx, rec := newParamCtx("7")
		require.NoError(t, DeleteUserHandler(nil, nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
