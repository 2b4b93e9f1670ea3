// File: internal/middleware/middleware.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"maya-shop/internal/database"
	"maya-shop/internal/model"
	"maya-shop/internal/service"
	"maya-shop/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// ContextUserKey 為通過驗證後掛在 echo context 上的使用者
const ContextUserKey = "user"

func extractToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Token is required.")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Token is required.")
	}
	return parts[1], nil
}

// RequireAuth 驗證 bearer token：
// 簽章有效還不夠，token 必須與資料庫中該使用者「最新一次登入」
// 的未過期紀錄完全一致，被新登入取代的舊 token 一律拒絕。
func RequireAuth(db database.DB, auth *service.Auth) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := extractToken(c)
			if err != nil {
				return err
			}

			claims, err := auth.VerifyAccessToken(tokenString)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					c.Logger().Infof("expired token for request %s", c.Path())
				} else {
					c.Logger().Warnf("token verification failed: %v", err)
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token.")
			}

			ctx := c.Request().Context()
			if _, err := store.GetSession(ctx, db, claims.UserID, tokenString); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token in the database.")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "An unexpected error occurred.")
			}

			user, err := store.GetUserByID(ctx, db, claims.UserID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return echo.NewHTTPError(http.StatusNotFound, "User Not found.")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "An unexpected error occurred.")
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// RequireAdmin 在 RequireAuth 之後加上 admin 角色檢查
func RequireAdmin(db database.DB, auth *service.Auth) echo.MiddlewareFunc {
	requireAuth := RequireAuth(db, auth)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return requireAuth(func(c echo.Context) error {
			user := c.Get(ContextUserKey).(*model.User)
			if user.Role != model.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
			}
			return next(c)
		})
	}
}
