// File: internal/handler/users/update_password_me.go
package users

import (
	"net/http"

	"maya-shop/internal/cache"
	"maya-shop/internal/database"
	"maya-shop/internal/dto"
	"maya-shop/internal/middleware"
	"maya-shop/internal/model"

	"github.com/labstack/echo/v4"
)

// UpdatePasswordMeHandler 更新當前使用者密碼
// @Summary     Update own password
// @Description 驗證舊密碼並更新為新密碼
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       payload body dto.UpdatePasswordMeRequest true "密碼資料"
// @Success     204 "No Content"
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /users/me/password [patch]
func UpdatePasswordMeHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.UpdatePasswordMeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		user := c.Get(middleware.ContextUserKey).(*model.User)
		ctx := c.Request().Context()

		if err := comparePassword(user.PasswordHash, req.OldPassword); err != nil {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "invalid current password"})
		}

		hash, err := hashPassword(req.NewPassword)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to hash new password"})
		}

		if err := updateUserPassword(ctx, db, user.ID, hash); err != nil {
			c.Logger().Errorf("update password for user %d failed: %v", user.ID, err)
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to update password"})
		}

		if rdb != nil {
			if err := rdb.Del(ctx, userCacheKey(user.ID)).Err(); err != nil {
				c.Logger().Warnf("cache invalidation failed for user %d: %v", user.ID, err)
			}
		}

		return c.NoContent(http.StatusNoContent)
	}
}
