// File: internal/handler/users/get_user_info.go
package users

import (
	"encoding/json"
	"net/http"

	"maya-shop/internal/cache"
	"maya-shop/internal/dto"
	"maya-shop/internal/middleware"
	"maya-shop/internal/model"

	"github.com/labstack/echo/v4"
)

// GetUserInfoHandler 回傳當前使用者資料
// @Summary     Get current user info
// @Description 回傳通過驗證的使用者完整資料，結果會短暫快取
// @Tags        users
// @Produce     json
// @Success     200 {object} dto.UserResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /getUserInfo [get]
func GetUserInfoHandler(rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := c.Get(middleware.ContextUserKey).(*model.User)
		ctx := c.Request().Context()
		key := userCacheKey(user.ID)

		if rdb != nil {
			if payload, err := rdb.Get(ctx, key).Bytes(); err == nil {
				return c.JSONBlob(http.StatusOK, payload)
			}
		}

		resp := dto.UserResponse{
			Message: "Welcome to your dashboard!",
			User:    user,
		}

		if rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := rdb.Set(ctx, key, payload, userCacheTTL).Err(); err != nil {
					c.Logger().Warnf("cache set failed for %s: %v", key, err)
				}
			}
		}

		return c.JSON(http.StatusOK, resp)
	}
}
