// File: internal/handler/users/delete_user.go
package users

import (
	"net/http"
	"strconv"

	"maya-shop/internal/cache"
	"maya-shop/internal/database"
	"maya-shop/internal/dto"

	"github.com/labstack/echo/v4"
)

// DeleteUserHandler 刪除使用者 (限 admin)
// @Summary     Delete a user
// @Description 刪除指定使用者並撤銷其登入令牌
// @Tags        users
// @Produce     json
// @Param       id path int true "使用者 ID"
// @Success     204 "No Content"
// @Failure     400 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /users/{id} [delete]
func DeleteUserHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid user ID"})
		}

		ctx := c.Request().Context()

		// 先撤銷令牌，使用者一刪就不該再有可用的登入狀態
		if err := deleteSession(ctx, db, id); err != nil {
			c.Logger().Errorf("revoke session for user %d failed: %v", id, err)
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to delete user"})
		}
		if err := deleteUser(ctx, db, id); err != nil {
			c.Logger().Errorf("delete user %d failed: %v", id, err)
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to delete user"})
		}

		if rdb != nil {
			if err := rdb.Del(ctx, userCacheKey(id)).Err(); err != nil {
				c.Logger().Warnf("cache invalidation failed for user %d: %v", id, err)
			}
		}

		return c.NoContent(http.StatusNoContent)
	}
}
