// File: internal/handler/users/edit_user.go
package users

import (
	"errors"
	"net/http"

	"maya-shop/internal/cache"
	"maya-shop/internal/database"
	"maya-shop/internal/dto"
	"maya-shop/internal/middleware"
	"maya-shop/internal/model"
	"maya-shop/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// 大頭貼統一縮到 300x300 以內
const profilePicLimit = 300

// EditUserHandler 更新使用者個人資料
// @Summary     Edit user info
// @Description 更新指定使用者的個人資料。staff 僅能更新大頭貼，admin 可更新全部欄位
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       payload body dto.UpdateUserRequest true "更新資料"
// @Success     200 {object} dto.UserResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /userEdit [post]
func EditUserHandler(db database.DB, rdb cache.Cache, images storage.ImageStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		requester := c.Get(middleware.ContextUserKey).(*model.User)

		// staff 碰大頭貼以外的欄位一律擋下
		if requester.Role == model.RoleStaff &&
			(req.Firstname != nil || req.Lastname != nil || req.Gender != nil) {
			return c.JSON(http.StatusForbidden, dto.HTTPError{Message: "Staff can only update their profile picture."})
		}

		ctx := c.Request().Context()

		patch := model.UserPatch{ProfilePic: req.ProfilePic}
		if requester.Role == model.RoleAdmin {
			patch.Firstname = req.Firstname
			patch.Lastname = req.Lastname
			patch.Gender = req.Gender
		}

		if req.ProfilePic != nil {
			url, err := images.Upload(ctx, *req.ProfilePic, storage.UploadOptions{
				Folder:    "user_profiles",
				MaxWidth:  profilePicLimit,
				MaxHeight: profilePicLimit,
			})
			if err != nil {
				c.Logger().Errorf("profile picture upload failed: %v", err)
				return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "Error updating user info"})
			}
			patch.ProfilePic = &url
		}

		if patch.Empty() {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "No fields to update."})
		}

		updated, err := updateUserProfile(ctx, db, req.ID, patch)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, dto.HTTPError{Message: "User not found or not updated"})
			}
			c.Logger().Errorf("update user %d failed: %v", req.ID, err)
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "Error updating user info"})
		}

		if rdb != nil {
			if err := rdb.Del(ctx, userCacheKey(req.ID)).Err(); err != nil {
				c.Logger().Warnf("cache invalidation failed for user %d: %v", req.ID, err)
			}
		}

		return c.JSON(http.StatusOK, dto.UserResponse{
			Message: "User information updated successfully",
			User:    updated,
		})
	}
}
