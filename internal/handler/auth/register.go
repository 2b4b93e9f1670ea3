// File: internal/handler/auth/register.go
package auth

import (
	"errors"
	"net/http"
	"strings"

	"maya-shop/internal/database"
	"maya-shop/internal/dto"
	"maya-shop/internal/model"
	"maya-shop/internal/service"
	"maya-shop/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// 以下變數可於測試中替換
var (
	hashPassword    = service.HashPassword
	comparePassword = service.ComparePassword
	createUser      = store.CreateUser
	getUserByEmail  = store.GetUserByEmail
	getUserByRole   = store.GetUserByRole
	saveSession     = store.SaveSession
)

// RegisterHandler 註冊新帳號
// @Summary     Register a new user
// @Description 建立新帳號。role 僅接受 admin 或 staff，且整個系統最多一位 admin
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       payload body dto.RegisterRequest true "註冊資料"
// @Success     201 {object} dto.UserResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /register [post]
func RegisterHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "Please provide all required fields."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		ctx := c.Request().Context()
		req.Email = strings.ToLower(req.Email)

		// 先查一次讓常見情境拿到明確訊息，
		// 併發下的最後防線仍是資料庫唯一性約束
		if req.Role == model.RoleAdmin {
			if _, err := getUserByRole(ctx, db, model.RoleAdmin); err == nil {
				return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "An admin account already exists."})
			} else if !errors.Is(err, pgx.ErrNoRows) {
				c.Logger().Errorf("register: admin lookup failed: %v", err)
				return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "An error occurred during sign-up."})
			}
		}
		if _, err := getUserByEmail(ctx, db, req.Email); err == nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "Email already exists."})
		} else if !errors.Is(err, pgx.ErrNoRows) {
			c.Logger().Errorf("register: email lookup failed: %v", err)
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "An error occurred during sign-up."})
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "Error hashing password"})
		}

		gender := req.Gender
		if gender == "" {
			gender = model.DefaultGender
		}
		user := &model.User{
			Firstname:    req.Firstname,
			Lastname:     req.Lastname,
			Email:        req.Email,
			PasswordHash: hash,
			Role:         req.Role,
			ProfilePic:   model.DefaultProfilePic,
			Gender:       gender,
		}

		created, err := createUser(ctx, db, user)
		if err != nil {
			switch {
			case store.IsUniqueViolation(err, store.ConstraintSingleAdmin):
				return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "An admin account already exists."})
			case store.IsUniqueViolation(err, store.ConstraintUserEmail):
				return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "Email already exists."})
			default:
				c.Logger().Errorf("register: create user failed: %v", err)
				return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "An error occurred during sign-up."})
			}
		}

		return c.JSON(http.StatusCreated, dto.UserResponse{
			Message: "User created successfully",
			User:    created,
		})
	}
}
