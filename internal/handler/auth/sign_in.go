// File: internal/handler/auth/sign_in.go
package auth

import (
	"net/http"
	"strings"

	"maya-shop/internal/database"
	"maya-shop/internal/dto"
	"maya-shop/internal/service"

	"github.com/labstack/echo/v4"
)

// SignInHandler 登入並發行存取令牌
// @Summary     Sign in
// @Description 驗證 Email 與密碼，簽發 JWT 並覆寫該使用者在資料庫中的登入令牌
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       payload body dto.SignInRequest true "登入資料"
// @Success     200 {object} dto.SignInResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /signIn [post]
func SignInHandler(db database.DB, auth *service.Auth) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.SignInRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "Email and password are required."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "Email and password are required."})
		}

		ctx := c.Request().Context()

		// 查無帳號與密碼錯誤回一樣的訊息，不洩漏哪個條件失敗
		user, err := getUserByEmail(ctx, db, strings.ToLower(req.Email))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "Invalid email or password."})
		}
		if err := comparePassword(user.PasswordHash, req.Password); err != nil {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "Invalid email or password."})
		}

		token, expiresAt, err := auth.IssueAccessToken(*user)
		if err != nil {
			c.Logger().Errorf("sign-in: issue token failed: %v", err)
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "An error occurred during token generation."})
		}

		// 同一使用者重複登入採覆寫，僅最新令牌有效
		if err := saveSession(ctx, db, user.ID, token, expiresAt); err != nil {
			c.Logger().Errorf("sign-in: save session failed: %v", err)
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "An error occurred during token generation."})
		}

		return c.JSON(http.StatusOK, dto.SignInResponse{
			Message: "Sign-in successful.",
			Token:   token,
			User: dto.SignInUser{
				Firstname: user.Firstname,
				Lastname:  user.Lastname,
			},
		})
	}
}
