// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"maya-shop/internal/cache"
	"maya-shop/internal/database"
	"maya-shop/internal/handler"
	"maya-shop/internal/handler/auth"
	"maya-shop/internal/handler/products"
	"maya-shop/internal/handler/users"
	"maya-shop/internal/middleware"
	"maya-shop/internal/service"
	"maya-shop/internal/storage"
	"maya-shop/internal/worker"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, tokens *service.Auth, images storage.ImageStore, pool worker.Pool, uploadDir string) {
	requireAuth := middleware.RequireAuth(db, tokens)
	requireAdmin := middleware.RequireAdmin(db, tokens)

	// 健康檢查（需登入）
	e.GET("/ping", handler.PingHandler(db, rdb), requireAuth)

	// 註冊與登入
	e.POST("/register", auth.RegisterHandler(db))
	e.POST("/signIn", auth.SignInHandler(db, tokens))

	// 使用者
	e.GET("/getUserInfo", users.GetUserInfoHandler(rdb), requireAuth)
	e.POST("/userEdit", users.EditUserHandler(db, rdb, images), requireAuth)
	e.PATCH("/users/me/password", users.UpdatePasswordMeHandler(db, rdb), requireAuth)
	e.DELETE("/users/:id", users.DeleteUserHandler(db, rdb), requireAdmin)

	// 商品
	e.POST("/productUpload", products.UploadProductHandler(db, images, pool), requireAuth)

	// 上傳後的圖片以靜態路徑對外提供
	e.Static("/uploads", uploadDir)
}
