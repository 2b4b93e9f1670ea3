// File: internal/handler/users/users.go
package users

import (
	"strconv"
	"time"

	"maya-shop/internal/service"
	"maya-shop/internal/store"
)

// 以下變數可於測試中替換
var (
	hashPassword       = service.HashPassword
	comparePassword    = service.ComparePassword
	updateUserProfile  = store.UpdateUserProfile
	updateUserPassword = store.UpdateUserPassword
	deleteUser         = store.DeleteUser
	deleteSession      = store.DeleteSession
)

// userCacheTTL 為使用者資料快取的存活時間
const userCacheTTL = 5 * time.Minute

func userCacheKey(id int) string {
	return "user:" + strconv.Itoa(id)
}
