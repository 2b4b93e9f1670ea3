// File: internal/model/session.go
package model

import "time"

// Session 代表一位使用者當前唯一有效的登入令牌。
// 每位使用者最多一列，重新登入時覆寫。
type Session struct {
	UserID    int       `db:"user_id" json:"user_id"`
	Token     string    `db:"token" json:"token"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
}
