// File: internal/store/session.go
package store

import (
	"context"
	"fmt"
	"time"

	"maya-shop/internal/database"
	"maya-shop/internal/model"
)

// SaveSession 寫入或覆寫使用者的登入令牌。
// 每位使用者僅一列，重複登入採 upsert，不會撞唯一性約束。
func SaveSession(ctx context.Context, db database.DB, userID int, token string, expiresAt time.Time) error {
	_, err := db.Exec(ctx,
		`INSERT INTO sessions (user_id, token, expires_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE
		 SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at`,
		userID,
		token,
		expiresAt,
	)
	if err != nil {
		return fmt.Errorf("SaveSession: %w", err)
	}
	return nil
}

// GetSession 取回 (user_id, token) 完全吻合且尚未過期的資料列。
// 被新登入覆寫過的舊令牌即使簽章有效也查不到。
func GetSession(ctx context.Context, db database.DB, userID int, token string) (*model.Session, error) {
	row := db.QueryRow(ctx,
		`SELECT user_id, token, expires_at
		 FROM sessions
		 WHERE user_id = $1 AND token = $2 AND expires_at > now()`,
		userID,
		token,
	)
	s := &model.Session{}
	if err := row.Scan(&s.UserID, &s.Token, &s.ExpiresAt); err != nil {
		return nil, fmt.Errorf("GetSession: %w", err)
	}
	return s, nil
}

// DeleteSession 撤銷使用者當前的登入令牌
func DeleteSession(ctx context.Context, db database.DB, userID int) error {
	_, err := db.Exec(ctx,
		`DELETE FROM sessions WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteSession: %w", err)
	}
	return nil
}
