// File: internal/service/token.go
package service

import (
	"errors"
	"fmt"
	"time"

	"maya-shop/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// 以下變數可於測試中替換
var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// CustomClaims 定義 JWT 負載內容：使用者 ID 與角色，
// 到期時間一律放在 RegisteredClaims.ExpiresAt。
type CustomClaims struct {
	UserID int    `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Auth 持有簽章金鑰與令牌有效期，啟動時由設定注入。
type Auth struct {
	secret []byte
	ttl    time.Duration
}

// NewAuth 建立 Auth。空金鑰屬於設定錯誤，直接回傳錯誤而非用空字串簽章。
func NewAuth(secret string, ttl time.Duration) (*Auth, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &Auth{secret: []byte(secret), ttl: ttl}, nil
}

// TTL 回傳令牌有效期
func (a *Auth) TTL() time.Duration {
	return a.ttl
}

// IssueAccessToken 依據使用者資訊產生 JWT，回傳令牌字串與到期時間。
// 到期時間同時寫進 claims，呼叫端須以相同的時間存進 sessions 資料列。
func (a *Auth) IssueAccessToken(user model.User) (string, time.Time, error) {
	now := timeNow()
	expiresAt := now.Add(a.ttl)
	claims := CustomClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// VerifyAccessToken 驗證並解析 JWT 令牌；只接受 HMAC 簽章
func (a *Auth) VerifyAccessToken(tokenString string) (*CustomClaims, error) {
	token, err := parseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
