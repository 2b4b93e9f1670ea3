// File: internal/model/user.go
package model

import "time"

// 使用者角色，註冊時僅允許這兩種
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// DefaultProfilePic 為新帳號的預設大頭貼
const DefaultProfilePic = "https://i.pinimg.com/474x/18/b5/b5/18b5b599bb873285bd4def283c0d3c09.jpg"

// DefaultGender 為未指定性別時的預設值
const DefaultGender = "Not specified"

type User struct {
	ID           int       `db:"id" json:"id"`
	Firstname    string    `db:"firstname" json:"firstname"`
	Lastname     string    `db:"lastname" json:"lastname"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	ProfilePic   string    `db:"profile_pic" json:"profilePic"`
	Gender       string    `db:"gender" json:"gender"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// UserPatch 列出個人資料可被部分更新的欄位，nil 表示不更動。
// 欄位集合在編譯期固定，呼叫端無法擴充要更新的欄位。
type UserPatch struct {
	Firstname  *string
	Lastname   *string
	Gender     *string
	ProfilePic *string
}

// Empty 回報是否沒有任何欄位要更新
func (p UserPatch) Empty() bool {
	return p.Firstname == nil && p.Lastname == nil && p.Gender == nil && p.ProfilePic == nil
}
