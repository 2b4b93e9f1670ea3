// File: internal/store/user.go
package store

import (
	"context"
	"errors"
	"fmt"

	"maya-shop/internal/database"
	"maya-shop/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

const userColumns = `id, firstname, lastname, email, password_hash, role, profile_pic, gender, created_at, updated_at`

// 唯一性約束名稱，違反時由 IsUniqueViolation 對應回 400
const (
	ConstraintUserEmail   = "users_email_key"
	ConstraintSingleAdmin = "users_single_admin_idx"
)

// IsUniqueViolation 回報 err 是否為指定約束的唯一性違反 (SQLSTATE 23505)
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" && (constraint == "" || pgErr.ConstraintName == constraint)
}

func scanUser(row interface{ Scan(dest ...any) error }) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Firstname,
		&u.Lastname,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.ProfilePic,
		&u.Gender,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return u, nil
}

func GetUserByRole(ctx context.Context, db database.DB, role string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = $1 LIMIT 1`,
		role,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("GetUserByRole: %w", err)
	}
	return u, nil
}

// CreateUser 新增使用者並回填產生的 id 與時間戳。
// 失敗時一律回傳錯誤，不會回傳不完整的使用者。
func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (firstname, lastname, email, password_hash, role, profile_pic, gender)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		u.Firstname,
		u.Lastname,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.ProfilePic,
		u.Gender,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

// UpdateUserProfile 依 patch 更新固定的可選欄位，nil 欄位保持原值，
// 回傳更新後的資料列。查無資料列時回傳 pgx.ErrNoRows 包裝錯誤。
func UpdateUserProfile(ctx context.Context, db database.DB, userID int, patch model.UserPatch) (*model.User, error) {
	row := db.QueryRow(ctx,
		`UPDATE users
		 SET firstname   = COALESCE($2, firstname),
		     lastname    = COALESCE($3, lastname),
		     gender      = COALESCE($4, gender),
		     profile_pic = COALESCE($5, profile_pic),
		     updated_at  = now()
		 WHERE id = $1
		 RETURNING `+userColumns,
		userID,
		patch.Firstname,
		patch.Lastname,
		patch.Gender,
		patch.ProfilePic,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("UpdateUserProfile: %w", err)
	}
	return u, nil
}

func UpdateUserPassword(ctx context.Context, db database.DB, userID int, passwordHash string) error {
	_, err := db.Exec(ctx,
		`UPDATE users
		 SET password_hash = $1, updated_at = now()
		 WHERE id = $2`,
		passwordHash,
		userID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserPassword: %w", err)
	}
	return nil
}

func DeleteUser(ctx context.Context, db database.DB, userID int) error {
	_, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	return nil
}
