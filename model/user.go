package model

import (
	"fmt"
	"time"

	"hostelhub/platform"
)

// Role is the closed set of account roles. Keep switches over Role
// exhaustive; adding a role must be a deliberate decision at every branch.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStaff   Role = "staff"
	RoleStudent Role = "student"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleStaff:
		return RoleStaff, nil
	case RoleStudent:
		return RoleStudent, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// User 表示用户模型
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"type:varchar(255);not null;unique" json:"username"`
	Email     string    `gorm:"type:varchar(255);not null;unique" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Nickname  string    `json:"nickname"`
	Phone     string    `json:"phone"`
	Avatar    string    `json:"avatar"`
	Role      Role      `gorm:"type:varchar(16);index" json:"role"`
	RoomID    *uint     `gorm:"index" json:"room_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func UserExists(username, email string) bool {
	var count int64
	platform.DB.Model(&User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count)
	return count > 0
}

func CreateUser(user *User) error {
	return platform.DB.Create(user).Error
}

func GetUserByUsername(username string) (*User, error) {
	var user User
	if err := platform.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByID(id uint) (*User, error) {
	var user User
	if err := platform.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
