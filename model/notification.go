package model

import "time"

// Notification 用户通知, body is markdown.
type Notification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index:idx_notification_user_created_at" json:"user_id"`
	Title     string    `gorm:"type:varchar(255)" json:"title"`
	Body      string    `json:"body"`
	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `gorm:"index:idx_notification_user_created_at" json:"created_at"`
}
