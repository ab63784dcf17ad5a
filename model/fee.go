package model

import "time"

type FeeStatus string

const (
	FeeDue  FeeStatus = "due"
	FeePaid FeeStatus = "paid"
)

// FeeRecord 费用记录
type FeeRecord struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint       `gorm:"index" json:"user_id"`
	Label     string     `gorm:"type:varchar(128)" json:"label"`
	Amount    int64      `json:"amount"` // smallest currency unit
	DueDate   time.Time  `gorm:"index" json:"due_date"`
	Status    FeeStatus  `gorm:"type:varchar(10);index" json:"status"`
	PaidAt    *time.Time `json:"paid_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
