package model

import "time"

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

type LeaveRequest struct {
	ID        uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint        `gorm:"index" json:"user_id"`
	FromDate  time.Time   `json:"from_date"`
	ToDate    time.Time   `json:"to_date"`
	Reason    string      `json:"reason"`
	Status    LeaveStatus `gorm:"type:varchar(10);index" json:"status"`
	DecidedBy *uint       `json:"decided_by"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}
