package model

import "time"

type ComplaintStatus string

const (
	ComplaintOpen       ComplaintStatus = "open"
	ComplaintInProgress ComplaintStatus = "in_progress"
	ComplaintResolved   ComplaintStatus = "resolved"
)

type Complaint struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint            `gorm:"index" json:"user_id"`
	Category  string          `gorm:"type:varchar(64)" json:"category"`
	Subject   string          `gorm:"type:varchar(255)" json:"subject"`
	Body      string          `json:"body"`
	Status    ComplaintStatus `gorm:"type:varchar(16);index" json:"status"`
	StaffNote string          `json:"staff_note"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
