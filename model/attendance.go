package model

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLeave   AttendanceStatus = "leave"
)

// AttendanceRecord is one user's attendance for one calendar day.
// Kiosk check-ins arrive with the user already identified by the browser
// recognition library; Confidence is stored as reported, nothing is
// matched server-side.
type AttendanceRecord struct {
	ID         uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint             `gorm:"uniqueIndex:idx_attendance_user_day" json:"user_id"`
	Day        string           `gorm:"type:varchar(10);uniqueIndex:idx_attendance_user_day" json:"day"`
	Status     AttendanceStatus `gorm:"type:varchar(10)" json:"status"`
	Source     string           `gorm:"type:varchar(10)" json:"source"` // "manual" or "kiosk"
	Confidence float64          `json:"confidence,omitempty"`
	MarkedBy   uint             `json:"marked_by"`
	CreatedAt  time.Time        `gorm:"autoCreateTime" json:"created_at"`
}
