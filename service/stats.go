package service

import (
	"time"

	"hostelhub/model"
	"hostelhub/platform"
)

type StatsService struct {
}

// Stats are the admin dashboard counters.
type Stats struct {
	Students        int64 `json:"students"`
	Staff           int64 `json:"staff"`
	Rooms           int64 `json:"rooms"`
	OpenComplaints  int64 `json:"open_complaints"`
	PendingLeaves   int64 `json:"pending_leaves"`
	FeesDue         int64 `json:"fees_due"`
	PresentToday    int64 `json:"present_today"`
	PendingRequests int64 `json:"pending_message_requests"`
}

func (s *StatsService) Collect() (*Stats, error) {
	var stats Stats
	db := platform.DB
	today := time.Now().Format(dayFormat)

	counts := []func() error{
		func() error {
			return db.Model(&model.User{}).Where("role = ?", model.RoleStudent).Count(&stats.Students).Error
		},
		func() error {
			return db.Model(&model.User{}).Where("role = ?", model.RoleStaff).Count(&stats.Staff).Error
		},
		func() error {
			return db.Model(&model.Room{}).Count(&stats.Rooms).Error
		},
		func() error {
			return db.Model(&model.Complaint{}).Where("status != ?", model.ComplaintResolved).Count(&stats.OpenComplaints).Error
		},
		func() error {
			return db.Model(&model.LeaveRequest{}).Where("status = ?", model.LeavePending).Count(&stats.PendingLeaves).Error
		},
		func() error {
			return db.Model(&model.FeeRecord{}).Where("status = ?", model.FeeDue).Count(&stats.FeesDue).Error
		},
		func() error {
			return db.Model(&model.AttendanceRecord{}).Where("day = ? AND status = ?", today, model.AttendancePresent).Count(&stats.PresentToday).Error
		},
		func() error {
			return db.Model(&model.Conversation{}).Where("status = ?", model.ConversationPending).Count(&stats.PendingRequests).Error
		},
	}
	for _, count := range counts {
		if err := count(); err != nil {
			return nil, err
		}
	}
	return &stats, nil
}
