package service

import (
	"fmt"
	"time"

	"hostelhub/model"
	"hostelhub/platform"
)

type LeaveService struct {
}

func (l *LeaveService) Request(userID uint, from, to time.Time, reason string) (*model.LeaveRequest, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: missing reason", ErrValidation)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: leave ends before it starts", ErrValidation)
	}

	leave := model.LeaveRequest{
		UserID:   userID,
		FromDate: from,
		ToDate:   to,
		Reason:   reason,
		Status:   model.LeavePending,
	}
	if err := platform.DB.Create(&leave).Error; err != nil {
		return nil, err
	}
	return &leave, nil
}

func (l *LeaveService) ListFor(userID uint) ([]model.LeaveRequest, error) {
	var leaves []model.LeaveRequest
	if err := platform.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}

func (l *LeaveService) ListPending() ([]model.LeaveRequest, error) {
	var leaves []model.LeaveRequest
	err := platform.DB.
		Where("status = ?", model.LeavePending).
		Order("created_at ASC").
		Find(&leaves).Error
	if err != nil {
		return nil, err
	}
	return leaves, nil
}

// Decide approves or rejects a pending request. Decisions are terminal;
// deciding an already decided request fails with a conflict.
func (l *LeaveService) Decide(deciderID, leaveID uint, approve bool) error {
	var leave model.LeaveRequest
	if err := platform.DB.First(&leave, leaveID).Error; err != nil {
		return fmt.Errorf("%w: leave request %d", ErrNotFound, leaveID)
	}
	if leave.Status != model.LeavePending {
		return fmt.Errorf("%w: leave request already %s", ErrConflict, leave.Status)
	}

	status := model.LeaveRejected
	if approve {
		status = model.LeaveApproved
	}
	err := platform.DB.Model(&leave).Updates(map[string]interface{}{
		"status":     status,
		"decided_by": &deciderID,
	}).Error
	if err != nil {
		return err
	}

	notificationService.Notify(leave.UserID, "Leave request "+string(status),
		fmt.Sprintf("Your leave from %s to %s was **%s**.",
			leave.FromDate.Format("2006-01-02"), leave.ToDate.Format("2006-01-02"), status))
	if student, err := model.GetUserByID(leave.UserID); err == nil && student.Email != "" {
		if err := notificationService.SendEmail(student.Email,
			"Leave request "+string(status),
			fmt.Sprintf("Your leave from %s to %s was **%s**.",
				leave.FromDate.Format("2006-01-02"), leave.ToDate.Format("2006-01-02"), status)); err != nil {
			logger.Warnf("Failed to email leave decision to %s: %v", student.Email, err)
		}
	}
	return nil
}
