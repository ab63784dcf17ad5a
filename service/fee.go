package service

import (
	"fmt"
	"time"

	"hostelhub/model"
	"hostelhub/platform"
)

type FeeService struct {
}

func (f *FeeService) Create(userID uint, label string, amount int64, dueDate time.Time) (*model.FeeRecord, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if _, err := model.GetUserByID(userID); err != nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	fee := model.FeeRecord{
		UserID:  userID,
		Label:   label,
		Amount:  amount,
		DueDate: dueDate,
		Status:  model.FeeDue,
	}
	if err := platform.DB.Create(&fee).Error; err != nil {
		return nil, err
	}
	notificationService.Notify(userID, "New fee posted",
		fmt.Sprintf("**%s** of amount %d is due by %s.", label, amount, dueDate.Format("2006-01-02")))
	return &fee, nil
}

func (f *FeeService) ListFor(userID uint) ([]model.FeeRecord, error) {
	var fees []model.FeeRecord
	if err := platform.DB.Where("user_id = ?", userID).Order("due_date ASC").Find(&fees).Error; err != nil {
		return nil, err
	}
	return fees, nil
}

// MarkPaid is idempotent; paying an already paid fee is a no-op.
func (f *FeeService) MarkPaid(feeID uint) error {
	var fee model.FeeRecord
	if err := platform.DB.First(&fee, feeID).Error; err != nil {
		return fmt.Errorf("%w: fee %d", ErrNotFound, feeID)
	}
	if fee.Status == model.FeePaid {
		return nil
	}
	now := time.Now()
	return platform.DB.Model(&fee).Updates(map[string]interface{}{
		"status":  model.FeePaid,
		"paid_at": &now,
	}).Error
}

// DueSoon lists unpaid fees falling due within the window, for the
// reminder task.
func (f *FeeService) DueSoon(window time.Duration) ([]model.FeeRecord, error) {
	var fees []model.FeeRecord
	err := platform.DB.
		Where("status = ? AND due_date <= ?", model.FeeDue, time.Now().Add(window)).
		Order("due_date ASC").
		Find(&fees).Error
	if err != nil {
		return nil, err
	}
	return fees, nil
}
