package service

import (
	"fmt"

	"hostelhub/model"
	"hostelhub/platform"
)

type ComplaintService struct {
}

func (cs *ComplaintService) File(userID uint, category, subject, body string) (*model.Complaint, error) {
	if subject == "" || body == "" {
		return nil, fmt.Errorf("%w: missing subject or body", ErrValidation)
	}

	complaint := model.Complaint{
		UserID:   userID,
		Category: category,
		Subject:  subject,
		Body:     body,
		Status:   model.ComplaintOpen,
	}
	if err := platform.DB.Create(&complaint).Error; err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (cs *ComplaintService) ListFor(userID uint) ([]model.Complaint, error) {
	var complaints []model.Complaint
	if err := platform.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

func (cs *ComplaintService) ListOpen() ([]model.Complaint, error) {
	var complaints []model.Complaint
	err := platform.DB.
		Where("status != ?", model.ComplaintResolved).
		Order("created_at ASC").
		Find(&complaints).Error
	if err != nil {
		return nil, err
	}
	return complaints, nil
}

func (cs *ComplaintService) UpdateStatus(complaintID uint, status model.ComplaintStatus, note string) error {
	switch status {
	case model.ComplaintOpen, model.ComplaintInProgress, model.ComplaintResolved:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	var complaint model.Complaint
	if err := platform.DB.First(&complaint, complaintID).Error; err != nil {
		return fmt.Errorf("%w: complaint %d", ErrNotFound, complaintID)
	}

	err := platform.DB.Model(&complaint).Updates(map[string]interface{}{
		"status":     status,
		"staff_note": note,
	}).Error
	if err != nil {
		return err
	}

	notificationService.Notify(complaint.UserID, "Complaint updated",
		fmt.Sprintf("Your complaint **%s** is now %s.", complaint.Subject, status))
	return nil
}
