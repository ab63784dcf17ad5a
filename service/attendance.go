package service

import (
	"errors"
	"fmt"
	"time"

	"hostelhub/model"
	"hostelhub/platform"

	"gorm.io/gorm"
)

type AttendanceService struct {
}

const dayFormat = "2006-01-02"

// Mark records manual attendance for a user on a day. Re-marking the same
// day overwrites the previous status.
func (a *AttendanceService) Mark(markedBy, userID uint, day string, status model.AttendanceStatus) (*model.AttendanceRecord, error) {
	switch status {
	case model.AttendancePresent, model.AttendanceAbsent, model.AttendanceLeave:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	if _, err := time.Parse(dayFormat, day); err != nil {
		return nil, fmt.Errorf("%w: bad day %q", ErrValidation, day)
	}
	if _, err := model.GetUserByID(userID); err != nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	record := model.AttendanceRecord{
		UserID:   userID,
		Day:      day,
		Status:   status,
		Source:   "manual",
		MarkedBy: markedBy,
	}
	err := platform.DB.Create(&record).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = platform.DB.Model(&model.AttendanceRecord{}).
			Where("user_id = ? AND day = ?", userID, day).
			Updates(map[string]interface{}{
				"status":    status,
				"source":    "manual",
				"marked_by": markedBy,
			}).Error
		if err != nil {
			return nil, err
		}
		var existing model.AttendanceRecord
		if err := platform.DB.Where("user_id = ? AND day = ?", userID, day).First(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// KioskCheckIn records a present mark for a user the kiosk has already
// identified. The confidence value is stored as reported; no descriptor
// matching happens here. Checking in twice on one day is a no-op success.
func (a *AttendanceService) KioskCheckIn(userID uint, confidence float64) (*model.AttendanceRecord, error) {
	if _, err := model.GetUserByID(userID); err != nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	day := time.Now().Format(dayFormat)
	record := model.AttendanceRecord{
		UserID:     userID,
		Day:        day,
		Status:     model.AttendancePresent,
		Source:     "kiosk",
		Confidence: confidence,
		MarkedBy:   userID,
	}
	err := platform.DB.Create(&record).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		var existing model.AttendanceRecord
		if err := platform.DB.Where("user_id = ? AND day = ?", userID, day).First(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (a *AttendanceService) ListFor(userID uint, limit int) ([]model.AttendanceRecord, error) {
	if limit <= 0 || limit > 365 {
		limit = 31
	}
	var records []model.AttendanceRecord
	err := platform.DB.
		Where("user_id = ?", userID).
		Order("day DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
