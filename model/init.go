package model

import (
	"hostelhub/platform"

	"gorm.io/gorm"
)

// Migrate runs auto-migration for every table on the given connection.
// Tests call it directly with an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Room{},
		&Conversation{},
		&Message{},
		&AssistantMessage{},
		&AttendanceRecord{},
		&FeeRecord{},
		&Complaint{},
		&LeaveRequest{},
		&Notification{},
	)
}

func InstallDB() {
	if err := Migrate(platform.DB); err != nil {
		panic(err)
	}
}
