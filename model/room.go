package model

import "time"

// Room 宿舍房间模型
type Room struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Number    string    `gorm:"type:varchar(16);not null;unique" json:"number"`
	Floor     int       `json:"floor"`
	Capacity  int       `json:"capacity"`
	Occupied  int       `json:"occupied"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
