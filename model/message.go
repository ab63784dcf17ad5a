package model

import "time"

type Message struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID string    `gorm:"type:varchar(36);index:idx_conversation_id_created_at" json:"conversation_id"`
	SenderID       uint      `json:"sender_id"`
	ReceiverID     uint      `json:"receiver_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `gorm:"index:idx_conversation_id_created_at" json:"created_at"`
}

// AssistantMessage is one turn of a user's exchange with the LLM
// assistant, kept separate from direct messages between users.
type AssistantMessage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index:idx_assistant_user_created_at" json:"user_id"`
	Role      string    `gorm:"type:varchar(64)" json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `gorm:"index:idx_assistant_user_created_at" json:"created_at"`
}
