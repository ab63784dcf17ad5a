package model

import (
	"fmt"
	"time"
)

type ConversationStatus string

const (
	ConversationPending  ConversationStatus = "PENDING"
	ConversationAccepted ConversationStatus = "ACCEPTED"
)

// Conversation 私聊会话模型, exactly two members.
// PairKey is the canonical "min:max" of the two member ids; its unique
// index is what keeps concurrent first-contact sends from creating two
// conversations for the same pair.
type Conversation struct {
	ConversationID     string             `gorm:"primaryKey;type:varchar(36)" json:"conversation_id"`
	PairKey            string             `gorm:"type:varchar(64);uniqueIndex" json:"-"`
	MemberAID          uint               `gorm:"index" json:"member_a_id"`
	MemberBID          uint               `gorm:"index" json:"member_b_id"`
	InitiatorID        uint               `json:"initiator_id"`
	Status             ConversationStatus `gorm:"type:varchar(10);index" json:"status"`
	LastMessageAt      time.Time          `gorm:"index" json:"last_message_at"`
	LastMessagePreview string             `gorm:"type:varchar(128)" json:"last_message_preview"`
	CreatedAt          time.Time          `gorm:"autoCreateTime" json:"created_at"`
}

// PairKeyFor orders the two ids so that (a,b) and (b,a) map to one key.
func PairKeyFor(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// HasMember reports whether id is one of the two participants.
func (c *Conversation) HasMember(id uint) bool {
	return c.MemberAID == id || c.MemberBID == id
}

// OtherMember returns the participant that is not id. The second return
// is false for malformed rows (self-conversations), which callers skip.
func (c *Conversation) OtherMember(id uint) (uint, bool) {
	if c.MemberAID == c.MemberBID {
		return 0, false
	}
	if c.MemberAID == id {
		return c.MemberBID, true
	}
	return c.MemberAID, true
}
