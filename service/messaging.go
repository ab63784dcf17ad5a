package service

import (
	"errors"
	"fmt"
	"time"

	"hostelhub/model"
	"hostelhub/platform"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const previewLen = 80

type MessagingService struct {
}

// ThreadBox selects which side of the inbox a listing returns.
type ThreadBox string

const (
	BoxPrimary  ThreadBox = "primary"
	BoxRequests ThreadBox = "requests"
)

// ThreadSummary is one conversation seen from the caller's side.
type ThreadSummary struct {
	ConversationID string                   `json:"conversation_id"`
	OtherUserID    uint                     `json:"other_user_id"`
	OtherUsername  string                   `json:"other_username"`
	OtherNickname  string                   `json:"other_nickname"`
	OtherRole      model.Role               `json:"other_role"`
	OtherAvatar    string                   `json:"other_avatar"`
	Preview        string                   `json:"preview"`
	Status         model.ConversationStatus `json:"status"`
	InitiatorID    uint                     `json:"initiator_id"`
	LastMessageAt  time.Time                `json:"last_message_at"`
}

// Candidate is a user matched by search, annotated with any existing
// conversation between them and the caller.
type Candidate struct {
	UserID         uint                     `json:"user_id"`
	Username       string                   `json:"username"`
	Nickname       string                   `json:"nickname"`
	Role           model.Role               `json:"role"`
	Avatar         string                   `json:"avatar"`
	ConversationID string                   `json:"conversation_id,omitempty"`
	Status         model.ConversationStatus `json:"status,omitempty"`
}

// FindOrCreateConversation returns the single conversation joining the
// caller and the other user, creating it in PENDING state on first
// contact. The pair-key unique index makes the create conditional: if a
// concurrent call wins the insert, the duplicate-key error is resolved by
// re-reading the winner's row.
func (s *MessagingService) FindOrCreateConversation(callerID, otherID uint) (*model.Conversation, error) {
	if callerID == 0 || otherID == 0 {
		return nil, fmt.Errorf("%w: missing participant id", ErrValidation)
	}
	if callerID == otherID {
		return nil, fmt.Errorf("%w: cannot start a conversation with yourself", ErrValidation)
	}
	if _, err := model.GetUserByID(otherID); err != nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, otherID)
	}

	key := model.PairKeyFor(callerID, otherID)

	var existing model.Conversation
	err := platform.DB.Where("pair_key = ?", key).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv := model.Conversation{
		ConversationID: uuid.New().String(),
		PairKey:        key,
		MemberAID:      callerID,
		MemberBID:      otherID,
		InitiatorID:    callerID,
		Status:         model.ConversationPending,
		LastMessageAt:  time.Now(),
	}
	if err := platform.DB.Create(&conv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost the race, the other sender's row is the one
			if err := platform.DB.Where("pair_key = ?", key).First(&existing).Error; err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}
	return &conv, nil
}

// Append records a message and stamps the conversation's activity time.
// The two writes are separate; a crash in between leaves the message
// durable with a stale ordering timestamp, which the thread list
// tolerates.
func (s *MessagingService) Append(conversationID string, senderID, receiverID uint, content string) (*model.Message, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: empty message content", ErrValidation)
	}

	var conv model.Conversation
	if err := platform.DB.Where("conversation_id = ?", conversationID).First(&conv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: conversation %s", ErrNotFound, conversationID)
		}
		return nil, err
	}
	if !conv.HasMember(senderID) || !conv.HasMember(receiverID) {
		return nil, fmt.Errorf("%w: not a conversation member", ErrForbidden)
	}

	message := model.Message{
		ConversationID: conv.ConversationID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        content,
	}
	if err := platform.DB.Create(&message).Error; err != nil {
		return nil, err
	}

	if err := platform.DB.Model(&model.Conversation{}).
		Where("conversation_id = ?", conv.ConversationID).
		Updates(map[string]interface{}{
			"last_message_at":      time.Now(),
			"last_message_preview": truncate(content, previewLen),
		}).Error; err != nil {
		logger.Warnf("Failed to stamp conversation %s activity: %v", conv.ConversationID, err)
	}
	return &message, nil
}

// SendMessage resolves the conversation with the receiver and appends.
// On first contact the receiver also gets a message-request notification.
func (s *MessagingService) SendMessage(callerID, receiverID uint, content string) (*model.Message, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: empty message content", ErrValidation)
	}

	key := model.PairKeyFor(callerID, receiverID)
	var known int64
	platform.DB.Model(&model.Conversation{}).Where("pair_key = ?", key).Count(&known)

	conv, err := s.FindOrCreateConversation(callerID, receiverID)
	if err != nil {
		return nil, err
	}

	message, err := s.Append(conv.ConversationID, callerID, receiverID, content)
	if err != nil {
		return nil, err
	}

	if known == 0 {
		caller, err := model.GetUserByID(callerID)
		if err == nil {
			notificationService.Notify(receiverID, "New message request",
				fmt.Sprintf("**%s** wants to start a conversation with you.", caller.Username))
		}
	}
	hub.Push(receiverID, Event{Type: "message", Payload: message})
	return message, nil
}

// ListMessages returns the full history of a conversation, oldest first.
func (s *MessagingService) ListMessages(conversationID string) ([]model.Message, error) {
	var messages []model.Message
	err := platform.DB.
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// MessagesWith returns the caller's history with the target user, or an
// empty list when they have never talked.
func (s *MessagingService) MessagesWith(callerID, targetID uint) ([]model.Message, error) {
	var conv model.Conversation
	err := platform.DB.Where("pair_key = ?", model.PairKeyFor(callerID, targetID)).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []model.Message{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.ListMessages(conv.ConversationID)
}

// ListThreads returns the caller's inbox, most recently active first.
// Primary holds accepted conversations plus pending ones the caller
// initiated; requests holds pending conversations initiated by the other
// party. The two sets are disjoint.
func (s *MessagingService) ListThreads(callerID uint, box ThreadBox) ([]ThreadSummary, error) {
	q := platform.DB.Where("member_a_id = ? OR member_b_id = ?", callerID, callerID)
	switch box {
	case BoxPrimary:
		q = q.Where("status = ? OR (status = ? AND initiator_id = ?)",
			model.ConversationAccepted, model.ConversationPending, callerID)
	case BoxRequests:
		q = q.Where("status = ? AND initiator_id != ?", model.ConversationPending, callerID)
	default:
		return nil, fmt.Errorf("%w: unknown box %q", ErrValidation, box)
	}

	var conversations []model.Conversation
	if err := q.Order("last_message_at DESC").Find(&conversations).Error; err != nil {
		return nil, err
	}

	otherIDs := make([]uint, 0, len(conversations))
	for _, conv := range conversations {
		if other, ok := conv.OtherMember(callerID); ok {
			otherIDs = append(otherIDs, other)
		}
	}
	users := make(map[uint]model.User, len(otherIDs))
	if len(otherIDs) > 0 {
		var rows []model.User
		if err := platform.DB.Where("id IN ?", otherIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, u := range rows {
			users[u.ID] = u
		}
	}

	summaries := make([]ThreadSummary, 0, len(conversations))
	for _, conv := range conversations {
		other, ok := conv.OtherMember(callerID)
		if !ok {
			// malformed self-conversation, skip rather than error
			continue
		}
		u, ok := users[other]
		if !ok {
			continue
		}
		summaries = append(summaries, ThreadSummary{
			ConversationID: conv.ConversationID,
			OtherUserID:    u.ID,
			OtherUsername:  u.Username,
			OtherNickname:  u.Nickname,
			OtherRole:      u.Role,
			OtherAvatar:    u.Avatar,
			Preview:        conv.LastMessagePreview,
			Status:         conv.Status,
			InitiatorID:    conv.InitiatorID,
			LastMessageAt:  conv.LastMessageAt,
		})
	}
	return summaries, nil
}

// Accept marks the conversation accepted. Accepting an already accepted
// conversation is a no-op. Non-members get the same error as a missing
// conversation so membership cannot be probed.
func (s *MessagingService) Accept(callerID uint, conversationID string) error {
	var conv model.Conversation
	if err := platform.DB.Where("conversation_id = ?", conversationID).First(&conv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: conversation %s", ErrNotFound, conversationID)
		}
		return err
	}
	if !conv.HasMember(callerID) {
		return fmt.Errorf("%w: not a conversation member", ErrForbidden)
	}
	if conv.Status == model.ConversationAccepted {
		return nil
	}
	return platform.DB.Model(&model.Conversation{}).
		Where("conversation_id = ?", conversationID).
		Update("status", model.ConversationAccepted).Error
}

// SearchCandidates matches users by username or nickname and annotates
// each with the caller's existing conversation, if any.
func (s *MessagingService) SearchCandidates(callerID uint, query string) ([]Candidate, error) {
	if query == "" {
		return []Candidate{}, nil
	}

	var users []model.User
	pattern := "%" + query + "%"
	err := platform.DB.
		Where("(username LIKE ? OR nickname LIKE ?) AND id != ?", pattern, pattern, callerID).
		Order("username ASC").
		Limit(20).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(users))
	for _, u := range users {
		c := Candidate{
			UserID:   u.ID,
			Username: u.Username,
			Nickname: u.Nickname,
			Role:     u.Role,
			Avatar:   u.Avatar,
		}
		var conv model.Conversation
		err := platform.DB.Where("pair_key = ?", model.PairKeyFor(callerID, u.ID)).First(&conv).Error
		if err == nil {
			c.ConversationID = conv.ConversationID
			c.Status = conv.Status
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
