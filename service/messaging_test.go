package service

import (
	"testing"
	"time"

	"hostelhub/model"
	"hostelhub/platform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindOrCreateConversation(t *testing.T) {
	setupTestDB(t)
	s := MessagingService{}
	alice := createTestUser(t, "alice", model.RoleStudent)
	bob := createTestUser(t, "bob", model.RoleStudent)

	conv, err := s.FindOrCreateConversation(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ConversationPending, conv.Status)
	assert.Equal(t, alice.ID, conv.InitiatorID)
	assert.True(t, conv.HasMember(alice.ID))
	assert.True(t, conv.HasMember(bob.ID))

	// second resolution returns the same conversation unchanged,
	// regardless of which side asks
	again, err := s.FindOrCreateConversation(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, conv.ConversationID, again.ConversationID)
	assert.Equal(t, alice.ID, again.InitiatorID)

	var count int64
	platform.DB.Model(&model.Conversation{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestFindOrCreateConversationValidation(t *testing.T) {
	setupTestDB(t)
	s := MessagingService{}
	alice := createTestUser(t, "alice", model.RoleStudent)

	_, err := s.FindOrCreateConversation(alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.FindOrCreateConversation(alice.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.FindOrCreateConversation(alice.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPairKeyCanonical(t *testing.T) {
	assert.Equal(t, model.PairKeyFor(2, 7), model.PairKeyFor(7, 2))
	assert.NotEqual(t, model.PairKeyFor(1, 2), model.PairKeyFor(1, 3))
}

func TestAppendAndListMessages(t *testing.T) {
	setupTestDB(t)
	s := MessagingService{}
	alice := createTestUser(t, "alice", model.RoleStudent)
	bob := createTestUser(t, "bob", model.RoleStudent)

	conv, err := s.FindOrCreateConversation(alice.ID, bob.ID)
	require.NoError(t, err)

	for _, content := range []string{"hello", "are you there?", "ping"} {
		_, err := s.Append(conv.ConversationID, alice.ID, bob.ID, content)
		require.NoError(t, err)
	}
	last, err := s.Append(conv.ConversationID, bob.ID, alice.ID, "pong")
	require.NoError(t, err)

	messages, err := s.ListMessages(conv.ConversationID)
	require.NoError(t, err)
	require.Len(t, messages, 4)
	assert.Equal(t, "hello", messages[0].Content)
	assert.Equal(t, last.ID, messages[3].ID)
	for i := 1; i < len(messages); i++ {
		assert.False(t, messages[i].CreatedAt.Before(messages[i-1].CreatedAt))
	}

	// activity stamp and preview follow the last append
	var stamped model.Conversation
	require.NoError(t, platform.DB.Where("conversation_id = ?", conv.ConversationID).First(&stamped).Error)
	assert.Equal(t, "pong", stamped.LastMessagePreview)
	assert.True(t, stamped.LastMessageAt.After(conv.LastMessageAt) || stamped.LastMessageAt.Equal(conv.LastMessageAt))
}

func TestAppendValidation(t *testing.T) {
	setupTestDB(t)
	s := MessagingService{}
	alice := createTestUser(t, "alice", model.RoleStudent)
	bob := createTestUser(t, "bob", model.RoleStudent)
	eve := createTestUser(t, "eve", model.RoleStudent)

	conv, err := s.FindOrCreateConversation(alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = s.Append(conv.ConversationID, alice.ID, bob.ID, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.Append("no-such-conversation", alice.ID, bob.ID, "hi")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Append(conv.ConversationID, eve.ID, bob.ID, "hi")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSendMessageFirstContact(t *testing.T) {
	setupTestDB(t)
	s := MessagingService{}
	alice := createTestUser(t, "alice", model.RoleStudent)
	bob := createTestUser(t, "bob", model.RoleStudent)

	message, err := s.SendMessage(alice.ID, bob.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, message.SenderID)
	assert.Equal(t, bob.ID, message.ReceiverID)

	// the new pending conversation shows up as a request for bob and in
	// alice's primary list, and nowhere else
	requests, err := s.ListThreads(bob.ID, BoxRequests)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, message.ConversationID, requests[0].ConversationID)
	assert.Equal(t, alice.ID, requests[0].InitiatorID)
	assert.Equal(t, model.ConversationPending, requests[0].Status)

	alicePrimary, err := s.ListThreads(alice.ID, BoxPrimary)
	require.NoError(t, err)
	require.Len(t, alicePrimary, 1)
	assert.Equal(t, "hello", alicePrimary[0].Preview)

	bobPrimary, err := s.ListThreads(bob.ID, BoxPrimary)
	require.NoError(t, err)
	assert.Empty(t, bobPrimary)

	aliceRequests, err := s.ListThreads(alice.ID, BoxRequests)
	require.NoError(t, err)
	assert.Empty(t, aliceRequests)

	// bob got a message-request notification
	var notifications []model.Notification
	require.NoError(t, platform.DB.Where("user_id = ?", bob.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)

	// a second send must not notify again
	_, err = s.SendMessage(alice.ID, bob.ID, "still there?")
	require.NoError(t, err)
	require.NoError(t, platform.DB.Where("user_id = ?", bob.ID).Find(&notifications).Error)
	assert.Len(t, notifications, 1)
}

func TestSendMessageToSelf(t *testing.T) {
	setupTestDB(t)
	s := MessagingService{}
	alice := createTestUser(t, "alice", model.RoleStudent)

	_, err := s.SendMessage(alice.ID, alice.ID, "echo")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAcceptTransition(t *testing.T) {
	setupTestDB(t)
	s := MessagingService{}
	alice := createTestUser(t, "alice", model.RoleStudent)
	bob := createTestUser(t, "bob", model.RoleStudent)
	eve := createTestUser(t, "eve", model.RoleStudent)

	_, err := s.SendMessage(alice.ID, bob.ID, "hello")
	require.NoError(t, err)
	requests, err := s.ListThreads(bob.ID, BoxRequests)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	convID := requests[0].ConversationID

	// outsiders get the not-found answer
	assert.ErrorIs(t, s.Accept(eve.ID, convID), ErrForbidden)
	assert.ErrorIs(t, s.Accept(bob.ID, "no-such-conversation"), ErrNotFound)

	require.NoError(t, s.Accept(bob.ID, convID))

	bobPrimary, err := s.ListThreads(bob.ID, BoxPrimary)
	require.NoError(t, err)
	require.Len(t, bobPrimary, 1)
	assert.Equal(t, model.ConversationAccepted, bobPrimary[0].Status)
	bobRequests, err := s.ListThreads(bob.ID, BoxRequests)
	require.NoError(t, err)
	assert.Empty(t, bobRequests)

	// accepting again is a no-op success
	require.NoError(t, s.Accept(bob.ID, convID))
	require.NoError(t, s.Accept(alice.ID, convID))
}

func TestListThreadsOrdering(t *testing.T) {
	setupTestDB(t)
	s := MessagingService{}
	alice := createTestUser(t, "alice", model.RoleStudent)
	bob := createTestUser(t, "bob", model.RoleStudent)
	carol := createTestUser(t, "carol", model.RoleStaff)

	_, err := s.SendMessage(alice.ID, bob.ID, "first thread")
	require.NoError(t, err)
	_, err = s.SendMessage(alice.ID, carol.ID, "second thread")
	require.NoError(t, err)

	// bump the bob thread to the top again
	_, err = s.SendMessage(alice.ID, bob.ID, "newest activity")
	require.NoError(t, err)
	require.NoError(t, platform.DB.Model(&model.Conversation{}).
		Where("pair_key = ?", model.PairKeyFor(alice.ID, carol.ID)).
		Update("last_message_at", time.Now().Add(-24*time.Hour)).Error)

	threads, err := s.ListThreads(alice.ID, BoxPrimary)
	require.NoError(t, err)
	require.Len(t, threads, 2)
	assert.Equal(t, bob.ID, threads[0].OtherUserID)
	assert.Equal(t, carol.ID, threads[1].OtherUserID)
	assert.Equal(t, model.RoleStaff, threads[1].OtherRole)
}

func TestListThreadsUnknownBox(t *testing.T) {
	setupTestDB(t)
	s := MessagingService{}
	alice := createTestUser(t, "alice", model.RoleStudent)

	_, err := s.ListThreads(alice.ID, ThreadBox("archived"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMessagesWith(t *testing.T) {
	setupTestDB(t)
	s := MessagingService{}
	alice := createTestUser(t, "alice", model.RoleStudent)
	bob := createTestUser(t, "bob", model.RoleStudent)

	// no prior conversation yields an empty list, not an error
	messages, err := s.MessagesWith(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)

	_, err = s.SendMessage(alice.ID, bob.ID, "hello")
	require.NoError(t, err)

	messages, err = s.MessagesWith(bob.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "hello", messages[0].Content)
}

func TestSearchCandidates(t *testing.T) {
	setupTestDB(t)
	s := MessagingService{}
	alice := createTestUser(t, "alice", model.RoleStudent)
	bob := createTestUser(t, "bob", model.RoleStudent)
	createTestUser(t, "bobby", model.RoleStaff)

	_, err := s.SendMessage(alice.ID, bob.ID, "hello")
	require.NoError(t, err)

	candidates, err := s.SearchCandidates(alice.ID, "bob")
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "bob", candidates[0].Username)
	assert.Equal(t, model.ConversationPending, candidates[0].Status)
	assert.NotEmpty(t, candidates[0].ConversationID)
	assert.Empty(t, candidates[1].ConversationID)

	// the caller never matches themselves
	candidates, err = s.SearchCandidates(alice.ID, "alice")
	require.NoError(t, err)
	assert.Empty(t, candidates)

	candidates, err = s.SearchCandidates(alice.ID, "")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestMalformedSelfConversationFiltered(t *testing.T) {
	setupTestDB(t)
	s := MessagingService{}
	alice := createTestUser(t, "alice", model.RoleStudent)

	// simulate a corrupted row joining a user to themselves
	require.NoError(t, platform.DB.Create(&model.Conversation{
		ConversationID: "corrupt",
		PairKey:        model.PairKeyFor(alice.ID, alice.ID),
		MemberAID:      alice.ID,
		MemberBID:      alice.ID,
		InitiatorID:    alice.ID,
		Status:         model.ConversationAccepted,
	}).Error)

	threads, err := s.ListThreads(alice.ID, BoxPrimary)
	require.NoError(t, err)
	assert.Empty(t, threads)
}
