package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"hostelhub/model"
	"hostelhub/platform"
	"hostelhub/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	os.Setenv("ACCESS_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))
	platform.DB = db
}

func setupRouter() *gin.Engine {
	r := gin.New()
	authCtrl := new(AuthController)
	message := new(MessageController)

	v1 := r.Group("/v1")
	v1.Use(func(c *gin.Context) {
		authCtrl.TokenValid(c)
		c.Next()
	})
	v1.GET("/messages", message.Get)
	v1.POST("/messages", message.Send)
	v1.POST("/conversations/accept", message.Accept)
	return r
}

func loginAs(t *testing.T, username string, role model.Role) (uint, string) {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, model.CreateUser(user))
	ts := service.TokenService{}
	td, err := ts.CreateToken(user.ID, user.Username, user.Role)
	require.NoError(t, err)
	return user.ID, td.AccessToken
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMessagesRequireAuth(t *testing.T) {
	setupTestDB(t)
	r := setupRouter()

	w := doJSON(r, http.MethodGet, "/v1/messages?type=primary", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/v1/messages", "", gin.H{"content": "hi", "receiverId": 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/v1/messages", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSendAndListOverHTTP(t *testing.T) {
	setupTestDB(t)
	r := setupRouter()
	_, aliceToken := loginAs(t, "alice", model.RoleStudent)
	bobID, bobToken := loginAs(t, "bob", model.RoleStudent)

	w := doJSON(r, http.MethodPost, "/v1/messages", aliceToken, gin.H{"content": "hello", "receiverId": bobID})
	require.Equal(t, http.StatusOK, w.Code)
	var sent model.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sent))
	assert.Equal(t, "hello", sent.Content)
	assert.Equal(t, bobID, sent.ReceiverID)

	// bob sees a request, not a primary thread
	w = doJSON(r, http.MethodGet, "/v1/messages?type=requests", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var inbox struct {
		Threads []service.ThreadSummary `json:"threads"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inbox))
	require.Len(t, inbox.Threads, 1)
	assert.Equal(t, sent.ConversationID, inbox.Threads[0].ConversationID)

	w = doJSON(r, http.MethodGet, "/v1/messages?type=primary", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inbox))
	assert.Empty(t, inbox.Threads)

	// bob accepts, thread moves to primary
	w = doJSON(r, http.MethodPost, "/v1/conversations/accept", bobToken, gin.H{"conversationId": sent.ConversationID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/v1/messages?type=primary", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inbox))
	require.Len(t, inbox.Threads, 1)
	assert.Equal(t, model.ConversationAccepted, inbox.Threads[0].Status)

	// history with alice via targetId
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/v1/messages?targetId=%d", inbox.Threads[0].OtherUserID), bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history struct {
		Messages []model.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history.Messages, 1)
	assert.Equal(t, "hello", history.Messages[0].Content)
}

func TestSendValidationOverHTTP(t *testing.T) {
	setupTestDB(t)
	r := setupRouter()
	aliceID, aliceToken := loginAs(t, "alice", model.RoleStudent)

	// sending to yourself is a validation error
	w := doJSON(r, http.MethodPost, "/v1/messages", aliceToken, gin.H{"content": "echo", "receiverId": aliceID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// missing fields fail binding
	w = doJSON(r, http.MethodPost, "/v1/messages", aliceToken, gin.H{"receiverId": aliceID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown receiver is a 404
	w = doJSON(r, http.MethodPost, "/v1/messages", aliceToken, gin.H{"content": "hi", "receiverId": 9999})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAcceptHidesMembership(t *testing.T) {
	setupTestDB(t)
	r := setupRouter()
	_, aliceToken := loginAs(t, "alice", model.RoleStudent)
	bobID, _ := loginAs(t, "bob", model.RoleStudent)
	_, eveToken := loginAs(t, "eve", model.RoleStudent)

	w := doJSON(r, http.MethodPost, "/v1/messages", aliceToken, gin.H{"content": "hello", "receiverId": bobID})
	require.Equal(t, http.StatusOK, w.Code)
	var sent model.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sent))

	// an outsider accepting gets the same answer as a missing conversation
	wForbidden := doJSON(r, http.MethodPost, "/v1/conversations/accept", eveToken, gin.H{"conversationId": sent.ConversationID})
	wMissing := doJSON(r, http.MethodPost, "/v1/conversations/accept", eveToken, gin.H{"conversationId": "no-such-conversation"})
	assert.Equal(t, http.StatusNotFound, wForbidden.Code)
	assert.Equal(t, http.StatusNotFound, wMissing.Code)
	assert.JSONEq(t, wMissing.Body.String(), wForbidden.Body.String())
}

func TestSearchOverHTTP(t *testing.T) {
	setupTestDB(t)
	r := setupRouter()
	_, aliceToken := loginAs(t, "alice", model.RoleStudent)
	bobID, _ := loginAs(t, "bob", model.RoleStudent)

	w := doJSON(r, http.MethodPost, "/v1/messages", aliceToken, gin.H{"content": "hello", "receiverId": bobID})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/v1/messages?search=bo", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var result struct {
		Users []service.Candidate `json:"users"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Users, 1)
	assert.Equal(t, bobID, result.Users[0].UserID)
	assert.Equal(t, model.ConversationPending, result.Users[0].Status)
}
