package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"hostelhub/model"
	"hostelhub/platform"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/gin-gonic/gin"
	"github.com/openai/openai-go"
)

var logger = platform.Logger

const assistantPrompt = "You are the hostel help desk assistant. Answer questions about hostel rules, " +
	"rooms, fees, attendance, leave requests and complaints. Be brief and practical. " +
	"If a question needs a staff decision, say so instead of guessing."

type AssistantService struct {
}

func openAIModel() string {
	if m := os.Getenv("LLM_MODEL"); m != "" {
		return m
	}
	return "qwen-turbo"
}

func getMKData(c *gin.Context, url string) (string, error) {
	res, err := http.Get(url)
	if err != nil {
		logger.Warnf("[%s] request %s error, %s", c.GetString("requestId"), url, err)
		return "", err
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		logger.Warnf("[%s] read body error, %s", c.GetString("requestId"), err)
		return "", err
	}

	content, err := htmltomarkdown.ConvertString(string(data))
	if err != nil {
		logger.Warnf("[%s] transfer body error, %s", c.GetString("requestId"), err)
		return "", err
	}
	return content, nil
}

// Chat streams an assistant reply for the user's prompt over SSE. The
// last few turns of the user's history are replayed for context and both
// new turns are persisted.
func (s *AssistantService) Chat(c *gin.Context, userID uint, prompt string) error {
	if prompt == "" {
		return fmt.Errorf("%w: empty prompt", ErrValidation)
	}

	w := c.Writer
	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.Warnf("[%s] get Writer flusher error", c.GetString("requestId"))
		return errors.New("get Writer flusher error")
	}

	var history []model.AssistantMessage
	if err := platform.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(10).
		Find(&history).Error; err != nil {
		logger.Warnf("[%s] load assistant history error, %s", c.GetString("requestId"), err)
	}

	type turn struct {
		Role    openai.ChatCompletionMessageParamRole
		Content string
	}
	turns := []turn{{Role: "system", Content: assistantPrompt}}
	for i := len(history) - 1; i >= 0; i-- {
		turns = append(turns, turn{
			Role:    openai.ChatCompletionMessageParamRole(history[i].Role),
			Content: history[i].Content,
		})
	}
	turns = append(turns, turn{Role: "user", Content: prompt})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	params := openai.ChatCompletionNewParams{
		Messages:    openai.F([]openai.ChatCompletionMessageParamUnion{}),
		Model:       openai.F(openAIModel()),
		Temperature: openai.F(0.7),
		StreamOptions: openai.F(openai.ChatCompletionStreamOptionsParam{
			IncludeUsage: openai.F(true),
		}),
	}
	for _, t := range turns {
		var content any = t.Content
		params.Messages.Value = append(params.Messages.Value, openai.ChatCompletionMessageParam{
			Role:    openai.F(t.Role),
			Content: openai.F(content),
		})
	}

	if err := platform.DB.Create(&model.AssistantMessage{
		UserID:  userID,
		Role:    string(openai.ChatCompletionMessageParamRoleUser),
		Content: prompt,
	}).Error; err != nil {
		logger.Warnf("[%s] persist user turn error, %s", c.GetString("requestId"), err)
	}

	stream := platform.LLMClient.Chat.Completions.NewStreaming(context.Background(), params)
	acc := openai.ChatCompletionAccumulator{}
	for stream.Next() {
		chunk := stream.Current()
		acc.AddChunk(chunk)
		if len(chunk.Choices) > 0 {
			if _, err := fmt.Fprint(w, chunk.Choices[0].Delta.Content); err != nil {
				return err
			}
			flusher.Flush()
		}
		if content, ok := acc.JustFinishedContent(); ok {
			logger.Infof("[%s] finished content: %s", c.GetString("requestId"), truncate(content, previewLen))
			break
		}
	}
	if err := stream.Err(); err != nil {
		logger.Warnf("[%s] stream error, %s", c.GetString("requestId"), err)
		return err
	}

	if len(acc.Choices) > 0 {
		if err := platform.DB.Create(&model.AssistantMessage{
			UserID:  userID,
			Role:    string(openai.ChatCompletionAssistantMessageParamRoleAssistant),
			Content: acc.Choices[0].Message.Content,
		}).Error; err != nil {
			logger.Warnf("[%s] persist assistant turn error, %s", c.GetString("requestId"), err)
		}
	}
	return nil
}

// SummarizeCircular fetches a circular or notice page, converts it to
// markdown and streams a short summary over SSE.
func (s *AssistantService) SummarizeCircular(c *gin.Context, url string) error {
	w := c.Writer
	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.Warnf("[%s] get Writer flusher error", c.GetString("requestId"))
		return errors.New("get Writer flusher error")
	}

	content, err := getMKData(c, url)
	if err != nil {
		return fmt.Errorf("%w: could not fetch %s", ErrValidation, url)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	userContent := "Summarize the following notice in at most 100 words, keeping any dates and deadlines:\n\n" + content

	params := openai.ChatCompletionNewParams{
		Messages:    openai.F([]openai.ChatCompletionMessageParamUnion{}),
		Model:       openai.F(openAIModel()),
		Temperature: openai.F(0.7),
	}
	for _, t := range []struct {
		role    openai.ChatCompletionMessageParamRole
		content string
	}{
		{"system", "You are a helpful assistant."},
		{"user", userContent},
	} {
		var content any = t.content
		params.Messages.Value = append(params.Messages.Value, openai.ChatCompletionMessageParam{
			Role:    openai.F(t.role),
			Content: openai.F(content),
		})
	}

	stream := platform.LLMClient.Chat.Completions.NewStreaming(context.Background(), params)
	acc := openai.ChatCompletionAccumulator{}
	for stream.Next() {
		chunk := stream.Current()
		acc.AddChunk(chunk)
		if len(chunk.Choices) > 0 {
			if _, err := fmt.Fprint(w, chunk.Choices[0].Delta.Content); err != nil {
				return err
			}
			flusher.Flush()
		}
		if _, ok := acc.JustFinishedContent(); ok {
			break
		}
	}
	if err := stream.Err(); err != nil {
		logger.Warnf("[%s] stream error, %s", c.GetString("requestId"), err)
		return err
	}
	return nil
}
