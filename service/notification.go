package service

import (
	"bytes"
	"fmt"
	"net/smtp"
	"os"

	"hostelhub/model"
	"hostelhub/platform"

	"github.com/jordan-wright/email"
	"github.com/yuin/goldmark"
)

type NotificationService struct {
}

var notificationService = &NotificationService{}

// Notify stores a notification and pushes it to the user if connected.
func (n *NotificationService) Notify(userID uint, title, body string) {
	notification := model.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
	}
	if err := platform.DB.Create(&notification).Error; err != nil {
		logger.Warnf("Failed to create notification for user %d: %v", userID, err)
		return
	}
	hub.Push(userID, Event{Type: "notification", Payload: notification})
}

func (n *NotificationService) ListFor(userID uint) ([]model.Notification, error) {
	var notifications []model.Notification
	err := platform.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (n *NotificationService) MarkRead(callerID, notificationID uint) error {
	var notification model.Notification
	if err := platform.DB.First(&notification, notificationID).Error; err != nil {
		return fmt.Errorf("%w: notification %d", ErrNotFound, notificationID)
	}
	if notification.UserID != callerID {
		return fmt.Errorf("%w: not your notification", ErrForbidden)
	}
	return platform.DB.Model(&notification).Update("read", true).Error
}

// SendEmail renders the markdown body to HTML and mails it. SMTP settings
// come from the environment; with no SMTP_HOST configured the mail is
// skipped silently, which keeps development setups working.
func (n *NotificationService) SendEmail(to, subject, markdownBody string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		logger.Infof("SMTP_HOST not set, skipping email %q to %s", subject, to)
		return nil
	}

	var html bytes.Buffer
	if err := goldmark.Convert([]byte(markdownBody), &html); err != nil {
		return fmt.Errorf("failed to render email body: %w", err)
	}

	e := email.NewEmail()
	e.From = os.Getenv("SMTP_FROM")
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(markdownBody)
	e.HTML = html.Bytes()

	addr := fmt.Sprintf("%s:%s", host, os.Getenv("SMTP_PORT"))
	auth := smtp.PlainAuth("", os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASSWORD"), host)
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
