package service

import (
	"fmt"
	"strings"
	"time"

	"hostelhub/model"
)

var (
	feeService   = &FeeService{}
	leaveService = &LeaveService{}
	userService  = &UserService{}
)

// FeeReminderTask notifies every student with a fee falling due within
// three days. Scheduled daily from main.
func FeeReminderTask() error {
	logger.Infof("[%s] Start scheduled task FeeReminderTask", "scheduled task")
	startTime := time.Now()

	fees, err := feeService.DueSoon(3 * 24 * time.Hour)
	if err != nil {
		logger.Warnf("[%s] list due fees error, %s", "scheduled task", err)
		return fmt.Errorf("failed to list due fees: %w", err)
	}

	for _, fee := range fees {
		notificationService.Notify(fee.UserID, "Fee reminder",
			fmt.Sprintf("**%s** of amount %d is due by %s.",
				fee.Label, fee.Amount, fee.DueDate.Format("2006-01-02")))
	}

	logger.Infof("[%s] Finished scheduled task FeeReminderTask, %d reminders, cost %v",
		"scheduled task", len(fees), time.Since(startTime))
	return nil
}

// LeaveDigestTask emails every staff member the list of leave requests
// still waiting for a decision.
func LeaveDigestTask() error {
	logger.Infof("[%s] Start scheduled task LeaveDigestTask", "scheduled task")

	pending, err := leaveService.ListPending()
	if err != nil {
		logger.Warnf("[%s] list pending leaves error, %s", "scheduled task", err)
		return fmt.Errorf("failed to list pending leaves: %w", err)
	}
	if len(pending) == 0 {
		logger.Infof("[%s] No pending leaves, skipping digest", "scheduled task")
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d leave requests are waiting for a decision:\n\n", len(pending))
	for _, leave := range pending {
		student, err := model.GetUserByID(leave.UserID)
		name := fmt.Sprintf("user %d", leave.UserID)
		if err == nil {
			name = student.Username
		}
		fmt.Fprintf(&b, "- **%s**: %s to %s, %s\n",
			name, leave.FromDate.Format("2006-01-02"), leave.ToDate.Format("2006-01-02"), leave.Reason)
	}

	staff, err := userService.ListByRole(model.RoleStaff)
	if err != nil {
		return fmt.Errorf("failed to list staff: %w", err)
	}
	for _, s := range staff {
		if s.Email == "" {
			continue
		}
		if err := notificationService.SendEmail(s.Email, "Pending leave requests", b.String()); err != nil {
			logger.Warnf("[%s] send digest to %s error, %s", "scheduled task", s.Email, err)
		}
	}

	logger.Infof("[%s] Finished scheduled task LeaveDigestTask", "scheduled task")
	return nil
}
