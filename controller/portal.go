package controller

import (
	"net/http"
	"strconv"
	"time"

	"hostelhub/model"
	"hostelhub/service"

	"github.com/gin-gonic/gin"
)

var (
	feeService        = service.FeeService{}
	leaveService      = service.LeaveService{}
	complaintService  = service.ComplaintService{}
	attendanceService = service.AttendanceService{}
	roomService       = service.RoomService{}
)

// FeeController ...
type FeeController struct{}

func (ctrl FeeController) Create(c *gin.Context) {
	var input struct {
		UserID  uint   `json:"user_id" binding:"required"`
		Label   string `json:"label" binding:"required"`
		Amount  int64  `json:"amount" binding:"required"`
		DueDate string `json:"due_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	dueDate, err := time.Parse("2006-01-02", input.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due_date"})
		return
	}

	fee, err := feeService.Create(input.UserID, input.Label, input.Amount, dueDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fee)
}

func (ctrl FeeController) ListMine(c *gin.Context) {
	details, ok := caller(c)
	if !ok {
		return
	}
	fees, err := feeService.ListFor(details.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fees": fees})
}

func (ctrl FeeController) MarkPaid(c *gin.Context) {
	feeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fee id"})
		return
	}
	if err := feeService.MarkPaid(uint(feeID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// LeaveController ...
type LeaveController struct{}

func (ctrl LeaveController) Request(c *gin.Context) {
	details, ok := caller(c)
	if !ok {
		return
	}
	var input struct {
		From   string `json:"from" binding:"required"`
		To     string `json:"to" binding:"required"`
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	from, err := time.Parse("2006-01-02", input.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
		return
	}
	to, err := time.Parse("2006-01-02", input.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
		return
	}

	leave, err := leaveService.Request(details.UserID, from, to, input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, leave)
}

func (ctrl LeaveController) ListMine(c *gin.Context) {
	details, ok := caller(c)
	if !ok {
		return
	}
	leaves, err := leaveService.ListFor(details.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaves": leaves})
}

func (ctrl LeaveController) ListPending(c *gin.Context) {
	leaves, err := leaveService.ListPending()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaves": leaves})
}

func (ctrl LeaveController) Decide(c *gin.Context) {
	details, ok := caller(c)
	if !ok {
		return
	}
	var input struct {
		LeaveID uint `json:"leave_id" binding:"required"`
		Approve bool `json:"approve"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := leaveService.Decide(details.UserID, input.LeaveID, input.Approve); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ComplaintController ...
type ComplaintController struct{}

func (ctrl ComplaintController) File(c *gin.Context) {
	details, ok := caller(c)
	if !ok {
		return
	}
	var input struct {
		Category string `json:"category"`
		Subject  string `json:"subject" binding:"required"`
		Body     string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	complaint, err := complaintService.File(details.UserID, input.Category, input.Subject, input.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

func (ctrl ComplaintController) ListMine(c *gin.Context) {
	details, ok := caller(c)
	if !ok {
		return
	}
	complaints, err := complaintService.ListFor(details.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"complaints": complaints})
}

func (ctrl ComplaintController) ListOpen(c *gin.Context) {
	complaints, err := complaintService.ListOpen()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"complaints": complaints})
}

func (ctrl ComplaintController) UpdateStatus(c *gin.Context) {
	var input struct {
		ComplaintID uint   `json:"complaint_id" binding:"required"`
		Status      string `json:"status" binding:"required"`
		Note        string `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := complaintService.UpdateStatus(input.ComplaintID, model.ComplaintStatus(input.Status), input.Note); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AttendanceController ...
type AttendanceController struct{}

func (ctrl AttendanceController) Mark(c *gin.Context) {
	details, ok := caller(c)
	if !ok {
		return
	}
	var input struct {
		UserID uint   `json:"user_id" binding:"required"`
		Day    string `json:"day" binding:"required"`
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	record, err := attendanceService.Mark(details.UserID, input.UserID, input.Day, model.AttendanceStatus(input.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// KioskCheckIn accepts a check-in from the recognition kiosk. The kiosk
// identifies the user in the browser; the server only records the mark.
func (ctrl AttendanceController) KioskCheckIn(c *gin.Context) {
	var input struct {
		UserID     uint    `json:"user_id" binding:"required"`
		Confidence float64 `json:"confidence"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	record, err := attendanceService.KioskCheckIn(input.UserID, input.Confidence)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (ctrl AttendanceController) ListMine(c *gin.Context) {
	details, ok := caller(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "31"))
	records, err := attendanceService.ListFor(details.UserID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendance": records})
}

// RoomController ...
type RoomController struct{}

func (ctrl RoomController) Create(c *gin.Context) {
	var input struct {
		Number   string `json:"number" binding:"required"`
		Floor    int    `json:"floor"`
		Capacity int    `json:"capacity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	room, err := roomService.Create(input.Number, input.Floor, input.Capacity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (ctrl RoomController) List(c *gin.Context) {
	rooms, err := roomService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}
