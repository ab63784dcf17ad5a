package main

import (
	"fmt"
	"os"
	"time"

	"hostelhub/controller"
	"hostelhub/model"
	"hostelhub/platform"
	"hostelhub/service"

	_uuid "github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// RequestIDMiddleware ...
// Generate a unique ID and attach it to each request for future reference or use
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		uuid := _uuid.New()
		c.Writer.Header().Set("X-Request-Id", uuid.String())
		c.Set("requestId", uuid.String())
		c.Next()
	}
}

func LogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery
		if raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method
		userAgent := c.Request.UserAgent()
		requestId := c.GetString("requestId")

		logrus.Infof(
			" [%s] %d | %v | %s | %s | %s | %s ",
			requestId,
			status,
			latency,
			clientIP,
			method,
			path,
			userAgent,
		)
	}
}

var auth = new(controller.AuthController)

// TokenAuthMiddleware ...
// JWT Authentication middleware attached to each request that needs to be authenticated to
// validate the access_token in the header
func TokenAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.TokenValid(c)
		c.Next()
	}
}

func main() {
	fmt.Println("Server started...")

	//Load the .env file
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("failed to load the env file")
	}

	platform.InitFile("./log", "gin")

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(RequestIDMiddleware())
	r.Use(LogMiddleware())

	//init database
	platform.InitDB()
	model.InstallDB()

	platform.InitLLMClient()

	go service.GetHub().Run()

	v1 := r.Group("/v1")
	{
		user := new(controller.UserController)
		v1.POST("/user/register", user.Register)
		v1.POST("/user/login", user.Login)

		//Refresh the token
		v1.POST("/token/refresh", auth.Refresh)

		authed := v1.Group("")
		authed.Use(TokenAuthMiddleware())
		{
			authed.GET("/userinfo", user.Me)

			// messaging
			message := new(controller.MessageController)
			authed.GET("/messages", message.Get)
			authed.POST("/messages", message.Send)
			authed.POST("/conversations/accept", message.Accept)

			// realtime pushes
			ws := new(controller.WSController)
			authed.GET("/ws", ws.Connect)

			// assistant
			assistant := new(controller.AssistantController)
			authed.POST("/assistant/chat", assistant.Chat)
			authed.POST("/assistant/summary", assistant.Summary)

			// the kiosk page runs under a signed-in session; the
			// browser library identifies the user, the server only
			// records the mark
			attendance := new(controller.AttendanceController)
			authed.POST("/attendance/kiosk", attendance.KioskCheckIn)

			// self service
			fee := new(controller.FeeController)
			leave := new(controller.LeaveController)
			complaint := new(controller.ComplaintController)
			notification := new(controller.NotificationController)
			authed.GET("/fees", fee.ListMine)
			authed.GET("/leaves", leave.ListMine)
			authed.POST("/leaves", leave.Request)
			authed.GET("/complaints", complaint.ListMine)
			authed.POST("/complaints", complaint.File)
			authed.GET("/attendance", attendance.ListMine)
			authed.GET("/notifications", notification.ListMine)
			authed.POST("/notifications/:id/read", notification.MarkRead)

			// staff
			staff := authed.Group("/staff")
			staff.Use(controller.RequireRole(model.RoleStaff, model.RoleAdmin))
			{
				staff.GET("/leaves", leave.ListPending)
				staff.POST("/leaves/decide", leave.Decide)
				staff.GET("/complaints", complaint.ListOpen)
				staff.POST("/complaints/status", complaint.UpdateStatus)
				staff.POST("/attendance", attendance.Mark)
			}

			// admin
			room := new(controller.RoomController)
			adminCtrl := new(controller.AdminController)
			admin := authed.Group("/admin")
			admin.Use(controller.RequireRole(model.RoleAdmin))
			{
				admin.GET("/stats", adminCtrl.Stats)
				admin.GET("/users", user.ListByRole)
				admin.POST("/users/room", user.AssignRoom)
				admin.GET("/rooms", room.List)
				admin.POST("/rooms", room.Create)
				admin.POST("/fees", fee.Create)
				admin.POST("/fees/:id/paid", fee.MarkPaid)
			}
		}
	}

	c := cron.New()
	c.AddFunc("0 8 * * *", func() {
		if err := service.FeeReminderTask(); err != nil {
			logrus.Warnf("FeeReminderTask failed: %v", err)
		}
	})
	c.AddFunc("0 18 * * *", func() {
		if err := service.LeaveDigestTask(); err != nil {
			logrus.Warnf("LeaveDigestTask failed: %v", err)
		}
	})
	c.Start()

	port := os.Getenv("PORT")
	r.Run(":" + port)
}
