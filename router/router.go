package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prasetyawidi/attendance-app/controllers"
	"github.com/prasetyawidi/attendance-app/middlewares"
	"github.com/prasetyawidi/attendance-app/models"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	roomCtrl := controllers.NewRoomController(db)
	courseCtrl := controllers.NewCourseController(db)
	enrollmentCtrl := controllers.NewEnrollmentController(db)
	attendanceCtrl := controllers.NewAttendanceController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.GET("/users", userCtrl.GetAllUsers)
	auth.POST("/logout", userCtrl.Logout)

	// ROOMS (admin manages, everyone reads)
	auth.GET("/rooms", roomCtrl.GetAllRooms)
	adminOnly := auth.Group("/")
	adminOnly.Use(middlewares.RequireRole(models.RoleAdmin))
	{
		adminOnly.POST("/rooms", roomCtrl.CreateRoom)
		adminOnly.PATCH("/rooms/:room_id", roomCtrl.UpdateRoomStatus)
		adminOnly.DELETE("/rooms/:room_id", roomCtrl.DeleteRoom)
	}

	// COURSES & SUBJECTS
	auth.GET("/courses", courseCtrl.GetAllCourses)
	auth.GET("/courses/:course_id", courseCtrl.GetCourseByID)
	auth.GET("/courses/:course_id/subjects", courseCtrl.GetSubjects)
	staff := auth.Group("/")
	staff.Use(middlewares.RequireRole(models.RoleLecturer))
	{
		staff.POST("/courses", courseCtrl.CreateCourse)
		staff.PATCH("/courses/:course_id", courseCtrl.UpdateCourse)
		staff.POST("/courses/:course_id/subjects", courseCtrl.CreateSubject)

		// ENROLLMENTS
		staff.POST("/enrollments", enrollmentCtrl.Enroll)
		staff.PATCH("/enrollments/:enrollment_id/drop", enrollmentCtrl.Drop)
		staff.GET("/courses/:course_id/roster", enrollmentCtrl.GetRoster)

		// ATTENDANCE
		staff.POST("/attendance", attendanceCtrl.MarkAttendance)
		staff.GET("/attendance", attendanceCtrl.GetAttendance)
	}

	// NOTIFICATIONS (recipient-scoped lifecycle + operator generation)
	auth.GET("/notifications", notificationCtrl.GetNotifications)
	auth.PATCH("/notifications/read-all", notificationCtrl.MarkAllRead)
	auth.PATCH("/notifications/:notif_id/read", notificationCtrl.MarkRead)
	auth.DELETE("/notifications/:notif_id", notificationCtrl.DeleteNotification)
	auth.POST("/notifications/generate-daily", notificationCtrl.GenerateDailyReminders)
	auth.POST("/notifications/low-attendance", notificationCtrl.CreateLowAttendanceAlert)

	// DASHBOARD
	auth.GET("/dashboard/stats", adminCtrl.GetDashboardStats)

	return r
}
