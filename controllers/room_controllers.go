package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prasetyawidi/attendance-app/models"
	"github.com/prasetyawidi/attendance-app/utils"
	"gorm.io/gorm"
)

type RoomController struct {
	DB *gorm.DB
}

func NewRoomController(db *gorm.DB) *RoomController {
	return &RoomController{DB: db}
}

// CreateRoom -> register a new room
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req struct {
		Number   string `json:"number" binding:"required"`
		Building string `json:"building"`
		Capacity int    `json:"capacity"`
		Status   string `json:"status"` // optional, default "available"
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	room := models.Room{
		Number:   req.Number,
		Building: req.Building,
		Capacity: req.Capacity,
		Status:   "available",
	}
	if req.Status != "" {
		room.Status = req.Status
	}

	if err := rc.DB.Create(&room).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New room created: %s (status=%s)", room.Number, room.Status)
	utils.RespondJSON(c, http.StatusCreated, "Room created successfully", room)
}

// GetAllRooms
func (rc *RoomController) GetAllRooms(c *gin.Context) {
	var rooms []models.Room
	if err := rc.DB.Find(&rooms).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of rooms", rooms)
}

// UpdateRoomStatus
func (rc *RoomController) UpdateRoomStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var room models.Room
	if err := rc.DB.First(&room, c.Param("room_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	room.Status = body.Status
	if err := rc.DB.Save(&room).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Room updated successfully", room)
}

// DeleteRoom
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	if err := rc.DB.Delete(&models.Room{}, c.Param("room_id")).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Room deleted", gin.H{"room_id": c.Param("room_id")})
}
