package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pulsebot/internal/domain"
	"pulsebot/internal/repository"
)

// UserHandler mantiene dependencias para los endpoints de usuarios.
type UserHandler struct {
	logger *zap.Logger
	users  repository.UserRepository
}

func NewUserHandler(logger *zap.Logger, users repository.UserRepository) *UserHandler {
	return &UserHandler{logger: logger, users: users}
}

// CreateUser maneja POST /users.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req struct {
		EmployeeID       string `json:"employee_id" binding:"required"`
		FullName         string `json:"full_name" binding:"required"`
		AdsID            string `json:"ads_id" binding:"required"`
		ManagerID        string `json:"manager_id" binding:"required"`
		ManagerName      string `json:"manager_name" binding:"required"`
		ManagerEmailHash string `json:"manager_email_hash" binding:"required"`
		Department       string `json:"department" binding:"required"`
		Band             string `json:"band" binding:"required"`
		JobTitle         string `json:"job_title" binding:"required"`
		IsActive         bool   `json:"is_active"`
		EmailHash        string `json:"email_hash" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user := domain.User{
		ID:               uuid.NewString(),
		EmployeeID:       req.EmployeeID,
		FullName:         req.FullName,
		AdsID:            req.AdsID,
		ManagerID:        req.ManagerID,
		ManagerName:      req.ManagerName,
		ManagerEmailHash: req.ManagerEmailHash,
		Department:       req.Department,
		Band:             req.Band,
		JobTitle:         req.JobTitle,
		IsActive:         req.IsActive,
		EmailHash:        req.EmailHash,
		CreatedAt:        time.Now().UTC(),
	}

	if err := h.users.Create(c.Request.Context(), user); err != nil {
		h.logger.Error("create user failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}
