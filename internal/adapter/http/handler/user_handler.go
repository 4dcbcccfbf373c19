package handler

import (
	"movie-wallet/internal/adapter/http/dto"
	"movie-wallet/internal/core/ports"
	"movie-wallet/pkg/apperror"
	"movie-wallet/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler manages wallet owners.
type UserHandler struct {
	userSvc ports.UserService
}

func NewUserHandler(userSvc ports.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Create handles POST /api/v1/users.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	user, err := h.userSvc.Create(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToUserResponse(user))
}

// List handles GET /api/v1/users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.ToUserResponse(&users[i]))
	}
	response.OK(c, items)
}

// Get handles GET /api/v1/users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userSvc.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToUserResponse(user))
}
