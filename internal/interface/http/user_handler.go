package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	userapp "github.com/correo/user-service/internal/application"
	"github.com/correo/user-service/internal/domain/entity"
	"github.com/correo/user-service/pkg/response"
	"github.com/correo/user-service/pkg/validation"
)

// timestampLayout matches the caller-facing format of the public API.
const timestampLayout = "02-01-2006 15:04:05"

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

type updateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toResponse(u *entity.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Status:    u.Status,
		CreatedAt: u.CreatedAt.Format(timestampLayout),
		UpdatedAt: u.UpdatedAt.Format(timestampLayout),
	}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.CreateUser(c.Request.Context(), entity.NewUser(req.Name, req.Email, req.Phone))
	if err != nil {
		h.writeError(c, err, "failed to create user")
		return
	}
	response.Success(c, http.StatusCreated, toResponse(u), "user created", nil)
}

func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.Svc.GetAllUsers(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "failed to list users")
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toResponse(u))
	}
	response.Success(c, http.StatusOK, out, "users", nil)
}

// userID extracts and validates the path identifier. Identifiers are UUIDs;
// a malformed value can never match a stored user, so it is reported as
// not found without touching storage.
func (h *UserHandler) userID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return "", false
	}
	return id, true
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	u, err := h.Svc.GetUserByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "failed to get user")
		return
	}
	if u == nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, toResponse(u), "user", nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.UpdateUser(c.Request.Context(), &entity.User{
		ID:    id,
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		h.writeError(c, err, "failed to update user")
		return
	}
	response.Success(c, http.StatusOK, toResponse(u), "user updated", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteUser(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "failed to delete user")
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "user deleted", nil)
}

// DeleteAll removes every stored user, one delete per user so the domain
// service stays the sole owner of removals.
func (h *UserHandler) DeleteAll(c *gin.Context) {
	ctx := c.Request.Context()
	users, err := h.Svc.GetAllUsers(ctx)
	if err != nil {
		h.writeError(c, err, "failed to list users")
		return
	}
	deleted := 0
	for _, u := range users {
		if err := h.Svc.DeleteUser(ctx, u.ID); err != nil {
			// A concurrent delete already removed it; anything else is fatal.
			if errors.Is(err, userapp.ErrUserNotFound) {
				continue
			}
			h.writeError(c, err, "failed to delete users")
			return
		}
		deleted++
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": deleted}, "users deleted", nil)
}

func (h *UserHandler) writeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, userapp.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, userapp.ErrEmailAlreadyRegistered):
		response.Error[any](c, http.StatusConflict, "email already registered", nil)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error(msg)
		}
		response.Error[any](c, http.StatusInternalServerError, msg, nil)
	}
}
