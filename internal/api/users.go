package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Circlesfera/circlesfera-backend-sub000/internal/db"
	"github.com/Circlesfera/circlesfera-backend-sub000/internal/models"
	"github.com/Circlesfera/circlesfera-backend-sub000/pkg/logging"
)

// UserAPI exposes account profiles
type UserAPI struct {
	users  *db.UserRepository
	logger *zap.Logger
}

// NewUserAPI creates a new user API
func NewUserAPI(users *db.UserRepository) *UserAPI {
	return &UserAPI{
		users:  users,
		logger: logging.WithComponent("user-api"),
	}
}

func profileJSON(user *models.User) gin.H {
	return gin.H{
		"id":          user.ID,
		"handle":      user.Handle,
		"displayName": user.DisplayName,
		"bio":         user.Bio,
		"avatarUrl":   user.AvatarURL,
		"isVerified":  user.IsVerified,
		"isPrivate":   user.IsPrivate,
	}
}

// Me handles GET /api/v1/me
func (u *UserAPI) Me(c *gin.Context) {
	viewer, apiErr := viewerID(c)
	if apiErr != nil {
		respondError(c, apiErr)
		return
	}

	user, err := u.users.GetByID(c.Request.Context(), viewer)
	if err != nil {
		u.logger.Error("viewer profile lookup failed", zap.String("viewer", viewer), zap.Error(err))
		respondError(c, NewInternal("failed to load profile"))
		return
	}
	if user == nil {
		respondError(c, NewNotFound("user not found"))
		return
	}
	c.JSON(200, profileJSON(user))
}

// GetByHandle handles GET /api/v1/users/:handle
func (u *UserAPI) GetByHandle(c *gin.Context) {
	if _, apiErr := viewerID(c); apiErr != nil {
		respondError(c, apiErr)
		return
	}
	handle := c.Param("handle")

	user, err := u.users.GetByHandle(c.Request.Context(), handle)
	if err != nil {
		u.logger.Error("profile lookup failed", zap.String("handle", handle), zap.Error(err))
		respondError(c, NewInternal("failed to load profile"))
		return
	}
	if user == nil {
		respondError(c, NewNotFound("user not found"))
		return
	}
	c.JSON(200, profileJSON(user))
}
