package handlers

import (
	"errors"
	"net/http"

	"github.com/arefin88/chirp/backend/internal/models"
	"github.com/arefin88/chirp/backend/internal/notifier"
	"github.com/arefin88/chirp/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler handles profile and follow HTTP requests
type UserHandler struct {
	userRepository repositories.UserRepository
	notifier       *notifier.Notifier
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, n *notifier.Notifier) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		notifier:       n,
	}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/profile/:username", h.GetProfile)
	g.POST("/follow/:id", h.FollowUnfollowUser)
	g.PUT("/update", h.UpdateProfile)
}

// GetProfile returns the named user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userRepository.GetUserByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// FollowUnfollowUser toggles the follow relation between the viewer and the
// target, keeping the following/followers mirror in sync on both documents.
// Following a user emits a follow notification; unfollowing is silent.
func (h *UserHandler) FollowUnfollowUser(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if targetID == userID {
		return echo.NewHTTPError(http.StatusBadRequest, "You can't follow/unfollow yourself")
	}

	ctx := c.Request().Context()
	if _, err := h.userRepository.GetUserByID(ctx, targetID.Hex()); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	viewer, err := h.userRepository.GetUserByID(ctx, userID.Hex())
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if containsID(viewer.Following, targetID) {
		if err := h.userRepository.Unfollow(ctx, userID, targetID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "User unfollowed successfully"})
	}

	if err := h.userRepository.Follow(ctx, userID, targetID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.notifier.Notify(notifier.TypeFollow, userID, targetID)

	return c.JSON(http.StatusOK, echo.Map{"message": "User followed successfully"})
}

// UpdateProfile updates the authenticated user's profile fields. Image
// uploads happen against the media host; this endpoint only stores URLs.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), userID.Hex())
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Link != "" {
		user.Link = req.Link
	}
	if req.ProfileImg != "" {
		user.ProfileImg = req.ProfileImg
	}
	if req.CoverImg != "" {
		user.CoverImg = req.CoverImg
	}

	if err := h.userRepository.UpdateProfile(c.Request().Context(), user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, user)
}
