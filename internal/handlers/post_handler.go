package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/arefin88/chirp/backend/internal/engagement"
	"github.com/arefin88/chirp/backend/internal/models"
	"github.com/arefin88/chirp/backend/internal/notifier"
	"github.com/arefin88/chirp/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostHandler handles HTTP requests related to posts and engagement
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	notifier       *notifier.Notifier
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, n *notifier.Notifier) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		notifier:       n,
	}
}

// RegisterPostRoutes registers post-related routes. Paths mirror the public
// API contract exactly.
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/all", h.GetAllPosts)
	g.GET("/following", h.GetFollowingPosts)
	g.GET("/likes/:id", h.GetLikedPosts)
	g.GET("/user/:username", h.GetUserPosts)
	g.POST("/create", h.CreatePost)
	g.POST("/like/:id", h.LikeUnlikePost)
	g.POST("/comment/:id", h.CommentOnPost)
	g.DELETE("/:id", h.DeletePost)
	g.GET("/countImpressions", h.CountPostImpressions)
	g.GET("/getFollowersFollowing", h.CountFollowersFollowing)
	g.POST("/:postId/repost", h.RepostPost)
	g.GET("/getAllReposts/:userId", h.GetAllReposts)
	g.POST("/bookmark/:postId", h.BookmarkPost)
	g.GET("/bookmarks/:userId", h.GetBookmarkedPosts)
}

// CreatePost creates a new post for the authenticated user
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if _, err := h.userRepository.GetUserByID(c.Request().Context(), userID.Hex()); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Text == "" && req.Img == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Post must have text or image")
	}

	post := &models.Post{
		Author: userID,
		Text:   req.Text,
		Img:    req.Img,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, post)
}

// DeletePost deletes a post; only the author may delete it
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.Author != userID {
		return echo.NewHTTPError(http.StatusUnauthorized, "You are not authorized to delete this post")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), post.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted successfully"})
}

// GetAllPosts returns every post, newest first, with authors projected
func (h *PostHandler) GetAllPosts(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views, err := h.buildPostViews(c, posts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, views)
}

// GetFollowingPosts returns posts authored by users the viewer follows
func (h *PostHandler) GetFollowingPosts(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), userID.Hex())
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	posts, err := h.postRepository.GetPostsByAuthors(c.Request().Context(), user.Following)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views, err := h.buildPostViews(c, posts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, views)
}

// GetLikedPosts returns the posts in the given user's liked set
func (h *PostHandler) GetLikedPosts(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	posts, err := h.postRepository.GetPostsByIDs(c.Request().Context(), user.LikedPosts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views, err := h.buildPostViews(c, posts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, views)
}

// GetUserPosts returns posts authored by the named user, newest first
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	user, err := h.userRepository.GetUserByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	posts, err := h.postRepository.GetPostsByAuthor(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views, err := h.buildPostViews(c, posts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, views)
}

// LikeUnlikePost toggles the viewer's like on a post. Returns the updated
// like set as user ids. Liking someone else's post emits a notification.
func (h *PostHandler) LikeUnlikePost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ctx := c.Request().Context()
	if post.LikedBy(userID) {
		// Unlike: remove from both sides of the mirror
		if err := h.postRepository.RemoveLike(ctx, post.ID, userID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if err := h.userRepository.RemoveLikedPost(ctx, userID, post.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, removeID(post.LikeUserIDs(), userID))
	}

	// Like: add to both sides, then notify the author
	if err := h.postRepository.AddLike(ctx, post.ID, userID, time.Now()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.userRepository.AddLikedPost(ctx, userID, post.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.notifier.Notify(notifier.TypeLike, userID, post.Author)

	return c.JSON(http.StatusOK, append(post.LikeUserIDs(), userID))
}

// CommentOnPost appends a comment to a post and returns the updated post
func (h *PostHandler) CommentOnPost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Text field is required")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		User:      userID,
		Text:      req.Text,
		CreatedAt: time.Now(),
	}
	if err := h.postRepository.AddComment(c.Request().Context(), post.ID, comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post.Comments = append(post.Comments, comment)
	return c.JSON(http.StatusOK, post)
}

// RepostPost adds the viewer to a post's repost set. Reposting is add-only:
// a duplicate repost is a conflict, and no un-repost operation exists.
func (h *PostHandler) RepostPost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("postId"))
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.RepostedBy(userID) {
		return echo.NewHTTPError(http.StatusConflict, "You have already reposted this post")
	}

	if err := h.postRepository.AddRepost(c.Request().Context(), post.ID, userID); err != nil {
		if errors.Is(err, repositories.ErrAlreadyReposted) {
			return echo.NewHTTPError(http.StatusConflict, "You have already reposted this post")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	post.Reposts = append(post.Reposts, userID)

	h.notifier.Notify(notifier.TypeRepost, userID, post.Author)

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Post reposted successfully",
		"post":    post,
	})
}

// GetAllReposts returns posts the given user has reposted, authors compacted
func (h *PostHandler) GetAllReposts(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	posts, err := h.postRepository.GetPostsRepostedBy(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views, err := h.buildCompactPostViews(c, posts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, views)
}

// BookmarkPost toggles the post in the viewer's bookmark set. One-sided:
// the post document is never mutated.
func (h *PostHandler) BookmarkPost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := h.userRepository.GetUserByID(ctx, userID.Hex())
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post, err := h.postRepository.GetPostByID(ctx, c.Param("postId"))
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if containsID(user.Bookmarks, post.ID) {
		if err := h.userRepository.RemoveBookmark(ctx, user.ID, post.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{
			"message":   "Post removed from bookmarks",
			"bookmarks": removeID(user.Bookmarks, post.ID),
		})
	}

	if err := h.userRepository.AddBookmark(ctx, user.ID, post.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":   "Post bookmarked successfully",
		"bookmarks": append(user.Bookmarks, post.ID),
	})
}

// GetBookmarkedPosts returns the posts in the given user's bookmark set
func (h *PostHandler) GetBookmarkedPosts(c echo.Context) error {
	rawID := c.Param("userId")
	if _, err := primitive.ObjectIDFromHex(rawID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), rawID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	posts, err := h.postRepository.GetPostsByIDs(c.Request().Context(), user.Bookmarks)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views, err := h.buildCompactPostViews(c, posts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, views)
}

// CountPostImpressions returns the 7-day like+comment histogram for the
// authenticated author's recent posts
func (h *PostHandler) CountPostImpressions(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	posts, err := h.postRepository.GetPostsByAuthorSince(c.Request().Context(), userID, engagement.WindowStart(now))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error. Could not count post impressions.")
	}

	report := engagement.CountImpressions(posts, now)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    report,
	})
}

// CountFollowersFollowing returns the viewer's follower/following counts,
// Followers first
func (h *PostHandler) CountFollowersFollowing(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), userID.Hex())
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error. Could not count followers and following.")
	}

	data := []engagement.ChartPoint{
		{Name: "Followers", Value: len(user.Followers)},
		{Name: "Following", Value: len(user.Following)},
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    data,
	})
}

// buildPostViews resolves every author and comment author in one query and
// assembles the full projections.
func (h *PostHandler) buildPostViews(c echo.Context, posts []models.Post) ([]models.PostView, error) {
	userMap, err := h.resolveUsers(c, posts, true)
	if err != nil {
		return nil, err
	}

	views := make([]models.PostView, len(posts))
	for i, p := range posts {
		comments := make([]models.CommentView, len(p.Comments))
		for j, cm := range p.Comments {
			comments[j] = models.CommentView{
				ID:        cm.ID,
				Author:    userMap[cm.User],
				Text:      cm.Text,
				CreatedAt: cm.CreatedAt,
			}
		}
		views[i] = models.PostView{
			ID:        p.ID,
			Author:    userMap[p.Author],
			Text:      p.Text,
			Img:       p.Img,
			Likes:     p.LikeUserIDs(),
			Reposts:   p.Reposts,
			Comments:  comments,
			CreatedAt: p.CreatedAt,
		}
	}
	return views, nil
}

// buildCompactPostViews projects only the post author, reduced to the
// compact subset.
func (h *PostHandler) buildCompactPostViews(c echo.Context, posts []models.Post) ([]models.CompactPostView, error) {
	userMap, err := h.resolveUsers(c, posts, false)
	if err != nil {
		return nil, err
	}

	views := make([]models.CompactPostView, len(posts))
	for i, p := range posts {
		view := models.CompactPostView{
			ID:        p.ID,
			Text:      p.Text,
			Img:       p.Img,
			Likes:     p.LikeUserIDs(),
			Reposts:   p.Reposts,
			Comments:  p.Comments,
			CreatedAt: p.CreatedAt,
		}
		if author, ok := userMap[p.Author]; ok {
			view.Author = author.ToCompact()
		}
		views[i] = view
	}
	return views, nil
}

func (h *PostHandler) resolveUsers(c echo.Context, posts []models.Post, includeCommenters bool) (map[primitive.ObjectID]*models.User, error) {
	idSet := make(map[primitive.ObjectID]struct{})
	for _, p := range posts {
		idSet[p.Author] = struct{}{}
		if includeCommenters {
			for _, cm := range p.Comments {
				idSet[cm.User] = struct{}{}
			}
		}
	}

	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := h.userRepository.GetUsersByIDs(c.Request().Context(), ids)
	if err != nil {
		return nil, err
	}

	userMap := make(map[primitive.ObjectID]*models.User, len(users))
	for i := range users {
		userMap[users[i].ID] = &users[i]
	}
	return userMap, nil
}
