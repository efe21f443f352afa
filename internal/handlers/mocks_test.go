package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/arefin88/chirp/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Func-field mocks over the repository interfaces; unset funcs return zero
// values so each test wires only what it exercises.

type mockPostRepo struct {
	createPostFn            func(ctx context.Context, post *models.Post) error
	getPostByIDFn           func(ctx context.Context, id string) (*models.Post, error)
	getAllPostsFn           func(ctx context.Context) ([]models.Post, error)
	getPostsByAuthorFn      func(ctx context.Context, author primitive.ObjectID) ([]models.Post, error)
	getPostsByAuthorsFn     func(ctx context.Context, authors []primitive.ObjectID) ([]models.Post, error)
	getPostsByIDsFn         func(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error)
	getPostsRepostedByFn    func(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error)
	getPostsByAuthorSinceFn func(ctx context.Context, author primitive.ObjectID, since time.Time) ([]models.Post, error)
	deletePostFn            func(ctx context.Context, id primitive.ObjectID) error
	addLikeFn               func(ctx context.Context, postID, userID primitive.ObjectID, at time.Time) error
	removeLikeFn            func(ctx context.Context, postID, userID primitive.ObjectID) error
	addCommentFn            func(ctx context.Context, postID primitive.ObjectID, comment models.Comment) error
	addRepostFn             func(ctx context.Context, postID, userID primitive.ObjectID) error
}

func (m *mockPostRepo) CreatePost(ctx context.Context, post *models.Post) error {
	if m.createPostFn != nil {
		return m.createPostFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepo) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	if m.getPostByIDFn != nil {
		return m.getPostByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockPostRepo) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	if m.getAllPostsFn != nil {
		return m.getAllPostsFn(ctx)
	}
	return []models.Post{}, nil
}

func (m *mockPostRepo) GetPostsByAuthor(ctx context.Context, author primitive.ObjectID) ([]models.Post, error) {
	if m.getPostsByAuthorFn != nil {
		return m.getPostsByAuthorFn(ctx, author)
	}
	return []models.Post{}, nil
}

func (m *mockPostRepo) GetPostsByAuthors(ctx context.Context, authors []primitive.ObjectID) ([]models.Post, error) {
	if m.getPostsByAuthorsFn != nil {
		return m.getPostsByAuthorsFn(ctx, authors)
	}
	return []models.Post{}, nil
}

func (m *mockPostRepo) GetPostsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	if m.getPostsByIDsFn != nil {
		return m.getPostsByIDsFn(ctx, ids)
	}
	return []models.Post{}, nil
}

func (m *mockPostRepo) GetPostsRepostedBy(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	if m.getPostsRepostedByFn != nil {
		return m.getPostsRepostedByFn(ctx, userID)
	}
	return []models.Post{}, nil
}

func (m *mockPostRepo) GetPostsByAuthorSince(ctx context.Context, author primitive.ObjectID, since time.Time) ([]models.Post, error) {
	if m.getPostsByAuthorSinceFn != nil {
		return m.getPostsByAuthorSinceFn(ctx, author, since)
	}
	return []models.Post{}, nil
}

func (m *mockPostRepo) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	if m.deletePostFn != nil {
		return m.deletePostFn(ctx, id)
	}
	return nil
}

func (m *mockPostRepo) AddLike(ctx context.Context, postID, userID primitive.ObjectID, at time.Time) error {
	if m.addLikeFn != nil {
		return m.addLikeFn(ctx, postID, userID, at)
	}
	return nil
}

func (m *mockPostRepo) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	if m.removeLikeFn != nil {
		return m.removeLikeFn(ctx, postID, userID)
	}
	return nil
}

func (m *mockPostRepo) AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) error {
	if m.addCommentFn != nil {
		return m.addCommentFn(ctx, postID, comment)
	}
	return nil
}

func (m *mockPostRepo) AddRepost(ctx context.Context, postID, userID primitive.ObjectID) error {
	if m.addRepostFn != nil {
		return m.addRepostFn(ctx, postID, userID)
	}
	return nil
}

type mockUserRepo struct {
	createUserFn        func(ctx context.Context, user *models.User) error
	getUserByIDFn       func(ctx context.Context, id string) (*models.User, error)
	getUserByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	getUserByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	getUsersByIDsFn     func(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	updateProfileFn     func(ctx context.Context, user *models.User) error
	addLikedPostFn      func(ctx context.Context, userID, postID primitive.ObjectID) error
	removeLikedPostFn   func(ctx context.Context, userID, postID primitive.ObjectID) error
	addBookmarkFn       func(ctx context.Context, userID, postID primitive.ObjectID) error
	removeBookmarkFn    func(ctx context.Context, userID, postID primitive.ObjectID) error
	followFn            func(ctx context.Context, followerID, targetID primitive.ObjectID) error
	unfollowFn          func(ctx context.Context, followerID, targetID primitive.ObjectID) error
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.getUserByUsernameFn != nil {
		return m.getUserByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if m.getUsersByIDsFn != nil {
		return m.getUsersByIDsFn(ctx, ids)
	}
	return []models.User{}, nil
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) AddLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	if m.addLikedPostFn != nil {
		return m.addLikedPostFn(ctx, userID, postID)
	}
	return nil
}

func (m *mockUserRepo) RemoveLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	if m.removeLikedPostFn != nil {
		return m.removeLikedPostFn(ctx, userID, postID)
	}
	return nil
}

func (m *mockUserRepo) AddBookmark(ctx context.Context, userID, postID primitive.ObjectID) error {
	if m.addBookmarkFn != nil {
		return m.addBookmarkFn(ctx, userID, postID)
	}
	return nil
}

func (m *mockUserRepo) RemoveBookmark(ctx context.Context, userID, postID primitive.ObjectID) error {
	if m.removeBookmarkFn != nil {
		return m.removeBookmarkFn(ctx, userID, postID)
	}
	return nil
}

func (m *mockUserRepo) Follow(ctx context.Context, followerID, targetID primitive.ObjectID) error {
	if m.followFn != nil {
		return m.followFn(ctx, followerID, targetID)
	}
	return nil
}

func (m *mockUserRepo) Unfollow(ctx context.Context, followerID, targetID primitive.ObjectID) error {
	if m.unfollowFn != nil {
		return m.unfollowFn(ctx, followerID, targetID)
	}
	return nil
}

// mockNotificationRepo records persisted notifications.
type mockNotificationRepo struct {
	mu      sync.Mutex
	created []models.Notification
}

func (m *mockNotificationRepo) CreateNotification(notification *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, *notification)
	return nil
}

func (m *mockNotificationRepo) GetByRecipient(toUser string) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Notification
	for _, n := range m.created {
		if n.ToUser == toUser {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockNotificationRepo) GetUnreadCount(toUser string) (int64, error) {
	notifications, _ := m.GetByRecipient(toUser)
	var count int64
	for _, n := range notifications {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkAllAsRead(toUser string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.created {
		if m.created[i].ToUser == toUser {
			m.created[i].IsRead = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) all() []models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Notification, len(m.created))
	copy(out, m.created)
	return out
}
