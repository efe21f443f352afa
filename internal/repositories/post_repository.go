package repositories

import (
	"context"
	"time"

	"github.com/arefin88/chirp/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	GetPostsByAuthor(ctx context.Context, author primitive.ObjectID) ([]models.Post, error)
	GetPostsByAuthors(ctx context.Context, authors []primitive.ObjectID) ([]models.Post, error)
	GetPostsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error)
	GetPostsRepostedBy(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error)
	GetPostsByAuthorSince(ctx context.Context, author primitive.ObjectID, since time.Time) ([]models.Post, error)
	DeletePost(ctx context.Context, id primitive.ObjectID) error
	AddLike(ctx context.Context, postID, userID primitive.ObjectID, at time.Time) error
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error
	AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) error
	AddRepost(ctx context.Context, postID, userID primitive.ObjectID) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

// CreatePost creates a new post with empty engagement sets
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	if post.Likes == nil {
		post.Likes = []models.LikeRef{}
	}
	if post.Reposts == nil {
		post.Reposts = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by hex id
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetAllPosts retrieves every post, newest first
func (r *MongoPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	return r.find(ctx, bson.M{}, newestFirst)
}

// GetPostsByAuthor retrieves the author's posts, newest first
func (r *MongoPostRepository) GetPostsByAuthor(ctx context.Context, author primitive.ObjectID) ([]models.Post, error) {
	return r.find(ctx, bson.M{"user": author}, newestFirst)
}

// GetPostsByAuthors retrieves posts by any of the given authors, newest
// first. An empty author set yields an empty result, not an error.
func (r *MongoPostRepository) GetPostsByAuthors(ctx context.Context, authors []primitive.ObjectID) ([]models.Post, error) {
	if len(authors) == 0 {
		return []models.Post{}, nil
	}
	return r.find(ctx, bson.M{"user": bson.M{"$in": authors}}, newestFirst)
}

// GetPostsByIDs retrieves posts whose id is in the given reference set. The
// store's own ordering applies; callers must not assume it is chronological.
func (r *MongoPostRepository) GetPostsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	if len(ids) == 0 {
		return []models.Post{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

// GetPostsRepostedBy retrieves posts whose repost set contains the user
func (r *MongoPostRepository) GetPostsRepostedBy(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	return r.find(ctx, bson.M{"reposts": userID}, options.Find())
}

// GetPostsByAuthorSince retrieves the author's posts created at or after the
// cutoff. Used by the impression chart, which windows on post creation.
func (r *MongoPostRepository) GetPostsByAuthorSince(ctx context.Context, author primitive.ObjectID, since time.Time) ([]models.Post, error) {
	return r.find(ctx, bson.M{"user": author, "created_at": bson.M{"$gte": since}}, options.Find())
}

func (r *MongoPostRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Post, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// DeletePost deletes a post by id
func (r *MongoPostRepository) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// AddLike appends a timestamped like reference for the user
func (r *MongoPostRepository) AddLike(ctx context.Context, postID, userID primitive.ObjectID, at time.Time) error {
	like := models.LikeRef{User: userID, CreatedAt: at}
	return r.updateOne(ctx, postID, bson.M{"$push": bson.M{"likes": like}})
}

// RemoveLike removes the user's like reference
func (r *MongoPostRepository) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	return r.updateOne(ctx, postID, bson.M{"$pull": bson.M{"likes": bson.M{"user": userID}}})
}

// AddComment appends a comment to the post
func (r *MongoPostRepository) AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) error {
	return r.updateOne(ctx, postID, bson.M{"$push": bson.M{"comments": comment}})
}

// AddRepost adds the user to the post's repost set. $addToSet leaves the
// document untouched when the user is already present, which surfaces a
// concurrent duplicate as ErrAlreadyReposted.
func (r *MongoPostRepository) AddRepost(ctx context.Context, postID, userID primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$addToSet": bson.M{"reposts": userID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	if res.ModifiedCount == 0 {
		return ErrAlreadyReposted
	}
	return nil
}

func (r *MongoPostRepository) updateOne(ctx context.Context, postID primitive.ObjectID, update bson.M) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": postID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}
