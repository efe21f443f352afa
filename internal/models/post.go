package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LikeRef records one user's like together with the time it happened, so the
// impression chart can bucket likes by their own date.
type LikeRef struct {
	User      primitive.ObjectID `json:"user" bson:"user"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// Comment is embedded in its post. Comments are append-only: there is no
// edit or delete operation, and ordering is insertion order.
type Comment struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Text      string             `json:"text" bson:"text"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// Post represents a post document stored in MongoDB. The author reference is
// immutable after creation; likes, reposts and comments live on the document.
type Post struct {
	ID        primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Author    primitive.ObjectID   `json:"user" bson:"user"`
	Text      string               `json:"text,omitempty" bson:"text,omitempty"`
	Img       string               `json:"img,omitempty" bson:"img,omitempty"`
	Likes     []LikeRef            `json:"likes" bson:"likes"`
	Reposts   []primitive.ObjectID `json:"reposts" bson:"reposts"`
	Comments  []Comment            `json:"comments" bson:"comments"`
	CreatedAt time.Time            `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time            `json:"updatedAt" bson:"updated_at"`
}

// LikedBy reports whether the user is in the post's like set.
func (p *Post) LikedBy(userID primitive.ObjectID) bool {
	for _, l := range p.Likes {
		if l.User == userID {
			return true
		}
	}
	return false
}

// RepostedBy reports whether the user is in the post's repost set.
func (p *Post) RepostedBy(userID primitive.ObjectID) bool {
	for _, r := range p.Reposts {
		if r == userID {
			return true
		}
	}
	return false
}

// LikeUserIDs projects the like set to the liking users' ids, which is the
// shape the like/unlike endpoints return.
func (p *Post) LikeUserIDs() []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(p.Likes))
	for _, l := range p.Likes {
		ids = append(ids, l.User)
	}
	return ids
}

// CreatePostRequest defines the request body for creating a new post.
// The text-or-image invariant is checked in the handler since validator
// tags cannot express it across two fields cleanly.
type CreatePostRequest struct {
	Text string `json:"text" validate:"omitempty,max=280"`
	Img  string `json:"img" validate:"omitempty,url"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}

// CommentView is a comment with its author resolved to a public projection.
type CommentView struct {
	ID        primitive.ObjectID `json:"_id"`
	Author    *User              `json:"user"`
	Text      string             `json:"text"`
	CreatedAt time.Time          `json:"createdAt"`
}

// PostView is a post with the author and every comment author resolved to a
// public-safe projection (the password field never serializes).
type PostView struct {
	ID        primitive.ObjectID   `json:"_id"`
	Author    *User                `json:"user"`
	Text      string               `json:"text,omitempty"`
	Img       string               `json:"img,omitempty"`
	Likes     []primitive.ObjectID `json:"likes"`
	Reposts   []primitive.ObjectID `json:"reposts"`
	Comments  []CommentView        `json:"comments"`
	CreatedAt time.Time            `json:"createdAt"`
}

// CompactPostView is a post with the author reduced to the compact
// projection; used for reposted and bookmarked listings.
type CompactPostView struct {
	ID        primitive.ObjectID   `json:"_id"`
	Author    UserCompact          `json:"user"`
	Text      string               `json:"text,omitempty"`
	Img       string               `json:"img,omitempty"`
	Likes     []primitive.ObjectID `json:"likes"`
	Reposts   []primitive.ObjectID `json:"reposts"`
	Comments  []Comment            `json:"comments"`
	CreatedAt time.Time            `json:"createdAt"`
}
