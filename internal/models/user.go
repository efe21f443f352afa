package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user document stored in MongoDB. Followers, following,
// liked posts and bookmarks are kept as reference sets on the document itself.
type User struct {
	ID         primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Username   string               `json:"username" bson:"username"`
	FullName   string               `json:"fullName" bson:"full_name"`
	Email      string               `json:"email" bson:"email"`
	Password   string               `json:"-" bson:"password"` // bcrypt hash, never serialized
	ProfileImg string               `json:"profileImg" bson:"profile_img"`
	CoverImg   string               `json:"coverImg" bson:"cover_img"`
	Bio        string               `json:"bio" bson:"bio"`
	Link       string               `json:"link" bson:"link"`
	Followers  []primitive.ObjectID `json:"followers" bson:"followers"`
	Following  []primitive.ObjectID `json:"following" bson:"following"`
	LikedPosts []primitive.ObjectID `json:"likedPosts" bson:"liked_posts"`
	Bookmarks  []primitive.ObjectID `json:"bookmarks" bson:"bookmarks"`
	CreatedAt  time.Time            `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time            `json:"updatedAt" bson:"updated_at"`
}

// UserCompact is the reduced author projection used where the full profile
// is not needed (reposts, bookmarks, notification actors).
type UserCompact struct {
	ID         primitive.ObjectID `json:"_id"`
	Username   string             `json:"username"`
	FullName   string             `json:"fullName"`
	ProfileImg string             `json:"profileImg"`
}

// ToCompact returns the compact projection of the user.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:         u.ID,
		Username:   u.Username,
		FullName:   u.FullName,
		ProfileImg: u.ProfileImg,
	}
}

// SignupRequest defines the request body for local registration
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=2,max=30"`
	FullName string `json:"fullName" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SigninRequest defines the request body for local login
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   string `json:"user_id"` // hex ObjectID
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// UpdateProfileRequest defines the request body for profile updates.
// Image upload happens against the media host; only URLs arrive here.
type UpdateProfileRequest struct {
	FullName   string `json:"fullName,omitempty" validate:"omitempty,min=2,max=50"`
	Bio        string `json:"bio,omitempty" validate:"omitempty,max=160"`
	Link       string `json:"link,omitempty" validate:"omitempty,url"`
	ProfileImg string `json:"profileImg,omitempty" validate:"omitempty,url"`
	CoverImg   string `json:"coverImg,omitempty" validate:"omitempty,url"`
}
