package models

import "time"

const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"not null;uniqueIndex:users_username_key"`
	Email          string    `json:"email" gorm:"not null;uniqueIndex:users_email_key"`
	Password       string    `json:"-" gorm:"not null"` // bcrypt hash, never the plaintext
	ImageURL       string    `json:"image_url"`
	HeaderImageURL string    `json:"header_image_url"`
	Bio            string    `json:"bio"`
	Location       string    `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateUserRequest is the signup form.
type CreateUserRequest struct {
	Username       string `form:"username" validate:"required,max=50"`
	Email          string `form:"email" validate:"required,email"`
	Password       string `form:"password" validate:"required,min=6"`
	Password2      string `form:"password2" validate:"required"`
	ImageURL       string `form:"image_url" validate:"omitempty,uri"`
	HeaderImageURL string `form:"header_image_url" validate:"omitempty,uri"`
	Bio            string `form:"bio" validate:"max=500"`
	Location       string `form:"location" validate:"max=50"`
}

type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// UpdateUserRequest is the profile edit form. Password is the current password and is
// only used to confirm identity.
type UpdateUserRequest struct {
	Username       string `form:"username" validate:"required,max=50"`
	Email          string `form:"email" validate:"required,email"`
	ImageURL       string `form:"image_url" validate:"omitempty,uri"`
	HeaderImageURL string `form:"header_image_url" validate:"omitempty,uri"`
	Bio            string `form:"bio" validate:"max=500"`
	Location       string `form:"location" validate:"max=50"`
	Password       string `form:"password" validate:"required"`
}

// FirebaseLoginRequest carries a Firebase ID token obtained by the browser.
type FirebaseLoginRequest struct {
	IDToken string `form:"id_token" json:"id_token" validate:"required"`
}
