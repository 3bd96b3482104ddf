package model

import (
	"strings"
	"time"

	"estatehub/pkg/sanitizer"
)

type Admin struct {
	ID                string     `json:"id,omitempty" bson:"_id,omitempty"`
	Email             string     `json:"email" bson:"email"`
	Name              string     `json:"name" bson:"name"`
	PasswordHash      string     `json:"-" bson:"password_hash"`
	Role              string     `json:"role" bson:"role"`
	ResetOTPHash      string     `json:"-" bson:"reset_otp_hash,omitempty"`
	ResetOTPExpiresAt *time.Time `json:"-" bson:"reset_otp_expires_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" bson:"updated_at"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=128"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Admin     *Admin    `json:"admin"`
}

func (r *LoginRequest) Sanitize() {
	r.Email = sanitizer.Email(r.Email)
}

func (r *ResetOTPRequest) Sanitize() {
	r.Email = sanitizer.Email(r.Email)
}

func (r *ResetPasswordRequest) Sanitize() {
	r.Email = sanitizer.Email(r.Email)
	r.OTP = strings.TrimSpace(r.OTP)
}
