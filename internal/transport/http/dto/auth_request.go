package dto

import "strings"

// -------- Registration / verification --------

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,username_format"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	// Role is accepted but the lifecycle forces "user"; requesting
	// "manager" is rejected outright.
	Role string `json:"role" validate:"omitempty,oneof=user manager admin"`
}

func (r *RegisterRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.Role = strings.TrimSpace(r.Role)
	return validateStruct(r)
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

func (r *VerifyOTPRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.OTP = strings.TrimSpace(r.OTP)
	return validateStruct(r)
}

type ResendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *ResendOTPRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	return validateStruct(r)
}

// -------- Session --------

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	return validateStruct(r)
}

// -------- Profile --------

// UpdateProfileRequest carries only the fields the caller wants changed.
type UpdateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=30,username_format"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
}

func (r *UpdateProfileRequest) Validate() error {
	if r.Username != nil {
		v := strings.TrimSpace(*r.Username)
		r.Username = &v
	}
	if r.Email != nil {
		v := strings.TrimSpace(strings.ToLower(*r.Email))
		r.Email = &v
	}
	return validateStruct(r)
}

// -------- Moderation --------

// RejectRequest body is optional; an empty reason falls back to the
// service default.
type RejectRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

func (r *RejectRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	return validateStruct(r)
}

type CreateManagerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,username_format"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

func (r *CreateManagerRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	return validateStruct(r)
}
