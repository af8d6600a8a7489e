package dto

import "time"

// LoginRequest is the email and password login used by admins, clients and candidates.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// EmployeeLoginRequest accepts either email or phone.
type EmployeeLoginRequest struct {
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	ContactNo string `json:"contactNo"`
	Password  string `json:"password" validate:"required"`
}

// RetailerLoginRequest accepts the email or the contact number.
type RetailerLoginRequest struct {
	Email      string `json:"email"`
	ContactNo  string `json:"contactNo"`
	Identifier string `json:"identifier"`
	Password   string `json:"password" validate:"required"`
}

// ForgotPasswordRequest starts an admin password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest completes an admin password reset.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// SendOTPRequest asks for a phone verification code.
type SendOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// VerifyOTPRequest checks a phone verification code.
type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	OTP   string `json:"otp" validate:"required"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
