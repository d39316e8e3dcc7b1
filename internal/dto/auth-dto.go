package dto

type SignupRequest struct {
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=5"`
	Name      string   `json:"name" validate:"required"`
	Skills    string   `json:"skills,omitempty"`
	Interests []string `json:"interests,omitempty"`
	Goals     []string `json:"goals,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is shared by login, OTP verification and Google login.
type LoginResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
	UserID       uint   `json:"userId"`
}

type OtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp" validate:"required,len=6"`
}

type ResendOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type NewPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required,min=5"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenPairResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type GoogleTokenRequest struct {
	TokenID string `json:"tokenId" validate:"required"`
}

type UpdateProfileRequest struct {
	Email     string   `json:"email" validate:"required,email"`
	Name      string   `json:"name" validate:"required"`
	Skills    string   `json:"skills,omitempty"`
	Interests []string `json:"interests,omitempty"`
	Goals     []string `json:"goals,omitempty"`
}

// AuthClaims is what the middleware stores in the request context after
// verifying an access token.
type AuthClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}
