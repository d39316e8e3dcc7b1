package dto

// OTP email purposes carried on the queue.
const (
	OtpPurposeVerify = "verify"
	OtpPurposeReset  = "reset"
)

// OtpEmailEvent is published by the API and consumed by the mailer.
type OtpEmailEvent struct {
	Email   string `json:"email"`
	Code    string `json:"code"`
	Purpose string `json:"purpose"`
}
