package mailer

import (
	"encoding/json"
	"log"

	"github.com/courseforge/courseforge/internal/dto"
)

// Sender sends a rendered OTP email. Satisfied by MailService.
type Sender interface {
	SendOtpEmail(to, code, purpose string) error
}

type OtpEmailHandler struct {
	sender Sender
}

func NewOtpEmailHandler(sender Sender) *OtpEmailHandler {
	return &OtpEmailHandler{sender: sender}
}

func (h *OtpEmailHandler) HandleMessage(message string) error {
	var event dto.OtpEmailEvent

	if err := json.Unmarshal([]byte(message), &event); err != nil {
		log.Printf("invalid event payload: %s\n", message)
		return err
	}

	log.Printf("OTP email event received: email=%s purpose=%s", event.Email, event.Purpose)

	err := h.sender.SendOtpEmail(event.Email, event.Code, event.Purpose)
	if err != nil {
		log.Println("[MAIL] send failed, err =", err)
	}
	return err
}
