package mailer

import (
	"testing"

	"github.com/courseforge/courseforge/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []dto.OtpEmailEvent
	err  error
}

func (s *fakeSender) SendOtpEmail(to, code, purpose string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, dto.OtpEmailEvent{Email: to, Code: code, Purpose: purpose})
	return nil
}

func TestHandleMessage(t *testing.T) {
	sender := &fakeSender{}
	h := NewOtpEmailHandler(sender)

	err := h.HandleMessage(`{"email":"somchai@example.com","code":"123456","purpose":"verify"}`)
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "somchai@example.com", sender.sent[0].Email)
	assert.Equal(t, "123456", sender.sent[0].Code)
	assert.Equal(t, dto.OtpPurposeVerify, sender.sent[0].Purpose)
}

func TestHandleMessageBadPayload(t *testing.T) {
	sender := &fakeSender{}
	h := NewOtpEmailHandler(sender)

	err := h.HandleMessage("not json")
	assert.Error(t, err)
	assert.Empty(t, sender.sent)
}
