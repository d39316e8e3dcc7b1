package mailer

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/courseforge/courseforge/internal/dto"
)

const verifyTemplate = `<html>
<body style="font-family: Arial, sans-serif;">
	<h2>Verify your email</h2>
	<p>Your verification code is:</p>
	<p style="font-size: 28px; font-weight: bold; letter-spacing: 4px;">{{.Code}}</p>
	<p>This code expires in 2 minutes.</p>
</body>
</html>`

const resetTemplate = `<html>
<body style="font-family: Arial, sans-serif;">
	<h2>Reset your password</h2>
	<p>Use this code to reset your password:</p>
	<p style="font-size: 28px; font-weight: bold; letter-spacing: 4px;">{{.Code}}</p>
	<p>This code expires in 2 minutes. If you did not request a reset, ignore this email.</p>
</body>
</html>`

var (
	verifyTmpl = template.Must(template.New("verify").Parse(verifyTemplate))
	resetTmpl  = template.Must(template.New("reset").Parse(resetTemplate))
)

type MailService struct {
	host         string
	port         string
	user         string
	password     string
	mailFrom     string
	mailFromName string
}

func NewMailService(host, port, user, password, mailFrom, mailFromName string) *MailService {
	return &MailService{
		host:         host,
		port:         port,
		user:         user,
		password:     password,
		mailFrom:     mailFrom,
		mailFromName: mailFromName,
	}
}

func (s *MailService) SendOtpEmail(to, code, purpose string) error {
	tmpl := verifyTmpl
	subject := "Verify your email"
	if purpose == dto.OtpPurposeReset {
		tmpl = resetTmpl
		subject = "Reset your password"
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]string{"Code": code}); err != nil {
		return err
	}

	fromHeader := fmt.Sprintf("%s <%s>", s.mailFromName, s.mailFrom)

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		buf.String(),
	}, "\r\n")

	log.Printf("[MAIL] smtp sending to=%s via=%s:%s", to, s.host, s.port)

	if err := s.sendSMTPWithTimeout(to, []byte(msg)); err != nil {
		return err
	}

	log.Printf("[MAIL] sent to=%s", to)
	return nil
}

func (s *MailService) sendSMTPWithTimeout(to string, msg []byte) error {
	addr := net.JoinHostPort(s.host, s.port)

	conn, err := net.DialTimeout("tcp", addr, 8*time.Second)
	if err != nil {
		return err
	}
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return err
		}
	}

	auth := smtp.PlainAuth("", s.user, s.password, s.host)
	if err := c.Auth(auth); err != nil {
		return err
	}

	if err := c.Mail(s.mailFrom); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
