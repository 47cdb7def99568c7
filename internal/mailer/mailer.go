package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

const otpSubject = "Your SAMAJ ISSUE verification code"

const otpTextBody = `Your OTP code is: %s
Use this to verify your identity on SAMAJ ISSUE.
This code will expire in 5 minutes.
`

const otpHTMLBody = `<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6;">
    <h2>SAMAJ ISSUE verification</h2>
    <p>Your OTP code is:</p>
    <h1 style="background: #f2f2f2; padding: 10px; border-radius: 5px; width: fit-content;">%s</h1>
    <p>This code is valid for <strong>5 minutes</strong>.</p>
    <p>If you did not request this code, you can safely ignore this email.</p>
  </body>
</html>`

// SMTPMailer delivers OTP codes over SMTP with STARTTLS.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func New(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
	}
}

// SendOTP sends synchronously; gomail carries no context support, delivery
// is bounded by the SMTP server's own timeouts.
func (m *SMTPMailer) SendOTP(_ context.Context, to, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", otpSubject)
	msg.SetBody("text/plain", fmt.Sprintf(otpTextBody, code))
	msg.AddAlternative("text/html", fmt.Sprintf(otpHTMLBody, code))

	d := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send OTP email: %w", err)
	}
	return nil
}
