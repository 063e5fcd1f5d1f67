package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendWelcomeEmail(email, username string) error
	SendVerificationCode(email, username, code string) error
	SendPasswordResetEmail(email, username, resetLink string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) send(email, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}

func (s *emailService) SendWelcomeEmail(email, username string) error {
	body := fmt.Sprintf(`
		<h2>Welcome to Notedesk, %s!</h2>
		<p>Thank you for registering. Please log in to verify your account.</p>
		<p>Best regards,<br>The Notedesk Team</p>
	`, username)

	if err := s.send(email, "Welcome to Notedesk!", body); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

func (s *emailService) SendVerificationCode(email, username, code string) error {
	body := fmt.Sprintf(`
		<h3>Hello %s,</h3>
		<p>Your one-time verification code is: <strong>%s</strong></p>
		<p>The code is valid for 6 minutes.</p>
		<p>If you did not try to log in, you can ignore this email.</p>
	`, username, code)

	if err := s.send(email, "Email verification", body); err != nil {
		return fmt.Errorf("failed to send verification code: %w", err)
	}
	return nil
}

func (s *emailService) SendPasswordResetEmail(email, username, resetLink string) error {
	body := fmt.Sprintf(`
		<h3>Password reset requested</h3>
		<p>Hello %s, we received a request to reset the password for your account.</p>
		<p><a href="%s">Click here to reset your password</a></p>
		<p>If you did not request this change, you can ignore this email.</p>
	`, username, resetLink)

	if err := s.send(email, "Reset Password", body); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}
