package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"notedesk/internal/models"
	"notedesk/internal/repositories"
)

// AccountService orchestrates registration, login and the password-reset
// flow. It owns the OTP and reset-request stores; the stores never call back
// into it. Email delivery is fire-and-forget: send failures are logged and
// never surfaced to the caller.
type AccountService interface {
	Register(req *models.RegisterRequest) (*models.User, error)
	Login(email, password string) (*models.User, error)
	VerifyLogin(email, code string) (*models.User, error)
	ResendCode(email string) error
	ForgotPassword(email string) error
	ResetPassword(requestID, password, confirm string) error
	CurrentUser(userID int) (*models.User, error)
}

type accountService struct {
	users  repositories.UserRepository
	otp    OTPService
	resets ResetRequestService
	emails EmailService
	auth   AuthService

	resetLinkBase string
	resetTTL      time.Duration
	now           func() time.Time
}

func NewAccountService(
	users repositories.UserRepository,
	otp OTPService,
	resets ResetRequestService,
	emails EmailService,
	auth AuthService,
	resetLinkBase string,
	resetTTL time.Duration,
) AccountService {
	return &accountService{
		users:         users,
		otp:           otp,
		resets:        resets,
		emails:        emails,
		auth:          auth,
		resetLinkBase: resetLinkBase,
		resetTTL:      resetTTL,
		now:           time.Now,
	}
}

func (s *accountService) Register(req *models.RegisterRequest) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	username := strings.TrimSpace(req.Username)

	if existing, err := s.users.GetByEmail(email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailTaken
	}
	if existing, err := s.users.GetByUsername(username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	go func() {
		if err := s.emails.SendWelcomeEmail(user.Email, user.Username); err != nil {
			log.Printf("[account][register] welcome email failed for %s: %v", user.Email, err)
		}
	}()
	return user, nil
}

// Login checks the password and gates the session behind an emailed OTP: on
// success the caller gets the user back but no token until VerifyLogin.
func (s *accountService) Login(email, password string) (*models.User, error) {
	user, err := s.findUser(email)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(user.PasswordHash) == "" {
		log.Printf("[account][login] userID=%d has no password set", user.ID)
		return nil, ErrPasswordNotSet
	}
	if err := s.auth.CheckPassword(strings.TrimSpace(password), user.PasswordHash); err != nil {
		log.Printf("[account][login] password mismatch for userID=%d", user.ID)
		return nil, ErrInvalidPassword
	}

	code, err := s.otp.IssueInitial(user.ID)
	if errors.Is(err, ErrActiveChallenge) {
		// a previous login already left a challenge; renew it so the
		// attempt counter keeps counting
		code, err = s.otp.Reissue(user.ID)
	}
	if err != nil {
		return nil, err
	}

	s.sendCodeEmail(user, code)
	return user, nil
}

// VerifyLogin consumes the OTP. The record is deleted only on success, the
// user is marked verified on first pass.
func (s *accountService) VerifyLogin(email, code string) (*models.User, error) {
	user, err := s.findUser(email)
	if err != nil {
		return nil, err
	}
	if err := s.otp.Verify(user.ID, strings.TrimSpace(code)); err != nil {
		return nil, err
	}
	if err := s.otp.Delete(user.ID); err != nil {
		return nil, err
	}
	if !user.IsVerified {
		if err := s.users.MarkVerified(user.ID); err != nil {
			return nil, err
		}
		user.IsVerified = true
	}
	log.Printf("[account][verify] login verified for userID=%d", user.ID)
	return user, nil
}

func (s *accountService) ResendCode(email string) error {
	user, err := s.findUser(email)
	if err != nil {
		return err
	}
	code, err := s.otp.Reissue(user.ID)
	if err != nil {
		return err
	}
	s.sendCodeEmail(user, code)
	return nil
}

func (s *accountService) ForgotPassword(email string) error {
	user, err := s.findUser(email)
	if err != nil {
		return err
	}
	requestID, err := s.resets.CreateOrRenew(user.ID, s.now().Add(s.resetTTL))
	if err != nil {
		return err
	}

	link := s.resetLinkBase + requestID
	go func() {
		if err := s.emails.SendPasswordResetEmail(user.Email, user.Username, link); err != nil {
			log.Printf("[account][forgot] reset email failed for userID=%d: %v", user.ID, err)
		}
	}()
	return nil
}

// ResetPassword completes the emailed-link flow. The request record is
// deleted only after the password change went through.
func (s *accountService) ResetPassword(requestID, password, confirm string) error {
	if strings.TrimSpace(password) != strings.TrimSpace(confirm) {
		return ErrPasswordMismatch
	}
	ownerID, err := s.resets.Resolve(strings.TrimSpace(requestID))
	if err != nil {
		return err
	}
	hash, err := s.auth.HashPassword(strings.TrimSpace(password))
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ownerID, hash); err != nil {
		return err
	}
	log.Printf("[account][reset] password changed for userID=%d", ownerID)
	return s.resets.Delete(ownerID)
}

func (s *accountService) CurrentUser(userID int) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *accountService) findUser(email string) (*models.User, error) {
	user, err := s.users.GetByEmail(strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *accountService) sendCodeEmail(user *models.User, code string) {
	go func() {
		if err := s.emails.SendVerificationCode(user.Email, user.Username, code); err != nil {
			log.Printf("[account][otp] code email failed for userID=%d: %v", user.ID, err)
		}
	}()
}
