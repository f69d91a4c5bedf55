package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	custom_error "github.com/jayeuse/Inventory-System-sub000/pkg/errors"
	"github.com/jayeuse/Inventory-System-sub000/pkg/validator"
	"go.uber.org/zap"
)

type Card string

const (
	CardLogin           Card = "login"
	CardOtpPending      Card = "otp-verification"
	CardForgotUsername  Card = "forgot-username"
	CardResetOtpPending Card = "reset-verification"
	CardNewPassword     Card = "new-password"
	CardSuccess         Card = "success"
	CardAuthenticated   Card = "authenticated"
)

const (
	MsgMissingCredentials = "Please enter both username and password"
	MsgIncompleteCode     = "Please enter the complete 6-digit code"
	MsgMissingUsername    = "Please enter your username first."
	MsgMissingPasswords   = "Please fill in both password fields"
	MsgPasswordMismatch   = "Passwords do not match"
	MsgPasswordTooShort   = "Password must be at least 8 characters long"
	MsgNetworkError       = "Network error. Please try again."
	MsgCodeResent         = "A new verification code has been sent to your email!"

	msgInvalidCredentials = "Invalid username or password"
	MinPasswordLength     = 8
)

// ErrWrongCard is returned when an action is not available on the active card.
var ErrWrongCard = errors.New("action not available on this card")

// Flow is the login and password reset state machine. Exactly one card is
// active; a failed call leaves the card unchanged and records LastError.
type Flow struct {
	mu     sync.Mutex
	auth   Authenticator
	logger *zap.Logger

	card          Card
	lastError     string
	notice        string
	email         string
	username      string
	otpSession    string
	resetSession  string
	resetUsername string
	offerForgot   bool
}

func NewFlow(auth Authenticator, logger *zap.Logger) *Flow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flow{auth: auth, logger: logger, card: CardLogin}
}

// View is a read-only copy of the flow state for rendering.
type View struct {
	Card          Card   `json:"card"`
	Error         string `json:"error,omitempty"`
	Notice        string `json:"notice,omitempty"`
	Email         string `json:"email,omitempty"`
	Username      string `json:"username,omitempty"`
	ResetUsername string `json:"reset_username,omitempty"`
	OfferForgot   bool   `json:"offer_forgot_password"`
}

func (f *Flow) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return View{
		Card:          f.card,
		Error:         f.lastError,
		Notice:        f.notice,
		Email:         f.email,
		Username:      f.username,
		ResetUsername: f.resetUsername,
		OfferForgot:   f.offerForgot,
	}
}

func (f *Flow) Card() Card {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.card
}

func (f *Flow) LastError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastError
}

// Username is the account that passed the password step.
func (f *Flow) Username() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.username
}

func (f *Flow) expect(cards ...Card) error {
	for _, card := range cards {
		if f.card == card {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrWrongCard, f.card)
}

// fail records the inline message for err and returns it as an error.
func (f *Flow) fail(err error, fallback string) error {
	var httpErr custom_error.CustomError
	switch {
	case errors.As(err, &httpErr):
		f.lastError = custom_error.ServerMessage(err)
		if f.lastError == "" {
			f.lastError = fallback
		}
	case errors.Is(err, validator.ErrInvalidInput):
		f.lastError = strings.TrimPrefix(err.Error(), validator.ErrInvalidInput.Error()+": ")
	default:
		f.lastError = MsgNetworkError
	}
	return fmt.Errorf("%s: %w", f.lastError, err)
}

func invalid(message string) error {
	return fmt.Errorf("%w: %s", validator.ErrInvalidInput, message)
}

func (f *Flow) clearMessages() {
	f.lastError = ""
	f.notice = ""
}

// Login submits the credentials. On "Invalid username or password" it asks
// the backend whether the username exists and, if so, offers the forgot
// password link for that username.
func (f *Flow) Login(ctx context.Context, username, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.expect(CardLogin); err != nil {
		return err
	}
	f.clearMessages()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return f.fail(invalid(MsgMissingCredentials), "")
	}

	challenge, err := f.auth.Login(ctx, username, password)
	if err != nil {
		failure := f.fail(err, "Login failed")
		if f.lastError == msgInvalidCredentials {
			f.checkUsername(ctx, username)
		}
		return failure
	}

	f.username = username
	f.otpSession = challenge.Session
	f.email = challenge.Email
	f.offerForgot = false
	f.card = CardOtpPending
	return nil
}

func (f *Flow) checkUsername(ctx context.Context, username string) {
	exists, err := f.auth.CheckUsername(ctx, username)
	if err != nil {
		f.logger.Warn("Failed to check username", zap.Error(err))
		return
	}
	if exists {
		f.offerForgot = true
		f.resetUsername = username
	}
}

func validCode(code string) bool {
	return validator.Var(code, "otp") == nil
}

func (f *Flow) VerifyOTP(ctx context.Context, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.expect(CardOtpPending); err != nil {
		return err
	}
	f.clearMessages()

	code = strings.TrimSpace(code)
	if !validCode(code) {
		return f.fail(invalid(MsgIncompleteCode), "")
	}
	if err := f.auth.VerifyOTP(ctx, f.otpSession, code); err != nil {
		return f.fail(err, "Verification failed")
	}

	f.otpSession = ""
	f.card = CardAuthenticated
	f.logger.Info("User authenticated", zap.String("username", f.username))
	return nil
}

// ResendOTP asks for a new code; the returned session replaces the old one.
func (f *Flow) ResendOTP(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.expect(CardOtpPending); err != nil {
		return err
	}
	f.clearMessages()

	session, err := f.auth.ResendOTP(ctx, f.otpSession)
	if err != nil {
		return f.fail(err, "Failed to resend code")
	}
	if session != "" {
		f.otpSession = session
	}
	f.notice = MsgCodeResent
	return nil
}

// ForgotPassword opens the forgot-username card.
func (f *Flow) ForgotPassword() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.expect(CardLogin); err != nil {
		return err
	}
	f.clearMessages()
	f.card = CardForgotUsername
	return nil
}

// RequestReset sends a reset code. An empty username falls back to the one
// remembered from a failed login.
func (f *Flow) RequestReset(ctx context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.expect(CardForgotUsername, CardLogin); err != nil {
		return err
	}
	f.clearMessages()

	username = strings.TrimSpace(username)
	if username == "" {
		username = f.resetUsername
	}
	if username == "" {
		return f.fail(invalid(MsgMissingUsername), "")
	}

	challenge, err := f.auth.RequestPasswordReset(ctx, username)
	if err != nil {
		return f.fail(err, "Failed to send password reset code")
	}

	f.resetUsername = username
	f.resetSession = challenge.Session
	f.email = challenge.Email
	f.card = CardResetOtpPending
	return nil
}

func (f *Flow) VerifyResetOTP(ctx context.Context, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.expect(CardResetOtpPending); err != nil {
		return err
	}
	f.clearMessages()

	code = strings.TrimSpace(code)
	if !validCode(code) {
		return f.fail(invalid(MsgIncompleteCode), "")
	}
	if err := f.auth.VerifyResetOTP(ctx, f.resetSession, code); err != nil {
		return f.fail(err, "Verification failed")
	}
	f.card = CardNewPassword
	return nil
}

func (f *Flow) ResendResetOTP(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.expect(CardResetOtpPending); err != nil {
		return err
	}
	f.clearMessages()

	session, err := f.auth.ResendResetOTP(ctx, f.resetSession)
	if err != nil {
		return f.fail(err, "Failed to resend code")
	}
	if session != "" {
		f.resetSession = session
	}
	f.notice = MsgCodeResent
	return nil
}

func (f *Flow) ResetPassword(ctx context.Context, newPassword, confirmPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.expect(CardNewPassword); err != nil {
		return err
	}
	f.clearMessages()

	switch {
	case newPassword == "" || confirmPassword == "":
		return f.fail(invalid(MsgMissingPasswords), "")
	case newPassword != confirmPassword:
		return f.fail(invalid(MsgPasswordMismatch), "")
	case len([]rune(newPassword)) < MinPasswordLength:
		return f.fail(invalid(MsgPasswordTooShort), "")
	}

	if err := f.auth.ResetPassword(ctx, f.resetSession, newPassword, confirmPassword); err != nil {
		return f.fail(err, "Password reset failed")
	}

	f.otpSession = ""
	f.resetSession = ""
	f.resetUsername = ""
	f.username = ""
	f.offerForgot = false
	f.card = CardSuccess
	return nil
}

// BackToLogin returns to the login card from any card but Authenticated,
// abandoning a reset in progress.
func (f *Flow) BackToLogin() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.card == CardAuthenticated {
		return fmt.Errorf("%w: %s", ErrWrongCard, f.card)
	}
	f.clearMessages()
	if f.card == CardResetOtpPending || f.card == CardNewPassword {
		f.resetSession = ""
		f.resetUsername = ""
	}
	f.card = CardLogin
	return nil
}
