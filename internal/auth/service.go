package auth

import (
	"context"
	"errors"

	custom_error "github.com/jayeuse/Inventory-System-sub000/pkg/errors"
	"github.com/jayeuse/Inventory-System-sub000/pkg/models"
	"go.uber.org/zap"
)

const (
	LoginPath                = "/api/auth/login/"
	LogoutPath               = "/api/auth/logout/"
	MePath                   = "/api/auth/me/"
	CheckUsernamePath        = "/api/auth/check-username/"
	VerifyOTPPath            = "/api/auth/verify-otp/"
	ResendOTPPath            = "/api/auth/resend-otp/"
	RequestPasswordResetPath = "/api/auth/request-password-reset/"
	VerifyResetOTPPath       = "/api/auth/verify-reset-otp/"
	ResetPasswordPath        = "/api/auth/reset-password/"
	ResendResetOTPPath       = "/api/auth/resend-reset-otp/"
)

// Challenge is what the backend returns when it sends a one-time passcode.
// Email is masked by the server.
type Challenge struct {
	Session string
	Email   string
}

// Authenticator is the set of backend auth calls the login flow drives.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (Challenge, error)
	CheckUsername(ctx context.Context, username string) (bool, error)
	VerifyOTP(ctx context.Context, otpSession, code string) error
	ResendOTP(ctx context.Context, otpSession string) (string, error)
	RequestPasswordReset(ctx context.Context, username string) (Challenge, error)
	VerifyResetOTP(ctx context.Context, resetSession, code string) error
	ResendResetOTP(ctx context.Context, resetSession string) (string, error)
	ResetPassword(ctx context.Context, resetSession, newPassword, confirmPassword string) error
}

// Client is the part of apiclient.Client used here.
type Client interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
}

type Service struct {
	client Client
	logger *zap.Logger
}

var _ Authenticator = (*Service)(nil)

func NewService(client Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type otpResponse struct {
	OTPSession   string `json:"otp_session"`
	ResetSession string `json:"reset_session"`
	Email        string `json:"email"`
}

type otpRequest struct {
	OTPSession   string `json:"otp_session,omitempty"`
	ResetSession string `json:"reset_session,omitempty"`
	OTPCode      string `json:"otp_code,omitempty"`
}

type resetPasswordRequest struct {
	ResetSession    string `json:"reset_session"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (s *Service) Login(ctx context.Context, username, password string) (Challenge, error) {
	var resp otpResponse
	if err := s.client.Post(ctx, LoginPath, loginRequest{Username: username, Password: password}, &resp); err != nil {
		return Challenge{}, err
	}
	s.logger.Debug("Login accepted, OTP sent", zap.String("username", username))
	return Challenge{Session: resp.OTPSession, Email: resp.Email}, nil
}

// CheckUsername reports whether the account exists. Only a 404 counts as
// "no such user"; other failures are returned.
func (s *Service) CheckUsername(ctx context.Context, username string) (bool, error) {
	err := s.client.Post(ctx, CheckUsernamePath, map[string]string{"username": username}, nil)
	if err == nil {
		return true, nil
	}
	var notFound *custom_error.NotFoundError
	if errors.As(err, &notFound) {
		return false, nil
	}
	return false, err
}

func (s *Service) VerifyOTP(ctx context.Context, otpSession, code string) error {
	return s.client.Post(ctx, VerifyOTPPath, otpRequest{OTPSession: otpSession, OTPCode: code}, nil)
}

func (s *Service) ResendOTP(ctx context.Context, otpSession string) (string, error) {
	var resp otpResponse
	if err := s.client.Post(ctx, ResendOTPPath, otpRequest{OTPSession: otpSession}, &resp); err != nil {
		return "", err
	}
	return resp.OTPSession, nil
}

func (s *Service) RequestPasswordReset(ctx context.Context, username string) (Challenge, error) {
	var resp otpResponse
	if err := s.client.Post(ctx, RequestPasswordResetPath, map[string]string{"username": username}, &resp); err != nil {
		return Challenge{}, err
	}
	return Challenge{Session: resp.ResetSession, Email: resp.Email}, nil
}

func (s *Service) VerifyResetOTP(ctx context.Context, resetSession, code string) error {
	return s.client.Post(ctx, VerifyResetOTPPath, otpRequest{ResetSession: resetSession, OTPCode: code}, nil)
}

func (s *Service) ResendResetOTP(ctx context.Context, resetSession string) (string, error) {
	var resp otpResponse
	if err := s.client.Post(ctx, ResendResetOTPPath, otpRequest{ResetSession: resetSession}, &resp); err != nil {
		return "", err
	}
	return resp.ResetSession, nil
}

func (s *Service) ResetPassword(ctx context.Context, resetSession, newPassword, confirmPassword string) error {
	return s.client.Post(ctx, ResetPasswordPath, resetPasswordRequest{
		ResetSession:    resetSession,
		NewPassword:     newPassword,
		ConfirmPassword: confirmPassword,
	}, nil)
}

func (s *Service) Logout(ctx context.Context) error {
	return s.client.Post(ctx, LogoutPath, nil, nil)
}

// Me returns the signed in user as seen by the backend.
func (s *Service) Me(ctx context.Context) (*models.CurrentUser, error) {
	var user models.CurrentUser
	if err := s.client.Get(ctx, MePath, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
