package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	custom_error "github.com/jayeuse/Inventory-System-sub000/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, username, password string) (Challenge, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(Challenge), args.Error(1)
}

func (m *MockAuthenticator) CheckUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthenticator) VerifyOTP(ctx context.Context, otpSession, code string) error {
	return m.Called(ctx, otpSession, code).Error(0)
}

func (m *MockAuthenticator) ResendOTP(ctx context.Context, otpSession string) (string, error) {
	args := m.Called(ctx, otpSession)
	return args.String(0), args.Error(1)
}

func (m *MockAuthenticator) RequestPasswordReset(ctx context.Context, username string) (Challenge, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(Challenge), args.Error(1)
}

func (m *MockAuthenticator) VerifyResetOTP(ctx context.Context, resetSession, code string) error {
	return m.Called(ctx, resetSession, code).Error(0)
}

func (m *MockAuthenticator) ResendResetOTP(ctx context.Context, resetSession string) (string, error) {
	args := m.Called(ctx, resetSession)
	return args.String(0), args.Error(1)
}

func (m *MockAuthenticator) ResetPassword(ctx context.Context, resetSession, newPassword, confirmPassword string) error {
	return m.Called(ctx, resetSession, newPassword, confirmPassword).Error(0)
}

func serverError(status int, body string) error {
	return custom_error.WrapHTTPError(status, []byte(body))
}

func TestLoginValidationSendsNothing(t *testing.T) {
	auth := new(MockAuthenticator)
	flow := NewFlow(auth, nil)

	err := flow.Login(context.Background(), " ", "secret")
	require.Error(t, err)
	assert.Equal(t, MsgMissingCredentials, flow.LastError())
	assert.Equal(t, CardLogin, flow.Card())
	auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginThenOTP(t *testing.T) {
	ctx := context.Background()
	auth := new(MockAuthenticator)
	auth.On("Login", ctx, "jdoe", "secret").Return(Challenge{Session: "otp-1", Email: "j***@mail.com"}, nil)
	auth.On("ResendOTP", ctx, "otp-1").Return("otp-2", nil)
	auth.On("VerifyOTP", ctx, "otp-2", "123456").Return(nil)
	flow := NewFlow(auth, nil)

	require.NoError(t, flow.Login(ctx, "jdoe", "secret"))
	assert.Equal(t, CardOtpPending, flow.Card())
	assert.Equal(t, "j***@mail.com", flow.View().Email)

	require.Error(t, flow.VerifyOTP(ctx, "12345"))
	assert.Equal(t, MsgIncompleteCode, flow.LastError())
	assert.Equal(t, CardOtpPending, flow.Card())

	require.NoError(t, flow.ResendOTP(ctx))
	assert.Equal(t, MsgCodeResent, flow.View().Notice)

	require.NoError(t, flow.VerifyOTP(ctx, "123456"))
	assert.Equal(t, CardAuthenticated, flow.Card())
	assert.Equal(t, "jdoe", flow.Username())
	auth.AssertExpectations(t)
}

func TestLoginFailureMessages(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		err         error
		exists      bool
		wantMessage string
		wantForgot  bool
	}{
		{"invalid credentials, user exists", serverError(http.StatusUnauthorized, `{"error":"Invalid username or password"}`), true, "Invalid username or password", true},
		{"invalid credentials, no user", serverError(http.StatusUnauthorized, `{"error":"Invalid username or password"}`), false, "Invalid username or password", false},
		{"locked account", serverError(http.StatusForbidden, `{"error":"Account is deactivated"}`), false, "Account is deactivated", false},
		{"no message", serverError(http.StatusInternalServerError, ``), false, "Login failed", false},
		{"network", errors.New("dial tcp: connection refused"), false, MsgNetworkError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(MockAuthenticator)
			auth.On("Login", ctx, "jdoe", "wrong").Return(Challenge{}, tt.err)
			auth.On("CheckUsername", ctx, "jdoe").Return(tt.exists, nil).Maybe()
			flow := NewFlow(auth, nil)

			require.Error(t, flow.Login(ctx, "jdoe", "wrong"))
			view := flow.View()
			assert.Equal(t, CardLogin, view.Card)
			assert.Equal(t, tt.wantMessage, view.Error)
			assert.Equal(t, tt.wantForgot, view.OfferForgot)
			if tt.wantForgot {
				assert.Equal(t, "jdoe", view.ResetUsername)
			}
		})
	}
}

func TestPasswordResetFlow(t *testing.T) {
	ctx := context.Background()
	auth := new(MockAuthenticator)
	auth.On("Login", ctx, "jdoe", "wrong").Return(Challenge{}, serverError(http.StatusUnauthorized, `{"error":"Invalid username or password"}`))
	auth.On("CheckUsername", ctx, "jdoe").Return(true, nil)
	auth.On("RequestPasswordReset", ctx, "jdoe").Return(Challenge{Session: "reset-1", Email: "j***@mail.com"}, nil)
	auth.On("ResendResetOTP", ctx, "reset-1").Return("reset-2", nil)
	auth.On("VerifyResetOTP", ctx, "reset-2", "654321").Return(nil)
	auth.On("ResetPassword", ctx, "reset-2", "newpassword", "newpassword").Return(nil)
	flow := NewFlow(auth, nil)

	require.Error(t, flow.Login(ctx, "jdoe", "wrong"))
	require.NoError(t, flow.ForgotPassword())
	assert.Equal(t, CardForgotUsername, flow.Card())

	require.NoError(t, flow.RequestReset(ctx, ""))
	assert.Equal(t, CardResetOtpPending, flow.Card())
	require.NoError(t, flow.ResendResetOTP(ctx))
	require.NoError(t, flow.VerifyResetOTP(ctx, "654321"))
	assert.Equal(t, CardNewPassword, flow.Card())

	for _, tc := range []struct{ pw, confirm, msg string }{
		{"", "newpassword", MsgMissingPasswords},
		{"newpassword", "newpasswórd", MsgPasswordMismatch},
		{"short", "short", MsgPasswordTooShort},
	} {
		require.Error(t, flow.ResetPassword(ctx, tc.pw, tc.confirm))
		assert.Equal(t, tc.msg, flow.LastError())
		assert.Equal(t, CardNewPassword, flow.Card())
	}

	require.NoError(t, flow.ResetPassword(ctx, "newpassword", "newpassword"))
	view := flow.View()
	assert.Equal(t, CardSuccess, view.Card)
	assert.Empty(t, view.ResetUsername)
	assert.False(t, view.OfferForgot)

	require.NoError(t, flow.BackToLogin())
	assert.Equal(t, CardLogin, flow.Card())
	auth.AssertExpectations(t)
}

func TestRequestResetNeedsUsername(t *testing.T) {
	auth := new(MockAuthenticator)
	flow := NewFlow(auth, nil)
	require.NoError(t, flow.ForgotPassword())

	require.Error(t, flow.RequestReset(context.Background(), ""))
	assert.Equal(t, MsgMissingUsername, flow.LastError())
	assert.Equal(t, CardForgotUsername, flow.Card())
}

func TestWrongCard(t *testing.T) {
	flow := NewFlow(new(MockAuthenticator), nil)

	assert.ErrorIs(t, flow.VerifyOTP(context.Background(), "123456"), ErrWrongCard)
	assert.ErrorIs(t, flow.ResetPassword(context.Background(), "a", "a"), ErrWrongCard)
	assert.Equal(t, CardLogin, flow.Card())
}

func TestFailedServerCallKeepsCard(t *testing.T) {
	ctx := context.Background()
	auth := new(MockAuthenticator)
	auth.On("Login", ctx, "jdoe", "secret").Return(Challenge{Session: "otp-1"}, nil)
	auth.On("VerifyOTP", ctx, "otp-1", "000000").Return(serverError(http.StatusBadRequest, `{"error":"Invalid or expired code"}`))
	flow := NewFlow(auth, nil)

	require.NoError(t, flow.Login(ctx, "jdoe", "secret"))
	require.Error(t, flow.VerifyOTP(ctx, "000000"))
	assert.Equal(t, CardOtpPending, flow.Card())
	assert.Equal(t, "Invalid or expired code", flow.LastError())
}
