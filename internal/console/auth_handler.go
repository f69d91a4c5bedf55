package console

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jayeuse/Inventory-System-sub000/internal/auth"
	"go.uber.org/zap"
)

type sessionRequest struct {
	Session string `json:"session" binding:"required"`
}

type loginRequest struct {
	Session  string `json:"session"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type codeRequest struct {
	Session string `json:"session" binding:"required"`
	Code    string `json:"code"`
}

type usernameRequest struct {
	Session  string `json:"session" binding:"required"`
	Username string `json:"username"`
}

type passwordRequest struct {
	Session         string `json:"session" binding:"required"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type flowResponse struct {
	Session string    `json:"session"`
	View    auth.View `json:"view"`
	Token   string    `json:"token,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// respond writes the card the flow is showing. A failed step keeps the card
// and carries its inline message.
func (h *Handler) respond(c *gin.Context, session *Session, err error) {
	view := session.Flow.View()
	if err != nil {
		c.JSON(statusFor(err), flowResponse{Session: session.ID, View: view, Error: view.Error})
		return
	}
	c.JSON(http.StatusOK, flowResponse{Session: session.ID, View: view})
}

func (h *Handler) lookup(c *gin.Context, id string) (*Session, bool) {
	session, ok := h.sessions.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown sign-in session"})
		return nil, false
	}
	return session, true
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	session, ok := h.sessions.Get(req.Session)
	if !ok {
		var err error
		if session, err = h.sessions.Create(); err != nil {
			h.logger.Error("Failed to create console session", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start sign-in", "details": err.Error()})
			return
		}
	}

	err := session.Flow.Login(c.Request.Context(), req.Username, req.Password)
	h.respond(c, session, err)
}

func (h *Handler) verifyOTP(c *gin.Context) {
	var req codeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}
	session, ok := h.lookup(c, req.Session)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := session.Flow.VerifyOTP(ctx, req.Code); err != nil {
		h.respond(c, session, err)
		return
	}

	token, err := h.signIn(ctx, session)
	if err != nil {
		h.fail(c, "Failed to complete sign-in", err)
		return
	}
	c.JSON(http.StatusOK, flowResponse{Session: session.ID, View: session.Flow.View(), Token: token})
}

// signIn loads the signed-in user and issues the console token.
func (h *Handler) signIn(ctx context.Context, session *Session) (string, error) {
	user, err := session.Services.Auth.Me(ctx)
	if err != nil {
		return "", err
	}
	token, err := h.tokens.GenerateJWT(session.ID, user.EffectiveRole().String(), user.Username)
	if err != nil {
		return "", err
	}
	session.setUser(user)
	h.logger.Info("Console user signed in",
		zap.String("session_id", session.ID),
		zap.String("username", user.Username),
		zap.String("role", user.EffectiveRole().String()),
	)
	return token, nil
}

// step runs one flow transition for the session named in the body.
func (h *Handler) step(c *gin.Context, req interface{ sessionID() string }, run func(ctx context.Context, flow *auth.Flow) error) {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}
	session, ok := h.lookup(c, req.sessionID())
	if !ok {
		return
	}
	h.respond(c, session, run(c.Request.Context(), session.Flow))
}

func (r *sessionRequest) sessionID() string { return r.Session }
func (r *codeRequest) sessionID() string { return r.Session }
func (r *usernameRequest) sessionID() string { return r.Session }
func (r *passwordRequest) sessionID() string { return r.Session }

func (h *Handler) resendOTP(c *gin.Context) {
	var req sessionRequest
	h.step(c, &req, func(ctx context.Context, flow *auth.Flow) error {
		return flow.ResendOTP(ctx)
	})
}

func (h *Handler) forgotPassword(c *gin.Context) {
	var req sessionRequest
	h.step(c, &req, func(_ context.Context, flow *auth.Flow) error {
		return flow.ForgotPassword()
	})
}

func (h *Handler) requestReset(c *gin.Context) {
	var req usernameRequest
	h.step(c, &req, func(ctx context.Context, flow *auth.Flow) error {
		return flow.RequestReset(ctx, req.Username)
	})
}

func (h *Handler) verifyResetOTP(c *gin.Context) {
	var req codeRequest
	h.step(c, &req, func(ctx context.Context, flow *auth.Flow) error {
		return flow.VerifyResetOTP(ctx, req.Code)
	})
}

func (h *Handler) resendResetOTP(c *gin.Context) {
	var req sessionRequest
	h.step(c, &req, func(ctx context.Context, flow *auth.Flow) error {
		return flow.ResendResetOTP(ctx)
	})
}

func (h *Handler) resetPassword(c *gin.Context) {
	var req passwordRequest
	h.step(c, &req, func(ctx context.Context, flow *auth.Flow) error {
		return flow.ResetPassword(ctx, req.NewPassword, req.ConfirmPassword)
	})
}

func (h *Handler) backToLogin(c *gin.Context) {
	var req sessionRequest
	h.step(c, &req, func(_ context.Context, flow *auth.Flow) error {
		return flow.BackToLogin()
	})
}
