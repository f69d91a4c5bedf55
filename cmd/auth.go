package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jayeuse/Inventory-System-sub000/internal/auth"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var errLoginCancelled = errors.New("login cancelled")

// prompter reads answers line by line from the command input. Secrets are
// read without echo when the input is a terminal.
type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
	tty     int
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{scanner: bufio.NewScanner(in), out: out, tty: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.tty = int(f.Fd())
	}
	return p
}

func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", errLoginCancelled
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// askSecret is ask without echo. Piped input falls back to ask.
func (p *prompter) askSecret(question string) (string, error) {
	if p.tty < 0 {
		return p.ask(question)
	}
	fmt.Fprint(p.out, question)
	secret, err := term.ReadPassword(p.tty)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(secret)), nil
}

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in with username, password and the emailed code",
		Long: `Runs the sign-in cards interactively. At the username prompt type "forgot"
to reset a password; at a code prompt type "resend" for a new code or "back"
to return to the sign-in card.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.services.Client.Bootstrap(ctx); err != nil {
				return err
			}

			flow := auth.NewFlow(a.services.Auth, a.logger)
			if err := runLoginFlow(ctx, flow, newPrompter(a.in, a.out), a.out); err != nil {
				return err
			}

			if err := a.services.Client.SaveSession(a.cfg.SessionFile); err != nil {
				return err
			}
			user, err := a.services.Auth.Me(ctx)
			if err != nil {
				return err
			}
			a.notifier.Success(fmt.Sprintf("Welcome, %s (%s)", user.Username, user.EffectiveRole()))
			return nil
		},
	}
}

// runLoginFlow drives the flow card by card until it is authenticated.
// Failed steps print their inline message and stay on the same card.
func runLoginFlow(ctx context.Context, flow *auth.Flow, p *prompter, out io.Writer) error {
	for {
		view := flow.View()
		var err error

		switch view.Card {
		case auth.CardAuthenticated:
			return nil

		case auth.CardLogin:
			var username, password string
			if username, err = p.ask("Username: "); err != nil {
				return err
			}
			if strings.EqualFold(username, "forgot") {
				err = flow.ForgotPassword()
				break
			}
			if password, err = p.askSecret("Password: "); err != nil {
				return err
			}
			err = flow.Login(ctx, username, password)
			if err != nil && flow.View().OfferForgot {
				fmt.Fprintln(out, `Forgot your password? Type "forgot" at the username prompt.`)
			}

		case auth.CardOtpPending:
			code, askErr := p.ask(fmt.Sprintf("Code sent to %s (resend/back): ", view.Email))
			if askErr != nil {
				return askErr
			}
			switch strings.ToLower(code) {
			case "resend":
				err = flow.ResendOTP(ctx)
			case "back":
				err = flow.BackToLogin()
			default:
				err = flow.VerifyOTP(ctx, code)
			}

		case auth.CardForgotUsername:
			question := "Username to reset (back): "
			if view.ResetUsername != "" {
				question = fmt.Sprintf("Username to reset [%s] (back): ", view.ResetUsername)
			}
			username, askErr := p.ask(question)
			if askErr != nil {
				return askErr
			}
			if strings.EqualFold(username, "back") {
				err = flow.BackToLogin()
			} else {
				err = flow.RequestReset(ctx, username)
			}

		case auth.CardResetOtpPending:
			code, askErr := p.ask(fmt.Sprintf("Reset code sent to %s (resend/back): ", view.Email))
			if askErr != nil {
				return askErr
			}
			switch strings.ToLower(code) {
			case "resend":
				err = flow.ResendResetOTP(ctx)
			case "back":
				err = flow.BackToLogin()
			default:
				err = flow.VerifyResetOTP(ctx, code)
			}

		case auth.CardNewPassword:
			password, askErr := p.askSecret("New password: ")
			if askErr != nil {
				return askErr
			}
			confirm, askErr := p.askSecret("Confirm password: ")
			if askErr != nil {
				return askErr
			}
			err = flow.ResetPassword(ctx, password, confirm)

		case auth.CardSuccess:
			fmt.Fprintln(out, "Password updated. Sign in with your new password.")
			err = flow.BackToLogin()

		default:
			return fmt.Errorf("unexpected sign-in card %q", view.Card)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		next := flow.View()
		if err != nil && next.Error != "" {
			fmt.Fprintln(out, next.Error)
		}
		if next.Notice != "" {
			fmt.Fprintln(out, next.Notice)
		}
	}
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the backend session and forget the saved cookies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.services.Client.HasSession() {
				if err := a.services.Auth.Logout(cmd.Context()); err != nil {
					a.logger.Warn("Backend logout failed", zap.Error(err))
				}
			}
			if err := a.services.Client.ClearSession(a.cfg.SessionFile); err != nil {
				return err
			}
			a.notifier.Info("Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			user, err := a.services.Auth.Me(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s\t%s\t%s\n", user.Username, user.EffectiveRole(), user.Email)
			return nil
		},
	}
}
