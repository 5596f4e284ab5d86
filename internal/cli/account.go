package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/opsdash/internal/credential"
	"github.com/roach88/opsdash/internal/session"
)

// AccountOptions holds flags for signup and login.
type AccountOptions struct {
	*RootOptions
	Name     string
	Email    string
	Password string
}

// NewSignupCommand creates the signup command.
func NewSignupCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AccountOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account",
		Long: `Register a new account in the credential database and sign it in.

The password must be at least 8 characters and contain an uppercase
letter, a lowercase letter, a digit and a special character.

Exit codes:
  0 - Account created
  1 - Weak password or email already registered
  2 - Command error`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignup(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "full name")
	cmd.Flags().StringVar(&opts.Email, "email", "", "email address")
	cmd.Flags().StringVar(&opts.Password, "password", "", "password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AccountOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials against the credential database",
		Long: `Check an email and password against the registered accounts.

A wrong password and an unknown email give the same error.

Exit codes:
  0 - Signed in
  1 - Invalid email or password
  2 - Command error`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "email address")
	cmd.Flags().StringVar(&opts.Password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func runSignup(opts *AccountOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if err := credential.ValidatePassword(opts.Password); err != nil {
		var pe *credential.PolicyError
		var details any
		if errors.As(err, &pe) {
			details = map[string]string{"rule": string(pe.Rule)}
		}
		return f.Fail(ExitFailure, ErrCodeWeakPassword, err.Error(), details)
	}

	a, err := openApp(cmd.Context(), opts.RootOptions, f)
	if err != nil {
		return err
	}
	defer a.Close()

	sess, err := a.state.Signup(cmd.Context(), opts.Name, opts.Email, opts.Password)
	if err != nil {
		return failSession(f, err)
	}
	return f.Render(sess, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Account created for %s <%s> (%s)\n", sess.Name, sess.Email, sess.Company)
	})
}

func runLogin(opts *AccountOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	a, err := openApp(cmd.Context(), opts.RootOptions, f)
	if err != nil {
		return err
	}
	defer a.Close()

	sess, err := a.state.Login(opts.Email, opts.Password)
	if err != nil {
		return failSession(f, err)
	}
	return f.Render(sess, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Signed in as %s <%s> (%s)\n", sess.Name, sess.Email, sess.Company)
	})
}

// failSession reports a session error under its code. Anything else is a
// storage problem.
func failSession(f *OutputFormatter, err error) error {
	var se *session.Error
	if errors.As(err, &se) {
		return f.Fail(ExitFailure, string(se.Code), se.Message, nil)
	}
	return f.Fail(ExitCommandError, ErrCodeDatabase, err.Error(), nil)
}
