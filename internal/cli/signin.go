package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/frontauth/pkg/authsdk"
)

type signInFlags struct {
	password     string
	strategy     string
	code         string
	secondFactor string
	secondCode   string
}

func newSignInCommand(opts *Options) *cobra.Command {
	f := &signInFlags{}

	cmd := &cobra.Command{
		Use:   "signin <identifier>",
		Short: "Sign in with an email address, phone number or username",
		Long: `Sign in and persist the session.

Missing secrets are prompted for on stdin. Accounts with a second factor are
asked for a TOTP code unless --second-factor says otherwise.

Examples:
  frontauth signin ada@example.com --password 'correct-horse-battery'
  frontauth signin ada@example.com --strategy email_code
  frontauth signin ada@example.com --second-factor backup_code
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignIn(cmd, opts, f, args[0])
		},
	}

	cmd.Flags().StringVar(&f.password, "password", "", "password (prompted when the strategy needs one)")
	cmd.Flags().StringVar(&f.strategy, "strategy", authsdk.StrategyPassword, "first factor: password, email_code or phone_code")
	cmd.Flags().StringVar(&f.code, "code", "", "first-factor code (prompted after it is sent)")
	cmd.Flags().StringVar(&f.secondFactor, "second-factor", authsdk.StrategyTOTP, "second factor: totp, backup_code or phone_code")
	cmd.Flags().StringVar(&f.secondCode, "second-factor-code", "", "second-factor code (prompted when needed)")
	return cmd
}

func runSignIn(cmd *cobra.Command, opts *Options, f *signInFlags, identifier string) error {
	sdk, done, err := connect(cmd, opts)
	if err != nil {
		return err
	}
	defer done()

	ctx := cmd.Context()
	if sdk.IsSignedIn() {
		fmt.Fprintf(cmd.OutOrStdout(), "Already signed in as %s\n", displayName(sdk.User()))
		return nil
	}

	ask := newPrompter(cmd)
	flow := sdk.SignIn()

	var si *authsdk.SignIn
	switch f.strategy {
	case authsdk.StrategyPassword:
		password, err := ask.value(f.password, "Password")
		if err != nil {
			return err
		}
		if si, err = flow.CreateWithPassword(ctx, identifier, password); err != nil {
			return err
		}

	case authsdk.StrategyEmailCode, authsdk.StrategyPhoneCode:
		if _, err := flow.Create(ctx, identifier); err != nil {
			return err
		}
		if _, err := flow.PrepareFirstFactor(ctx, authsdk.FactorParams{Strategy: f.strategy}); err != nil {
			return err
		}
		code, err := ask.value(f.code, "Verification code")
		if err != nil {
			return err
		}
		if si, err = flow.AttemptFirstFactor(ctx, authsdk.AttemptParams{Strategy: f.strategy, Code: code}); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unsupported strategy %q", f.strategy)
	}

	if si.Status == authsdk.SignInNeedsSecondFactor {
		if f.secondFactor == authsdk.StrategyPhoneCode {
			if _, err := flow.PrepareSecondFactor(ctx, authsdk.FactorParams{Strategy: f.secondFactor}); err != nil {
				return err
			}
		}
		code, err := ask.value(f.secondCode, "Second-factor code")
		if err != nil {
			return err
		}
		if si, err = flow.AttemptSecondFactor(ctx, authsdk.AttemptParams{Strategy: f.secondFactor, Code: code}); err != nil {
			return err
		}
	}

	if !si.IsComplete() {
		return fmt.Errorf("sign-in not complete: %s", si.Status)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (session %s)\n", displayName(sdk.User()), si.CreatedSessionID)
	return nil
}
