package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/frontauth/pkg/authsdk"
)

func newSignUpCommand(opts *Options) *cobra.Command {
	var (
		p    authsdk.SignUpParams
		code string
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Long: `Create an account. A code is sent to the email address or phone number
given; enter it when prompted (or pass --code) to finish.

Example:
  frontauth signup --email grace@example.com --password 'correct-horse-battery'
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSignUp(cmd, opts, p, code)
		},
	}

	cmd.Flags().StringVar(&p.EmailAddress, "email", "", "email address")
	cmd.Flags().StringVar(&p.PhoneNumber, "phone", "", "phone number")
	cmd.Flags().StringVar(&p.Username, "username", "", "username")
	cmd.Flags().StringVar(&p.Password, "password", "", "password")
	cmd.Flags().StringVar(&p.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&p.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&code, "code", "", "verification code for the first unverified field")
	return cmd
}

func runSignUp(cmd *cobra.Command, opts *Options, p authsdk.SignUpParams, code string) error {
	sdk, done, err := connect(cmd, opts)
	if err != nil {
		return err
	}
	defer done()

	ctx := cmd.Context()
	ask := newPrompter(cmd)
	flow := sdk.SignUp()

	su, err := flow.Create(ctx, p)
	if err != nil {
		return err
	}

	for _, field := range []string{authsdk.FieldEmailAddress, authsdk.FieldPhoneNumber} {
		if !slices.Contains(su.UnverifiedFields, field) || su.IsComplete() {
			continue
		}
		strategy := authsdk.StrategyEmailCode
		if field == authsdk.FieldPhoneNumber {
			strategy = authsdk.StrategyPhoneCode
		}
		if _, err := flow.PrepareVerification(ctx, strategy, ""); err != nil {
			return err
		}
		entered, err := ask.value(code, "Verification code for "+strings.ReplaceAll(field, "_", " "))
		if err != nil {
			return err
		}
		code = ""
		if su, err = flow.AttemptVerification(ctx, strategy, entered); err != nil {
			return err
		}
	}

	if !su.IsComplete() {
		return fmt.Errorf("sign-up not complete: missing %v, unverified %v", su.MissingFields, su.UnverifiedFields)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Signed up as %s (session %s)\n", displayName(sdk.User()), su.CreatedSessionID)
	return nil
}
