package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/frontauth/pkg/authsdk"
	"github.com/aussiebroadwan/frontauth/pkg/jwtx"
)

var errNotSignedIn = errors.New("not signed in")

func newWhoAmICommand(opts *Options) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sdk, done, err := connect(cmd, opts)
			if err != nil {
				return err
			}
			defer done()

			if !sdk.IsSignedIn() {
				return errNotSignedIn
			}
			u := sdk.User()
			if refresh {
				if u, err = sdk.GetUser(cmd.Context()); err != nil {
					return err
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "User:\t%s\n", displayName(u))
			fmt.Fprintf(w, "User ID:\t%s\n", u.ID)
			if email := u.PrimaryEmailAddress(); email != "" {
				fmt.Fprintf(w, "Email:\t%s\n", email)
			}
			fmt.Fprintf(w, "Session:\t%s\n", sdk.Session().ID)
			if org := sdk.Organization(); org != nil {
				fmt.Fprintf(w, "Organization:\t%s (%s)\n", org.Name, org.Slug)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch the user from the provider instead of the cache")
	return cmd
}

func newTokenCommand(opts *Options) *cobra.Command {
	var (
		template string
		verify   bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a session token for the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sdk, done, err := connect(cmd, opts)
			if err != nil {
				return err
			}
			defer done()

			tok, err := sdk.GetToken(cmd.Context(), template)
			if errors.Is(err, authsdk.ErrNoActiveSession) {
				return errNotSignedIn
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			if !verify {
				return nil
			}
			return verifyToken(cmd.Context(), cmd.OutOrStdout(), opts, tok)
		},
	}

	cmd.Flags().StringVar(&template, "template", "", "JWT template to mint the token with")
	cmd.Flags().BoolVar(&verify, "verify", false, "check the token against the instance's published keys and print its claims")
	return cmd
}

// verifyToken checks tok the way a backend would: against the JWKS the
// Frontend API publishes.
func verifyToken(ctx context.Context, out io.Writer, opts *Options, tok string) error {
	domain := opts.Domain
	if domain == "" {
		pk, err := authsdk.ParsePublishableKey(opts.PublishableKey)
		if err != nil {
			return err
		}
		domain = pk.FrontendAPI
	}

	keys, err := jwtx.FetchJWKS(ctx, nil, authsdk.BaseURL(domain)+jwtx.JWKSPath)
	if err != nil {
		return err
	}
	claims, err := jwtx.NewVerifier(keys, "", time.Minute).Verify(tok, time.Now())
	if err != nil {
		return fmt.Errorf("token failed verification: %w", err)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Verified:\tyes")
	fmt.Fprintf(tw, "Subject:\t%s\n", claims.Subject)
	fmt.Fprintf(tw, "Session:\t%s\n", claims.SID)
	if claims.OrgID != "" {
		fmt.Fprintf(tw, "Organization:\t%s (%s)\n", claims.OrgSlug, claims.OrgRole)
	}
	if claims.ExpiresAt != nil {
		fmt.Fprintf(tw, "Expires:\t%s\n", claims.ExpiresAt.Time.Format(time.RFC3339))
	}
	return tw.Flush()
}

func newSignOutCommand(opts *Options) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "signout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sdk, done, err := connect(cmd, opts)
			if err != nil {
				return err
			}
			defer done()

			if all {
				err = sdk.SignOutAll(cmd.Context())
			} else {
				err = sdk.SignOut(cmd.Context())
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "end every session of this device")
	return cmd
}
