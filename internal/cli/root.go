// Package cli implements the frontauth command: sign in to a hosted auth
// provider from a terminal and keep the session between invocations.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/frontauth/pkg/authsdk"
	"github.com/aussiebroadwan/frontauth/pkg/kvstore"
	redisstore "github.com/aussiebroadwan/frontauth/pkg/kvstore/drivers/redis"
	"github.com/aussiebroadwan/frontauth/pkg/kvstore/drivers/sqlite"
	"github.com/aussiebroadwan/frontauth/pkg/slogx"
)

// Options are the global flags, defaulted from FRONTAUTH_* variables.
type Options struct {
	PublishableKey string
	Domain         string
	Development    bool
	StorePath      string
	RedisAddr      string
	RedisPassword  string
	LogLevel       string
}

// Execute loads .env, if present, and runs the root command.
func Execute() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	root := &cobra.Command{
		Use:   "frontauth",
		Short: "Sign in to a hosted auth provider from the terminal",
		Long: `frontauth drives the provider's frontend API the way a browser would.

The session is persisted in a local SQLite file (or Redis), so a later
invocation picks it up without signing in again.

Examples:
  # Sign in with a password
  frontauth signin ada@example.com --password 'correct-horse-battery'

  # Print a session token for a backend call
  curl -H "Authorization: Bearer $(frontauth token)" https://api.example.com/me
`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.PublishableKey, "publishable-key", os.Getenv("FRONTAUTH_PUBLISHABLE_KEY"), "instance publishable key (pk_test_... or pk_live_...)")
	flags.StringVar(&opts.Domain, "domain", os.Getenv("FRONTAUTH_DOMAIN"), "frontend API host or base URL; overrides the publishable key")
	flags.BoolVar(&opts.Development, "development", envBool("FRONTAUTH_DEVELOPMENT"), "treat the instance as a development instance")
	flags.StringVar(&opts.StorePath, "store", os.Getenv("FRONTAUTH_STORE"), "SQLite file holding the session (default: $XDG_STATE_HOME/frontauth/state.db)")
	flags.StringVar(&opts.RedisAddr, "redis-addr", os.Getenv("FRONTAUTH_REDIS_ADDR"), "keep the session in Redis at host:port instead of SQLite")
	flags.StringVar(&opts.RedisPassword, "redis-password", os.Getenv("FRONTAUTH_REDIS_PASSWORD"), "Redis password")
	flags.StringVar(&opts.LogLevel, "log-level", envOr("LOG_LEVEL", "warn"), "log level (debug, info, warn, error)")

	root.AddCommand(
		newSignInCommand(opts),
		newSignUpCommand(opts),
		newWhoAmICommand(opts),
		newTokenCommand(opts),
		newSignOutCommand(opts),
		newOrgsCommand(opts),
	)
	return root
}

// connect opens the store and returns a loaded SDK client. The returned
// func releases both.
func connect(cmd *cobra.Command, opts *Options) (*authsdk.SDKClient, func(), error) {
	if opts.PublishableKey == "" && opts.Domain == "" {
		return nil, nil, errors.New("either --publishable-key or --domain is required")
	}

	store, closer, err := openStore(cmd, opts)
	if err != nil {
		return nil, nil, err
	}

	namespace := opts.PublishableKey
	if namespace == "" {
		namespace = opts.Domain
	}

	sdk, err := authsdk.New(authsdk.Config{
		PublishableKey: opts.PublishableKey,
		Domain:         opts.Domain,
		Development:    opts.Development,
		Storage:        kvstore.Prefixed(store, namespace+":"),
		Logger: slogx.New(slogx.Config{
			Service: "frontauth",
			Level:   opts.LogLevel,
			Format:  "text",
			Output:  cmd.ErrOrStderr(),
		}),
	})
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}

	if err := sdk.Load(cmd.Context()); err != nil {
		sdk.Dispose()
		_ = closer.Close()
		return nil, nil, err
	}

	return sdk, func() {
		sdk.Dispose()
		_ = closer.Close()
	}, nil
}

func openStore(cmd *cobra.Command, opts *Options) (kvstore.Store, io.Closer, error) {
	if opts.RedisAddr != "" {
		s, err := redisstore.Dial(cmd.Context(), opts.RedisAddr, opts.RedisPassword, "frontauth:")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return s, s, nil
	}

	path := opts.StorePath
	if path == "" {
		path = filepath.Join(xdg.StateHome, "frontauth", "state.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("failed to create store dir: %w", err)
	}

	s, err := sqlite.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	return s, s, nil
}

// prompter reads answers line by line from the command's input.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.ErrOrStderr()}
}

// value returns preset when set, otherwise asks for label.
func (p *prompter) value(preset, label string) (string, error) {
	if preset != "" {
		return preset, nil
	}
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func displayName(u *authsdk.User) string {
	if u == nil {
		return ""
	}
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	if email := u.PrimaryEmailAddress(); email != "" {
		return email
	}
	if u.Username != "" {
		return u.Username
	}
	return u.ID
}
