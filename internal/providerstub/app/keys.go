package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/frontauth/pkg/cryptox"
	"github.com/aussiebroadwan/frontauth/pkg/jwtx"
)

// InitSigner loads the session-token signing key.
//
// With KeyFile set the key is read from disk, and generated there on first
// start, so tokens survive restarts. Without it an ephemeral key is
// generated and every restart invalidates outstanding tokens.
func InitSigner(cfg Config, logger *slog.Logger) (*jwtx.EdDSASigner, error) {
	pem, err := cryptox.LoadOrGenerateEd25519Key(cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load signing key: %w", err)
	}

	signer, err := jwtx.NewSignerEdDSA(cfg.KeyID, pem)
	if err != nil {
		return nil, fmt.Errorf("failed to create signer: %w", err)
	}

	if cfg.KeyFile == "" {
		logger.Info("ephemeral signing key generated - tokens will not survive restarts", "kid", cfg.KeyID)
	} else {
		logger.Info("signing key loaded", "kid", cfg.KeyID, "path", cfg.KeyFile)
	}
	return signer, nil
}
