package providers

import (
	"encoding/hex"

	"github.com/samber/do/v2"

	"github.com/pagekeep/pagekeep-server/internal/auth"
	"github.com/pagekeep/pagekeep-server/internal/config"
	"github.com/pagekeep/pagekeep-server/internal/logger"
)

// AuthKey wraps the token signing key bytes.
type AuthKey []byte

// ProvideAuthKey resolves the token key: the configured TOKEN_KEY when set,
// otherwise a key loaded or generated under the data directory.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Auth.TokenKeyHex != "" {
		key, err := hex.DecodeString(cfg.Auth.TokenKeyHex)
		if err != nil {
			return nil, err
		}
		log.Info("Token key loaded from configuration",
			"token_duration", cfg.Auth.TokenDuration,
		)
		return AuthKey(key), nil
	}

	key, err := auth.LoadOrGenerateKey(cfg.Data.BasePath)
	if err != nil {
		return nil, err
	}

	log.Info("Token key loaded",
		"token_duration", cfg.Auth.TokenDuration,
	)

	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authKey := do.MustInvoke[AuthKey](i)

	return auth.NewTokenServiceFromBytes([]byte(authKey), cfg.Auth.TokenDuration)
}
