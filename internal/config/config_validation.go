package config

import "time"

// applyDefaults fills in fields that remained unset after all sources were
// merged. Defaults keep a bare `rolling-paper-server` invocation working
// against a local SQLite file.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Auth.Mode == "" {
		cfg.Auth.Mode = AuthModeSession
	}
	if cfg.Auth.TokenIssuer == "" {
		cfg.Auth.TokenIssuer = "rolling-paper"
	}
	if cfg.Auth.TokenDuration == 0 {
		cfg.Auth.TokenDuration = time.Hour
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = "rolling-paper.db"
	}
	if cfg.Storage.Files.UploadDir == "" {
		cfg.Storage.Files.UploadDir = "uploads"
	}
	if cfg.Storage.Files.DefaultProfilePicture == "" {
		cfg.Storage.Files.DefaultProfilePicture = "default_profile.png"
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = "localhost:8080"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.Mode != AuthModeSession && cfg.Auth.Mode != AuthModeToken {
		return ErrInvalidAuthConfigs
	}

	if cfg.Auth.Mode == AuthModeToken && cfg.Auth.TokenSignKey == "" {
		return ErrInvalidAuthConfigs
	}

	if cfg.Storage.DB.DSN == "" || cfg.Storage.Files.UploadDir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}
