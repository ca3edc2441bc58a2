// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth hashes voter identities for logging.

Raw identities (IP addresses, wallet addresses) are never written to logs.
HashIdentity produces a short salted HMAC-SHA256 fingerprint instead, so
repeated attempts by the same voter can still be correlated:

	hash := auth.HashIdentity("203.0.113.7", cfg.IdentitySalt)
	slog.Warn("duplicate vote rejected", "voter", hash)

The salt comes from IDENTITY_SALT and must stay stable across restarts for
fingerprints to line up.
*/
package auth
