// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity turns what a request says about its sender into a canonical
voter identity.

	raw := identity.FromRequest(r, cfg.TrustProxy)
	voter, err := identity.Normalize(raw)

X-Forwarded-For and X-Real-IP are read only when the server runs behind a
proxy that sets them (TRUST_PROXY). Otherwise any client could pick its own
address, so the connection's RemoteAddr is used.

Two raw values that name the same voter normalize to the same string:
wallet addresses ignore case, IP addresses ignore ports and IPv4-in-IPv6
mapping, and every loopback form becomes 127.0.0.1.
*/
package identity
