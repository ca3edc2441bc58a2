// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"errors"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Loopback is the canonical form every local address alias collapses to.
const Loopback = "127.0.0.1"

// WalletHeader carries a wallet address for clients that vote with one
const WalletHeader = "X-Wallet-Address"

var ErrMalformed = errors.New("malformed voter identity")

// Normalize converts a raw voter identity into its canonical string.
// Wallet addresses become lower-case 0x-prefixed hex, IP addresses lose any
// port and IPv4-in-IPv6 mapping, and loopback aliases collapse to Loopback.
func Normalize(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrMalformed
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		if !common.IsHexAddress(s) {
			return "", ErrMalformed
		}
		return strings.ToLower(common.HexToAddress(s).Hex()), nil
	}

	if strings.EqualFold(s, "localhost") {
		return Loopback, nil
	}

	addr, err := parseAddr(s)
	if err != nil {
		return "", ErrMalformed
	}

	addr = addr.Unmap().WithZone("")
	if addr.IsLoopback() {
		return Loopback, nil
	}
	if addr.IsUnspecified() {
		return "", ErrMalformed
	}

	return addr.String(), nil
}

// parseAddr accepts a bare address, "host:port" or "[v6]:port".
func parseAddr(s string) (netip.Addr, error) {
	if addr, err := netip.ParseAddr(s); err == nil {
		return addr, nil
	}

	host, _, err := net.SplitHostPort(s)
	if err != nil {
		return netip.Addr{}, err
	}
	if strings.EqualFold(host, "localhost") {
		return netip.MustParseAddr(Loopback), nil
	}
	return netip.ParseAddr(host)
}

// FromRequest extracts the raw voter identity of a request: the wallet header
// when present, otherwise the client address. Requests addressed to a local
// host are treated as coming from Loopback so local testing behaves like a
// single voter. Forwarding headers count only when trustProxy is set.
func FromRequest(r *http.Request, trustProxy bool) string {
	if wallet := strings.TrimSpace(r.Header.Get(WalletHeader)); wallet != "" {
		return wallet
	}

	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if strings.EqualFold(host, "localhost") || host == Loopback {
		return Loopback
	}

	return ClientIP(r, trustProxy)
}

// ClientIP extracts the client IP address.
// Behind a trusted proxy it checks X-Forwarded-For, then X-Real-IP. Otherwise
// those headers are client-controlled and only RemoteAddr is used.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		// Check X-Forwarded-For (load balancers), first hop wins
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}

		// Check X-Real-IP (nginx)
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	// Fall back to RemoteAddr, stripping the port if present
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
