package model

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Hash is a 32-byte identifier (state root, commit/verify tx hash, transaction hash).
//
// The array holds the bytes in reverse order of the hex text: byte 0 is the last hex pair.
// Storage and the API only exchange the hex text.
type Hash chainhash.Hash

// TxHash identifies a transaction.
type TxHash = Hash

// ParseHash decodes a 64-char hex string, optionally prefixed with 0x.
func ParseHash(s string) (Hash, error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != chainhash.MaxHashStringSize {
		return Hash{}, fmt.Errorf("hash %q must be %d hex characters", s, chainhash.MaxHashStringSize)
	}

	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return Hash{}, fmt.Errorf("decode hash %q: %w", s, err)
	}
	return Hash(*h), nil
}

func (h Hash) String() string {
	return chainhash.Hash(h).String()
}

// MarshalText encodes the hash as hex.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText decodes a hex hash.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
