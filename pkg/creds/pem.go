package creds

import (
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"strings"
)

// normalizeKey turns the three accepted private-key encodings into
// well-formed PEM: raw PEM, PEM with literal "\n" escapes (the usual
// artifact of stuffing a multi-line key into an env var), and
// base64-encoded PEM. The fallback order is fixed: inputs without a PEM
// header are base64-decoded first, then escapes are unfolded, then the
// block is decoded and re-encoded so the output always has the
// header/footer and 64-column body PEM requires.
func normalizeKey(raw string) ([]byte, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidKey)
	}

	if !strings.Contains(s, "-----BEGIN") {
		decoded, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: neither PEM nor base64: %v", ErrInvalidKey, err)
		}
		s = string(decoded)
	}

	s = strings.ReplaceAll(s, `\n`, "\n")

	block, _ := pem.Decode([]byte(s))
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidKey)
	}

	return pem.EncodeToMemory(block), nil
}
