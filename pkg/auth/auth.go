package auth

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Sidd-007/authdiag/pkg/hashing"
	"github.com/Sidd-007/authdiag/pkg/mask"
)

// DefaultKeyPrefix is the prefix API keys are expected to carry
const DefaultKeyPrefix = "sk-"

// TokenKind describes the shape of a credential
type TokenKind string

const (
	TokenKindOpaque    TokenKind = "opaque"
	TokenKindJWT       TokenKind = "jwt"
	TokenKindMalformed TokenKind = "malformed"
)

// TokenInfo is what can be learned from a credential without verifying it
type TokenInfo struct {
	Kind        TokenKind
	Algorithm   string
	ExpiresAt   *time.Time
	Expired     bool
	NotYetValid bool
}

// Diagnostics holds the non-secret facts about a credential value
type Diagnostics struct {
	Masked        string
	Length        int
	HasPrefix     bool
	HasQuotes     bool
	HasWhitespace bool
	Fingerprint   string
	Token         TokenInfo
}

// Inspector derives diagnostics from raw credential values
type Inspector struct {
	prefix string
	now    func() time.Time
}

// NewInspector creates an inspector checking for the given key prefix
func NewInspector(prefix string) *Inspector {
	return &Inspector{
		prefix: prefix,
		now:    time.Now,
	}
}

// Prefix returns the key prefix the inspector checks for
func (i *Inspector) Prefix() string {
	return i.prefix
}

// Inspect computes diagnostics for a raw value. The raw value is not kept.
// Values masked down to one character get no fingerprint.
func (i *Inspector) Inspect(value string) Diagnostics {
	d := Diagnostics{
		Masked:        mask.Value(value),
		Length:        utf8.RuneCountInString(value),
		HasPrefix:     strings.HasPrefix(value, i.prefix),
		HasQuotes:     hasQuotes(value),
		HasWhitespace: strings.TrimSpace(value) != value,
		Token:         i.InspectToken(value),
	}
	if d.Length > mask.ShortLimit {
		d.Fingerprint = hashing.Fingerprint(value)
	}
	return d
}

// InspectToken parses JWT-shaped values without verifying their signature
// and reports algorithm and validity window
func (i *Inspector) InspectToken(value string) TokenInfo {
	if strings.Count(value, ".") != 2 {
		return TokenInfo{Kind: TokenKindOpaque}
	}

	claims := jwt.MapClaims{}
	token, _, err := jwt.NewParser().ParseUnverified(strings.TrimSpace(value), claims)
	if err != nil {
		return TokenInfo{Kind: TokenKindMalformed}
	}

	info := TokenInfo{Kind: TokenKindJWT}
	if token.Method != nil {
		info.Algorithm = token.Method.Alg()
	}

	now := i.now()

	// Check expiry
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		info.ExpiresAt = &t
		info.Expired = now.After(t)
	}

	// Check not-before
	if nbf, err := claims.GetNotBefore(); err == nil && nbf != nil {
		info.NotYetValid = now.Before(nbf.Time)
	}

	return info
}

// PrefixLabel names the prefix check in report output: "sk-" becomes
// "startswith_sk"
func PrefixLabel(prefix string) string {
	return "startswith_" + strings.TrimRight(prefix, "-_")
}

func hasQuotes(value string) bool {
	for _, q := range []string{`"`, `'`} {
		if strings.HasPrefix(value, q) || strings.HasSuffix(value, q) {
			return true
		}
	}
	return false
}
