package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func newTestInspector() *Inspector {
	i := NewInspector(DefaultKeyPrefix)
	i.now = func() time.Time { return fixedNow }
	return i
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestInspect_APIKey(t *testing.T) {
	d := newTestInspector().Inspect("sk-abc...xyz1")

	assert.Equal(t, "sk-a...xyz1", d.Masked)
	assert.Equal(t, 13, d.Length)
	assert.True(t, d.HasPrefix)
	assert.False(t, d.HasQuotes)
	assert.False(t, d.HasWhitespace)
	assert.Len(t, d.Fingerprint, 8)
	assert.Equal(t, TokenKindOpaque, d.Token.Kind)
}

func TestInspect_CommonMistakes(t *testing.T) {
	tests := []struct {
		name           string
		value          string
		wantPrefix     bool
		wantQuotes     bool
		wantWhitespace bool
	}{
		{"double quoted", `"sk-secret"`, false, true, false},
		{"single quote at end", `sk-secret'`, true, true, false},
		{"trailing newline", "sk-secret\n", true, false, true},
		{"leading space", " sk-secret", false, false, true},
		{"wrong prefix", "pk-secret", false, false, false},
		{"empty", "", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestInspector().Inspect(tt.value)
			assert.Equal(t, tt.wantPrefix, d.HasPrefix)
			assert.Equal(t, tt.wantQuotes, d.HasQuotes)
			assert.Equal(t, tt.wantWhitespace, d.HasWhitespace)
		})
	}
}

func TestInspect_ShortValueHasNoFingerprint(t *testing.T) {
	tests := []string{"", "q7zk", "12345678", "ключключ"}

	for _, value := range tests {
		t.Run(value, func(t *testing.T) {
			assert.Empty(t, newTestInspector().Inspect(value).Fingerprint)
		})
	}

	assert.Len(t, newTestInspector().Inspect("123456789").Fingerprint, 8)
}

func TestInspect_LengthCountsCharacters(t *testing.T) {
	d := newTestInspector().Inspect("ключ")
	assert.Equal(t, 4, d.Length)
}

func TestInspectToken_Valid(t *testing.T) {
	exp := fixedNow.Add(time.Hour)
	value := signToken(t, jwt.MapClaims{"sub": "user", "exp": exp.Unix()})

	info := newTestInspector().InspectToken(value)

	assert.Equal(t, TokenKindJWT, info.Kind)
	assert.Equal(t, "HS256", info.Algorithm)
	require.NotNil(t, info.ExpiresAt)
	assert.Equal(t, exp.Unix(), info.ExpiresAt.Unix())
	assert.False(t, info.Expired)
	assert.False(t, info.NotYetValid)
}

func TestInspectToken_Expired(t *testing.T) {
	value := signToken(t, jwt.MapClaims{"exp": fixedNow.Add(-time.Minute).Unix()})

	info := newTestInspector().InspectToken(value)

	assert.Equal(t, TokenKindJWT, info.Kind)
	assert.True(t, info.Expired)
}

func TestInspectToken_NotYetValid(t *testing.T) {
	value := signToken(t, jwt.MapClaims{"nbf": fixedNow.Add(time.Hour).Unix()})

	info := newTestInspector().InspectToken(value)

	assert.True(t, info.NotYetValid)
	assert.Nil(t, info.ExpiresAt)
}

func TestInspectToken_Malformed(t *testing.T) {
	info := newTestInspector().InspectToken("not.a.jwt")
	assert.Equal(t, TokenKindMalformed, info.Kind)
}

func TestInspectToken_Opaque(t *testing.T) {
	info := newTestInspector().InspectToken("sk-ant-api03-plainkey")
	assert.Equal(t, TokenKindOpaque, info.Kind)
}

func TestPrefixLabel(t *testing.T) {
	assert.Equal(t, "startswith_sk", PrefixLabel("sk-"))
	assert.Equal(t, "startswith_pk", PrefixLabel("pk_"))
	assert.Equal(t, "startswith_ghp", PrefixLabel("ghp"))
}
