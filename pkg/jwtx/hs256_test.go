package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-with-enough-entropy-0123456789")

func newPair(t *testing.T, opts jwtx.VerifyOptions) (*jwtx.HS256Signer, *jwtx.HS256Verifier) {
	t.Helper()
	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(testSecret, opts)
	require.NoError(t, err)
	return signer, verifier
}

func TestHS256RequiresSecret(t *testing.T) {
	_, err := jwtx.NewSignerHS256(nil)
	require.ErrorIs(t, err, jwtx.ErrMissingSecret)

	_, err = jwtx.NewVerifierHS256([]byte{}, jwtx.VerifyOptions{})
	require.ErrorIs(t, err, jwtx.ErrMissingSecret)
}

func TestHS256SignAndVerify(t *testing.T) {
	signer, verifier := newPair(t, jwtx.VerifyOptions{Issuer: "tollgate"})
	require.Equal(t, "HS256", signer.Alg())

	claims := jwtx.NewAccessClaims("workshop_client", time.Hour, "tollgate", time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.Len(t, strings.Split(token, "."), 3)

	parsed, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, claims.Subject, parsed.Subject)
	require.Equal(t, claims.ClientID, parsed.ClientID)
	require.Equal(t, claims.ID, parsed.ID)
	require.Equal(t, jwtx.TokenTypeAccess, parsed.Type)
	require.Equal(t, claims.IssuedAt.Unix(), parsed.IssuedAt.Unix())
	require.Equal(t, claims.ExpiresAt.Unix(), parsed.ExpiresAt.Unix())
}

func TestHS256SignRejectsBadClaims(t *testing.T) {
	signer, _ := newPair(t, jwtx.VerifyOptions{})

	_, err := signer.Sign(jwtx.NewAccessClaims("c", 0, "", time.Now()))
	require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
}

func TestHS256VerifyExpired(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	signer, verifier := newPair(t, jwtx.VerifyOptions{})

	token, err := signer.Sign(jwtx.NewAccessClaims("c", time.Hour, "", issued))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestHS256VerifyLeewayAndClock(t *testing.T) {
	issued := time.Unix(1_700_000_000, 0)
	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	token, err := signer.Sign(jwtx.NewAccessClaims("c", time.Minute, "", issued))
	require.NoError(t, err)

	justAfter := func() time.Time { return issued.Add(time.Minute + 5*time.Second) }

	strict, err := jwtx.NewVerifierHS256(testSecret, jwtx.VerifyOptions{Now: justAfter})
	require.NoError(t, err)
	_, err = strict.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)

	lenient, err := jwtx.NewVerifierHS256(testSecret, jwtx.VerifyOptions{Now: justAfter, Leeway: 30 * time.Second})
	require.NoError(t, err)
	_, err = lenient.Verify(token)
	require.NoError(t, err)
}

func TestHS256VerifyWrongSecret(t *testing.T) {
	signer, _ := newPair(t, jwtx.VerifyOptions{})
	token, err := signer.Sign(jwtx.NewAccessClaims("c", time.Hour, "", time.Now()))
	require.NoError(t, err)

	other, err := jwtx.NewVerifierHS256([]byte("another-secret"), jwtx.VerifyOptions{})
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestHS256VerifyExpiredWithWrongSecretIsNotExpired(t *testing.T) {
	signer, _ := newPair(t, jwtx.VerifyOptions{})
	token, err := signer.Sign(jwtx.NewAccessClaims("c", time.Hour, "", time.Now().Add(-3*time.Hour)))
	require.NoError(t, err)

	other, err := jwtx.NewVerifierHS256([]byte("another-secret"), jwtx.VerifyOptions{})
	require.NoError(t, err)

	// A forged token must never be reported as expired.
	_, err = other.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestHS256VerifyMalformed(t *testing.T) {
	_, verifier := newPair(t, jwtx.VerifyOptions{})

	for _, garbage := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := verifier.Verify(garbage)
		require.Error(t, err, garbage)
		require.NotErrorIs(t, err, jwtx.ErrExpired, garbage)
	}
}

func TestHS256VerifyRejectsOtherAlgorithms(t *testing.T) {
	_, verifier := newPair(t, jwtx.VerifyOptions{})

	claims := jwtx.NewAccessClaims("c", time.Hour, "", time.Now())
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = verifier.Verify(none)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestHS256VerifyRejectsWrongTypeAndIssuer(t *testing.T) {
	_, verifier := newPair(t, jwtx.VerifyOptions{Issuer: "tollgate"})

	claims := jwtx.NewAccessClaims("c", time.Hour, "tollgate", time.Now())
	claims.Type = "refresh_token"
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidClaim)

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	token, err = signer.Sign(jwtx.NewAccessClaims("c", time.Hour, "elsewhere", time.Now()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}
