package enablement

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "embedding-secret"

func signedToken(t *testing.T, secret string, expiresIn time.Duration) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "meet.example.com",
		"room": "daily-standup",
		"exp":  time.Now().Add(expiresIn).Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func TestFromNavigation_APIID(t *testing.T) {
	id := 0
	pred := FromNavigation(NavigationParams{APIID: &id, URL: "https://meet.example.com/room"}, VerifyOptions{})

	require.True(t, pred())
}

func TestFromNavigation_NoSignal(t *testing.T) {
	pred := FromNavigation(NavigationParams{URL: "https://meet.example.com/room?lang=de"}, VerifyOptions{})

	require.False(t, pred())
}

func TestFromNavigation_TokenInQuery(t *testing.T) {
	token := signedToken(t, testSecret, time.Hour)
	pred := FromNavigation(NavigationParams{
		URL: "https://meet.example.com/room?jwt=" + token,
	}, VerifyOptions{})

	require.True(t, pred())
}

func TestFromNavigation_TokenInFragment(t *testing.T) {
	token := signedToken(t, testSecret, time.Hour)

	for _, u := range []string{
		"https://meet.example.com/room#jwt=" + token,
		"https://meet.example.com/room#?config.startWithAudioMuted=true&jwt=" + token,
	} {
		pred := FromNavigation(NavigationParams{URL: u}, VerifyOptions{})
		require.True(t, pred(), u)
	}
}

func TestFromNavigation_MalformedToken(t *testing.T) {
	pred := FromNavigation(NavigationParams{
		URL: "https://meet.example.com/room?jwt=not-a-token",
	}, VerifyOptions{})

	require.False(t, pred())
}

func TestFromNavigation_MalformedURL(t *testing.T) {
	pred := FromNavigation(NavigationParams{URL: "://\x7f"}, VerifyOptions{})

	require.False(t, pred())
}

func TestFromNavigation_VerifiedToken(t *testing.T) {
	opts := VerifyOptions{HS256Secret: testSecret}

	good := FromNavigation(NavigationParams{
		URL: "https://meet.example.com/room?jwt=" + signedToken(t, testSecret, time.Hour),
	}, opts)
	require.True(t, good())

	wrongKey := FromNavigation(NavigationParams{
		URL: "https://meet.example.com/room?jwt=" + signedToken(t, "other-secret", time.Hour),
	}, opts)
	require.False(t, wrongKey())

	expired := FromNavigation(NavigationParams{
		URL: "https://meet.example.com/room?jwt=" + signedToken(t, testSecret, -time.Hour),
	}, opts)
	require.False(t, expired())
}

func TestTokenFromURL_QueryWins(t *testing.T) {
	require.Equal(t, "q", TokenFromURL("https://meet.example.com/room?jwt=q#jwt=f"))
	require.Equal(t, "f", TokenFromURL("https://meet.example.com/room#jwt=f"))
	require.Empty(t, TokenFromURL("https://meet.example.com/room"))
}

func TestAlwaysNever(t *testing.T) {
	require.True(t, Predicate(Always)())
	require.False(t, Predicate(Never)())
}
