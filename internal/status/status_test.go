package status

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_KnownNames(t *testing.T) {
	t.Parallel()

	cases := map[string]Code{
		"ok":                OK,
		"OK":                OK,
		" unauthorized ":    Unauthorized,
		"rate_limited":      RateLimited,
		"not_found":         NotFound,
		"network_error":     NetworkError,
		"internal":          Internal,
		"deadline_exceeded": DeadlineExceeded,
	}

	for name, want := range cases {
		got, err := Parse(name)
		require.NoError(t, err, "Parse(%q)", name)
		require.Equal(t, want, got, "Parse(%q)", name)
	}
}

func TestParse_UnknownName(t *testing.T) {
	t.Parallel()

	_, err := Parse("definitely_not_a_code")
	require.Error(t, err)
	require.Contains(t, err.Error(), "definitely_not_a_code")
}

func TestString_RoundTripsParse(t *testing.T) {
	t.Parallel()

	for _, code := range []Code{OK, NetworkError, Unauthorized, RateLimited, NotFound, Internal, DeadlineExceeded} {
		parsed, err := Parse(code.String())
		require.NoError(t, err)
		require.Equal(t, code, parsed)
	}
}

func TestString_UnknownCode(t *testing.T) {
	t.Parallel()

	require.Equal(t, "code(999)", Code(999).String())
}

func TestFromHTTP(t *testing.T) {
	t.Parallel()

	cases := []struct {
		httpStatus int
		want       Code
	}{
		{http.StatusOK, OK},
		{http.StatusNoContent, OK},
		{http.StatusCreated, OK},
		{http.StatusUnauthorized, Unauthorized},
		{http.StatusForbidden, Unauthorized},
		{http.StatusTooManyRequests, RateLimited},
		{http.StatusNotFound, NotFound},
		{http.StatusInternalServerError, Internal},
		{http.StatusBadGateway, Internal},
		{http.StatusBadRequest, Internal},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, FromHTTP(tc.httpStatus), "status %d", tc.httpStatus)
	}
}
