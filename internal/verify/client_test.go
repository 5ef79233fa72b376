package verify

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func verifyServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bank/verify/account/pennyless", r.URL.Path)
		assert.Equal(t, "123456789012", r.URL.Query().Get("account_number"))
		assert.Equal(t, "HDFC0001234", r.URL.Query().Get("ifsc_code"))
		assert.Equal(t, "stco", r.URL.Query().Get("name"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testInput() Input {
	return Input{AccountNumber: "123456789012", IFSCCode: "HDFC0001234"}
}

func TestVerifyAccountExists(t *testing.T) {
	srv := verifyServer(t, `{"success":1,"result":{"data":{"account_exists":true}}}`)
	c := NewClient(srv.URL, "token", testLogger())

	result, err := c.Verify(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, OutcomeExists, result.Outcome)
}

func TestVerifyAccountNotFound(t *testing.T) {
	srv := verifyServer(t, `{"success":1,"result":{"data":{"account_exists":false,"message":"no such account"}}}`)
	c := NewClient(srv.URL, "", testLogger())

	result, err := c.Verify(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, result.Outcome)
	assert.Equal(t, "no such account", result.Message)
}

func TestVerifyInvalidIFSC(t *testing.T) {
	srv := verifyServer(t, `{"success":1,"result":{"message":"Invalid IFSC pattern"}}`)
	c := NewClient(srv.URL, "", testLogger())

	result, err := c.Verify(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalidIFSC, result.Outcome)
}

func TestVerifySourceUnavailable(t *testing.T) {
	srv := verifyServer(t, `{"success":1,"result":{"message":"Source Unavailable"}}`)
	c := NewClient(srv.URL, "", testLogger())

	result, err := c.Verify(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSourceUnavailable, result.Outcome)
}

func TestVerifyUnknownError(t *testing.T) {
	srv := verifyServer(t, `{"success":0,"result":{}}`)
	c := NewClient(srv.URL, "", testLogger())

	result, err := c.Verify(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, OutcomeError, result.Outcome)
	assert.Equal(t, "Unknown error", result.Message)
}

func TestVerifyDisabledClient(t *testing.T) {
	c := NewClient("", "", testLogger())
	assert.False(t, c.Enabled())

	_, err := c.Verify(context.Background(), testInput())
	assert.Error(t, err)
}
