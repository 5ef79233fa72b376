// Package verify talks to the external penny-less bank account
// verification service. The analyzer collects verification inputs for
// every transaction with a fallback-extracted account; calling the
// service is left to the integration layer.
package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Input is one account/IFSC pair eligible for verification.
type Input struct {
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
}

// Outcome classifies a verification response.
type Outcome int

const (
	OutcomeError Outcome = iota
	OutcomeExists
	OutcomeNotFound
	OutcomeInvalidIFSC
	OutcomeSourceUnavailable
)

// Result is the decoded verification verdict for one account.
type Result struct {
	Outcome Outcome
	Message string
}

// Client calls the verification endpoint of the integration service.
type Client struct {
	baseURL string
	auth    string
	http    *http.Client
	log     *slog.Logger

	// Placeholder beneficiary details the endpoint requires.
	Name   string
	Mobile string
}

// NewClient returns a client for the integration service at baseURL.
// An empty baseURL yields a disabled client whose Verify always errors.
func NewClient(baseURL, auth string, log *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		auth:    auth,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
		Name:    "stco",
		Mobile:  "9999999999",
	}
}

// Enabled reports whether the client has an endpoint to talk to.
func (c *Client) Enabled() bool { return c != nil && c.baseURL != "" }

type apiEnvelope struct {
	Success int `json:"success"`
	Result  struct {
		Message string `json:"message"`
		Data    struct {
			AccountExists *bool  `json:"account_exists"`
			Message       string `json:"message"`
		} `json:"data"`
	} `json:"result"`
}

// Verify checks whether the account exists at the given IFSC.
func (c *Client) Verify(ctx context.Context, in Input) (Result, error) {
	if !c.Enabled() {
		return Result{}, fmt.Errorf("verification endpoint not configured")
	}

	endpoint := c.baseURL + "/bank/verify/account/pennyless"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{}, fmt.Errorf("build verification request: %w", err)
	}
	q := url.Values{}
	q.Set("account_number", in.AccountNumber)
	q.Set("ifsc_code", in.IFSCCode)
	q.Set("name", c.Name)
	q.Set("mobile", c.Mobile)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Content-Type", "application/json")
	if c.auth != "" {
		req.Header.Set("Authorization", c.auth)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("verification request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{}, fmt.Errorf("read verification response: %w", err)
	}
	c.log.Debug("verification response", "status", resp.StatusCode, "account", in.AccountNumber)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("verification service returned status %d", resp.StatusCode)
	}

	var env apiEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Result{}, fmt.Errorf("decode verification response: %w", err)
	}
	return classify(env), nil
}

func classify(env apiEnvelope) Result {
	if env.Success == 1 {
		data := env.Result.Data
		switch {
		case data.AccountExists != nil && *data.AccountExists:
			return Result{Outcome: OutcomeExists}
		case data.AccountExists != nil:
			msg := data.Message
			if msg == "" {
				msg = "Account does not exist"
			}
			return Result{Outcome: OutcomeNotFound, Message: msg}
		case env.Result.Message == "Invalid IFSC pattern":
			return Result{Outcome: OutcomeInvalidIFSC, Message: "Invalid IFSC code pattern"}
		case env.Result.Message == "Source Unavailable":
			return Result{Outcome: OutcomeSourceUnavailable, Message: "Source Unavailable"}
		}
	}
	msg := env.Result.Message
	if msg == "" {
		msg = "Unknown error"
	}
	return Result{Outcome: OutcomeError, Message: msg}
}
