package telstra

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/msgtools/telstra-numbers/internal/client"
	"github.com/msgtools/telstra-numbers/internal/config"
)

// OpToken names the token exchange in errors and reports.
const OpToken = "token"

type tokenResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   json.RawMessage `json:"expires_in"`
}

// Authenticate performs a client-credentials grant against cfg.TokenURL.
// The token is fetched once and never refreshed.
func Authenticate(ctx context.Context, cfg *config.Config, timeout time.Duration, opts ...Option) (*oauth2.Token, error) {
	o := buildOptions(opts)

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", cfg.ClientID)
	form.Set("client_secret", cfg.ClientSecret)
	form.Set("scope", cfg.Scope)

	clientOpts := []client.Option{client.WithTimeout(timeout)}
	if o.transport != nil {
		clientOpts = append(clientOpts, client.WithTransport(o.transport))
	}

	resp, err := send(ctx, client.New(clientOpts...), o, OpToken, http.MethodPost, cfg.TokenURL,
		map[string]string{HeaderContentType: "application/x-www-form-urlencoded"},
		[]byte(form.Encode()))
	if err != nil {
		return nil, &AuthenticationError{Reason: "token request failed", Err: err}
	}
	if !resp.OK() {
		return nil, &AuthenticationError{Reason: "token endpoint rejected the credentials", Err: httpError(OpToken, resp)}
	}

	tok, ok := parseToken(resp.Body, time.Now())
	if !ok {
		return nil, &AuthenticationError{Reason: "no access_token in token response; check credentials and scope"}
	}

	o.logger.Info("access token granted",
		slog.String("token_type", tok.TokenType),
		slog.Time("expiry", tok.Expiry),
	)
	return tok, nil
}

// parseToken decodes a token response body. A zero Expiry means none was given.
func parseToken(body []byte, now time.Time) (*oauth2.Token, bool) {
	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil || tr.AccessToken == "" {
		return nil, false
	}

	tok := &oauth2.Token{
		AccessToken: tr.AccessToken,
		TokenType:   tr.TokenType,
	}
	if secs, err := strconv.ParseInt(strings.Trim(string(tr.ExpiresIn), `"`), 10, 64); err == nil && secs > 0 {
		tok.Expiry = now.Add(time.Duration(secs) * time.Second)
	}
	return tok, true
}
