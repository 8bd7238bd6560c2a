package telstra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// Operation names used in errors and exchange reports.
const (
	OpListFreeTrial     = "list free-trial numbers"
	OpRegisterFreeTrial = "register free-trial numbers"
)

// Outcome classifies a list response.
type Outcome string

const (
	// OutcomeListed is a 2xx with a body.
	OutcomeListed Outcome = "listed"
	// OutcomeEmpty is a 204: the account has nothing to list.
	OutcomeEmpty Outcome = "empty"
	// OutcomeDegraded is a 404. The endpoint may be missing or the feature
	// not enabled for the account; callers get an empty result either way.
	OutcomeDegraded Outcome = "degraded"
)

// ListResult is the outcome of ListFreeTrialNumbers.
// Response holds the whole body when it carries no freeTrialNumbers key.
type ListResult struct {
	Numbers    []string        `json:"freeTrialNumbers"`
	Outcome    Outcome         `json:"outcome"`
	StatusCode int             `json:"status"`
	Response   json.RawMessage `json:"response,omitempty"`
	Raw        json.RawMessage `json:"-"`
}

// Unrecognized reports whether the body lacked a freeTrialNumbers key.
func (r *ListResult) Unrecognized() bool {
	return len(r.Response) > 0
}

// ListFreeTrialNumbers fetches the registered free-trial numbers.
// 204 and 404 yield an empty list rather than an error.
func (c *Client) ListFreeTrialNumbers(ctx context.Context) (*ListResult, error) {
	ep := FreeTrialEndpoint(c.cfg)
	resp, err := c.do(ctx, OpListFreeTrial, ep, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}

	if outcome, ok := c.exemptOutcome(ep, resp.StatusCode); ok {
		return &ListResult{Numbers: []string{}, Outcome: outcome, StatusCode: resp.StatusCode}, nil
	}
	if !resp.OK() {
		return nil, httpError(OpListFreeTrial, resp)
	}

	result := &ListResult{
		Numbers:    []string{},
		Outcome:    OutcomeListed,
		StatusCode: resp.StatusCode,
		Raw:        resp.Body,
	}
	if len(resp.Body) == 0 {
		return result, nil
	}

	if !json.Valid(resp.Body) {
		return nil, fmt.Errorf("%s: decoding response: invalid JSON", OpListFreeTrial)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body, &fields); err != nil {
		result.Response = resp.Body
		return result, nil
	}
	value, ok := fields["freeTrialNumbers"]
	if !ok {
		result.Response = resp.Body
		return result, nil
	}
	result.Numbers = decodeNumbers(value)
	return result, nil
}

// decodeNumbers accepts a string, an array, or null. Elements that are not
// strings are kept as their compact JSON text.
func decodeNumbers(value json.RawMessage) []string {
	numbers := []string{}

	var items []json.RawMessage
	if err := json.Unmarshal(value, &items); err != nil {
		items = []json.RawMessage{value}
	}
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			numbers = append(numbers, s)
			continue
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, item); err != nil || compact.String() == "null" {
			continue
		}
		numbers = append(numbers, compact.String())
	}
	return numbers
}

// exemptOutcome applies the 204/404 policy shared by the list operations.
func (c *Client) exemptOutcome(ep Endpoint, status int) (Outcome, bool) {
	switch status {
	case http.StatusNoContent:
		return OutcomeEmpty, true
	case http.StatusNotFound:
		c.opts.logger.Warn("endpoint returned 404; treating as no numbers, the account may not have the feature enabled",
			slog.String("endpoint", ep.Name),
			slog.String("url", ep.URL),
		)
		return OutcomeDegraded, true
	}
	return "", false
}

// registerRequest carries a single number as a string and several as an array.
// The API distinguishes the two shapes.
type registerRequest struct {
	FreeTrialNumbers any `json:"freeTrialNumbers"`
}

// RegisterBody encodes the register request body for numbers.
func RegisterBody(numbers []string) ([]byte, error) {
	if len(numbers) == 0 {
		return nil, &ValidationError{Field: "freeTrialNumbers", Message: "no numbers provided to register"}
	}

	req := registerRequest{FreeTrialNumbers: numbers}
	if len(numbers) == 1 {
		req.FreeTrialNumbers = numbers[0]
	}
	return json.Marshal(req)
}

// RegisterFreeTrialNumbers registers national-format numbers for the free trial.
// Numbers failing CheckNationalFormat are logged and still submitted.
func (c *Client) RegisterFreeTrialNumbers(ctx context.Context, numbers []string) (json.RawMessage, error) {
	body, err := RegisterBody(numbers)
	if err != nil {
		return nil, err
	}

	for _, n := range SuspectNumbers(numbers) {
		c.opts.logger.Info("submitting number that fails the national-format check", slog.String("number", n))
	}

	resp, err := c.do(ctx, OpRegisterFreeTrial, FreeTrialEndpoint(c.cfg), http.MethodPost, body)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, httpError(OpRegisterFreeTrial, resp)
	}

	if len(resp.Body) == 0 {
		return nil, nil
	}
	if !json.Valid(resp.Body) {
		return nil, fmt.Errorf("%s: response is not valid JSON", OpRegisterFreeTrial)
	}
	return json.RawMessage(resp.Body), nil
}
