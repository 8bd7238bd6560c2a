package telstra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// OpListVirtual names the virtual-numbers listing.
const OpListVirtual = "list virtual numbers"

// VirtualNumbers holds the provider-defined listing. Raw is nil when absent.
type VirtualNumbers struct {
	Raw        json.RawMessage `json:"virtualNumbers,omitempty"`
	Outcome    Outcome         `json:"outcome"`
	StatusCode int             `json:"status"`
}

// Empty reports whether there is nothing to show: absent, or a null/empty JSON value.
func (v *VirtualNumbers) Empty() bool {
	if v == nil {
		return true
	}
	switch string(bytes.TrimSpace(v.Raw)) {
	case "", "null", "{}", "[]", `""`:
		return true
	}
	return false
}

// ListVirtualNumbers fetches the account's virtual numbers.
// 204 and 404 yield an absent result rather than an error.
func (c *Client) ListVirtualNumbers(ctx context.Context) (*VirtualNumbers, error) {
	ep := VirtualNumbersEndpoint(c.cfg)
	resp, err := c.do(ctx, OpListVirtual, ep, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}

	if outcome, ok := c.exemptOutcome(ep, resp.StatusCode); ok {
		return &VirtualNumbers{Outcome: outcome, StatusCode: resp.StatusCode}, nil
	}
	if !resp.OK() {
		return nil, httpError(OpListVirtual, resp)
	}

	result := &VirtualNumbers{Outcome: OutcomeListed, StatusCode: resp.StatusCode}
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return result, nil
	}
	if !json.Valid(resp.Body) {
		return nil, fmt.Errorf("%s: response is not valid JSON", OpListVirtual)
	}
	result.Raw = json.RawMessage(resp.Body)
	return result, nil
}
