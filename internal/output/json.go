package output

import (
	"encoding/json"
	"io"
)

// WriteJSON outputs any value as formatted JSON to w.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ErrorResult is the --json rendering of a failed command.
type ErrorResult struct {
	Error    string          `json:"error"`
	Status   int             `json:"status,omitempty"`
	Details  json.RawMessage `json:"details,omitempty"`
	ExitCode int             `json:"exitCode"`
}

// TokenResult is the --json rendering of the token command.
type TokenResult struct {
	TokenType   string `json:"tokenType,omitempty"`
	Expiry      string `json:"expiry,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
}
