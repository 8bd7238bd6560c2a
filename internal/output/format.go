package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/oauth2"

	"github.com/msgtools/telstra-numbers/internal/telstra"
)

// Printer writes command results. Exchange dumps go to Out in text mode and
// to Err in JSON mode, so stdout stays machine-readable.
type Printer struct {
	Out     io.Writer
	Err     io.Writer
	JSON    bool
	Verbose bool
	// Pretty enables JSON indentation of response bodies.
	Pretty bool
}

// NewPrinter returns a Printer that pretty-prints only when out is a terminal.
func NewPrinter(out, errw io.Writer, jsonOutput, verbose bool) *Printer {
	return &Printer{
		Out:     out,
		Err:     errw,
		JSON:    jsonOutput,
		Verbose: verbose,
		Pretty:  IsTerminal(out),
	}
}

// exchangeLabels maps operations to the heading printed above their response.
var exchangeLabels = map[string]string{
	telstra.OpToken:             "Token",
	telstra.OpListFreeTrial:     "List Free Trial Numbers",
	telstra.OpRegisterFreeTrial: "Register Free Trial Numbers",
	telstra.OpListVirtual:       "Virtual Numbers",
}

func exchangeLabel(op string) string {
	if label, ok := exchangeLabels[op]; ok {
		return label
	}
	return op
}

// Exchange prints the status and raw body of a completed call.
func (p *Printer) Exchange(ex telstra.Exchange) {
	w := p.Out
	if p.JSON {
		w = p.Err
	}

	label := exchangeLabel(ex.Op)
	if ex.Op != telstra.OpToken {
		fmt.Fprintln(w)
	}
	if p.Verbose {
		fmt.Fprintf(w, "%s Request: %s %s\n", label, ex.Method, ex.URL)
		fmt.Fprintf(w, "%s Status: %d (%dms)\n", label, ex.StatusCode, ex.Latency.Milliseconds())
	} else {
		fmt.Fprintf(w, "%s Status: %d\n", label, ex.StatusCode)
	}
	fmt.Fprintf(w, "%s Response: %s\n", label, p.formatResponseBody(ex.Body))
}

// FreeTrialNumbers prints a list result, distinguishing empty from degraded.
func (p *Printer) FreeTrialNumbers(result *telstra.ListResult) error {
	if p.JSON {
		return WriteJSON(p.Out, result)
	}

	fmt.Fprintln(p.Out)
	switch {
	case result.Outcome == telstra.OutcomeDegraded:
		fmt.Fprintln(p.Out, "⚠ No free trial numbers returned (404).")
		fmt.Fprintln(p.Out, "  The endpoint was not found or free-trial numbers are not enabled for this account.")
	case result.Unrecognized():
		fmt.Fprintln(p.Out, "Free Trial Numbers response:")
		fmt.Fprintln(p.Out, p.formatResponseBody(result.Response))
	case len(result.Numbers) == 0:
		fmt.Fprintln(p.Out, "Free Trial Numbers: none registered")
	default:
		fmt.Fprintf(p.Out, "Free Trial Numbers (%d):\n", len(result.Numbers))
		for _, n := range result.Numbers {
			fmt.Fprintf(p.Out, "  %s\n", n)
		}
	}
	return nil
}

// RegisterResponse prints the body returned by a registration.
func (p *Printer) RegisterResponse(raw json.RawMessage) error {
	if p.JSON {
		if raw == nil {
			raw = json.RawMessage("null")
		}
		return WriteJSON(p.Out, raw)
	}

	fmt.Fprintln(p.Out)
	if len(raw) == 0 {
		fmt.Fprintln(p.Out, "✓ Registered (no response body)")
		return nil
	}
	fmt.Fprintln(p.Out, "✓ Register response:")
	fmt.Fprintln(p.Out, p.formatResponseBody(raw))
	return nil
}

// VirtualNumbers prints the virtual-number listing or a "no numbers" notice.
func (p *Printer) VirtualNumbers(v *telstra.VirtualNumbers) error {
	if p.JSON {
		return WriteJSON(p.Out, v)
	}

	fmt.Fprintln(p.Out)
	if v.Empty() {
		fmt.Fprintln(p.Out, "⚠ No virtual numbers returned (empty/404/204). See the Response printed above for details.")
		if v.Outcome == telstra.OutcomeDegraded {
			fmt.Fprintln(p.Out, "  The endpoint was not found or virtual numbers are not enabled for this account.")
		}
		return nil
	}
	fmt.Fprintln(p.Out, "✓ Virtual numbers retrieved:")
	fmt.Fprintln(p.Out, p.formatResponseBody(v.Raw))
	return nil
}

// Token prints the granted token's metadata. The secret itself only when show is set.
func (p *Printer) Token(tok *oauth2.Token, show bool) error {
	result := TokenResult{TokenType: tok.TokenType}
	if !tok.Expiry.IsZero() {
		result.Expiry = tok.Expiry.Format(time.RFC3339)
	}
	if show {
		result.AccessToken = tok.AccessToken
	}

	if p.JSON {
		return WriteJSON(p.Out, result)
	}

	fmt.Fprintln(p.Out)
	fmt.Fprintln(p.Out, "✓ Access token granted")
	if result.TokenType != "" {
		fmt.Fprintf(p.Out, "  Type:    %s\n", result.TokenType)
	}
	if result.Expiry != "" {
		fmt.Fprintf(p.Out, "  Expires: %s\n", result.Expiry)
	}
	if show {
		fmt.Fprintf(p.Out, "  Token:   %s\n", result.AccessToken)
	}
	return nil
}

// Warning outputs a warning message to stderr.
func (p *Printer) Warning(msg string) {
	fmt.Fprintf(p.Err, "Warning: %s\n", msg)
}

// Error reports a failed command. HTTP failures also get their response body.
func (p *Printer) Error(err error, exitCode int) {
	var httpErr *telstra.HTTPError
	hasHTTP := errors.As(err, &httpErr)

	if p.JSON {
		result := ErrorResult{Error: err.Error(), ExitCode: exitCode}
		if hasHTTP {
			result.Status = httpErr.StatusCode
			if json.Valid(httpErr.Body) {
				result.Details = json.RawMessage(httpErr.Body)
			} else if len(httpErr.Body) > 0 {
				result.Details, _ = json.Marshal(string(httpErr.Body))
			}
		}
		WriteJSON(p.Out, result)
		return
	}

	fmt.Fprintln(p.Err)
	fmt.Fprintf(p.Err, "Error: %v\n", err)
	if hasHTTP && len(httpErr.Body) > 0 {
		fmt.Fprintf(p.Err, "Details: %s\n", p.formatResponseBody(httpErr.Body))
	}
}

// maxPrettyPrintSize is the maximum response size (in bytes) to pretty-print.
// Larger responses are returned raw to avoid terminal lag and memory issues.
const maxPrettyPrintSize = 50 * 1024 // 50KB

// formatResponseBody pretty-prints JSON when outputting to a terminal,
// otherwise returns the raw body for piping to other tools.
func (p *Printer) formatResponseBody(body []byte) string {
	if !p.Pretty || len(body) > maxPrettyPrintSize {
		return string(body)
	}

	// json.Indent returns an error for invalid JSON, so no need to pre-validate
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		return string(body)
	}
	return pretty.String()
}
