package banana

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// describeHTTPError renders the message for a non-2xx response.
//
// The API wraps errors as {"message": ...}. When message is an object with both
// "status" and "name", the surfaced text is "Error: HTTP {status} - {name}" using
// the envelope's own status. Any other message is appended to the transport
// status prefix. An empty or non-JSON body, or one without a message, falls back
// to the transport error text.
func describeHTTPError(status int, body []byte, url string) string {
	prefix := fmt.Sprintf("Error: HTTP %d - ", status)
	cause := statusText(status, url)

	if len(body) == 0 {
		return prefix + cause
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var envelope map[string]any
	if err := dec.Decode(&envelope); err != nil || envelope == nil {
		return prefix + cause
	}

	message, ok := envelope["message"]
	if !ok || message == nil {
		return prefix + cause
	}

	if m, ok := message.(map[string]any); ok {
		st, hasStatus := m["status"]
		name, hasName := m["name"]
		if hasStatus && hasName {
			return fmt.Sprintf("Error: HTTP %s - %s", text(st), text(name))
		}
	}
	return prefix + text(message)
}

// statusText is the transport error for a failed status, in the form
// "404 Client Error: Not Found for url: ...".
func statusText(status int, url string) string {
	switch status / 100 {
	case 4:
		return fmt.Sprintf("%d Client Error: %s for url: %s", status, http.StatusText(status), url)
	case 5:
		return fmt.Sprintf("%d Server Error: %s for url: %s", status, http.StatusText(status), url)
	}
	return fmt.Sprintf("%d %s for url: %s", status, http.StatusText(status), url)
}

// text renders a decoded JSON value: strings verbatim, everything else as compact JSON.
func text(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
