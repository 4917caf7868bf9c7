package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"golfcart-dashboard/internal/repository"
)

// errNoResult is a 2xx reply that carries nothing to decode.
var errNoResult = fmt.Errorf("%w: response without result", ErrUnexpectedShape)

// The backend answers with {succeeded|suceded, result, message}, a bare
// value, or (for some list endpoints) a result with no flag at all.
func decodeResult(body []byte, status int, out any) error {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
		}
		if isEnvelope(fields) {
			return decodeEnvelope(fields, status, out)
		}
	}

	if status == http.StatusNotFound {
		return fmt.Errorf("%w: status %d", repository.ErrNotFound, status)
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("%w: status %d", ErrTransport, status)
	}
	if out == nil {
		return nil
	}
	if len(trimmed) == 0 {
		return errNoResult
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	return nil
}

func isEnvelope(fields map[string]json.RawMessage) bool {
	for _, k := range []string{"succeeded", "suceded", "result"} {
		if _, ok := fields[k]; ok {
			return true
		}
	}
	return false
}

func decodeEnvelope(fields map[string]json.RawMessage, status int, out any) error {
	var message string
	if raw, ok := fields["message"]; ok {
		_ = json.Unmarshal(raw, &message)
	}

	ok, flagged, err := envelopeFlag(fields)
	if err != nil {
		return err
	}
	if flagged && !ok {
		return &APIError{StatusCode: status, Message: message}
	}
	if status < 200 || status > 299 {
		if message != "" {
			return &APIError{StatusCode: status, Message: message}
		}
		return fmt.Errorf("%w: status %d", ErrTransport, status)
	}

	if out == nil {
		return nil
	}
	result, has := fields["result"]
	if !has || string(result) == "null" {
		return errNoResult
	}
	if err := json.Unmarshal(result, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	return nil
}

// envelopeFlag reads whichever spelling of the success flag is present.
func envelopeFlag(fields map[string]json.RawMessage) (ok, present bool, err error) {
	for _, k := range []string{"succeeded", "suceded"} {
		raw, has := fields[k]
		if !has {
			continue
		}
		if err := json.Unmarshal(raw, &ok); err != nil {
			return false, true, fmt.Errorf("%w: %s is not a boolean", ErrUnexpectedShape, k)
		}
		return ok, true, nil
	}
	return false, false, nil
}
