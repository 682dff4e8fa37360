package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/simonta/simonta-api/pkg/validator"
)

// DefaultMaxBodySize bounds JSON request bodies.
const DefaultMaxBodySize int64 = 1 << 20

// JSONInput decodes a JSON object body into a validator.Input. Key presence
// is preserved: an omitted key stays absent and "key": null is stored as a
// nil value. Numbers are kept as json.Number so integer ids survive intact.
// A maxBytes of zero or less uses DefaultMaxBodySize.
func JSONInput(r *http.Request, maxBytes int64) (validator.Input, error) {
	if err := r.Context().Err(); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}

	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return nil, fmt.Errorf("%w: expected application/json", ErrMissingContentType)
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil || mediaType != "application/json" {
		return nil, fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, ct)
	}

	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
	if err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	if int64(len(body)) > maxBytes {
		return nil, fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, maxBytes)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var in validator.Input
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}
	if in == nil {
		return nil, fmt.Errorf("%w: body must be a JSON object", ErrFailedToParseJSON)
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
	}
	return in, nil
}
