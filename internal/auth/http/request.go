package http

import (
	"encoding/json"
	"net/http"
)

const maxBodyBytes = 1 << 16 // 64 KiB is plenty for any auth payload

// decodeJSON reads a request body into dst, rejecting unknown fields and
// trailing garbage.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// A second document after the first is malformed input, not a request.
	if dec.More() {
		return errTrailingData
	}
	return nil
}

type jsonError string

func (e jsonError) Error() string { return string(e) }

const errTrailingData = jsonError("unexpected data after JSON body")
