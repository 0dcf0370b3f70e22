package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

type importEnvelope struct {
	Servers *struct {
		Projects      json.RawMessage `json:"projects"`
		ServerConfigs json.RawMessage `json:"serverConfigs"`
	} `json:"servers"`
}

// DecodeImportRequest parses {"servers": {"projects": [...],
// "serverConfigs": [...]}}. A missing or non-array projects field is
// ErrInvalidBundle. serverConfigs is read only when it is an array.
// Elements are decoded one by one; a bad element is recorded in
// ProjectErrors or ConfigErrors and the rest still decode.
func DecodeImportRequest(r io.Reader) (ImportRequest, error) {
	var env importEnvelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return ImportRequest{}, fmt.Errorf("%w: %w", ErrInvalidBundle, err)
	}
	if env.Servers == nil || !isArray(env.Servers.Projects) {
		return ImportRequest{}, fmt.Errorf("%w: servers.projects must be an array", ErrInvalidBundle)
	}

	var req ImportRequest
	var err error
	req.Projects, req.ProjectErrors, err = decodeElements[Project](env.Servers.Projects)
	if err != nil {
		return ImportRequest{}, fmt.Errorf("%w: projects: %v", ErrInvalidBundle, err)
	}

	if isArray(env.Servers.ServerConfigs) {
		req.ServerConfigs, req.ConfigErrors, err = decodeElements[ServerConfig](env.Servers.ServerConfigs)
		if err != nil {
			return ImportRequest{}, fmt.Errorf("%w: serverConfigs: %v", ErrInvalidBundle, err)
		}
	}

	return req, nil
}

// decodeElements splits a JSON array and decodes each element into T.
// errs is nil when every element decoded.
func decodeElements[T any](raw json.RawMessage) (out []T, errs []error, err error) {
	var elems []json.RawMessage
	if err = json.Unmarshal(raw, &elems); err != nil {
		return nil, nil, err
	}

	out = make([]T, len(elems))
	for i, elem := range elems {
		if uerr := json.Unmarshal(elem, &out[i]); uerr != nil {
			if errs == nil {
				errs = make([]error, len(elems))
			}
			var zero T
			out[i] = zero
			errs[i] = describeDecodeError(uerr)
		}
	}
	return out, errs, nil
}

func describeDecodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Errorf("%w: %s has the wrong type", ErrMalformedRecord, typeErr.Field)
	}
	var timeErr *time.ParseError
	if errors.As(err, &timeErr) {
		return fmt.Errorf("%w: invalid timestamp %q", ErrMalformedRecord, timeErr.Value)
	}
	return ErrMalformedRecord
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
