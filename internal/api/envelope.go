package api

import "encoding/json"

// envelope is the paginated list shape some endpoints return.
type envelope struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  json.RawMessage `json:"results"`
}

// decodeList normalizes a list response into a plain slice. Endpoints return
// either a bare array or a paginated envelope; anything else decodes to an
// empty slice rather than failing the whole fetch.
func decodeList[T any](data json.RawMessage) ([]T, error) {
	var direct []T
	if err := json.Unmarshal(data, &direct); err == nil {
		return direct, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Results != nil {
		var results []T
		if err := json.Unmarshal(env.Results, &results); err == nil {
			return results, nil
		}
	}

	return []T{}, nil
}
