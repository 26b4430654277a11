// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"strconv"
	"strings"
)

// pathID extracts the numeric id that follows prefix in an item path.
func pathID(path, prefix string) (int64, error) {
	raw := strings.TrimPrefix(path, prefix)
	if raw == "" || strings.Contains(raw, "/") {
		return 0, errors.New("missing or malformed id")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("id must be an integer")
	}
	return id, nil
}
