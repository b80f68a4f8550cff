package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorrupt is wrapped by decode failures of stored values.
var ErrCorrupt = errors.New("stored value is not valid JSON")

func getJSON(ctx context.Context, s LocalStorage, clientID, key string, dst any) (bool, error) {
	raw, found, err := s.GetItem(ctx, clientID, key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("%w: key %q: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

func setJSON(ctx context.Context, s LocalStorage, clientID, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.SetItem(ctx, clientID, key, string(data))
}
