package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns the payload as T. MemoryBus delivers the struct
// itself (or a pointer to it); payloads read back from the dead-letter file
// arrive as generic JSON and are converted.
func DecodePayload[T any](input interface{}) (T, error) {
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}

	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, fmt.Errorf("decode %T payload: %w", result, err)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("decode %T payload: %w", result, err)
	}
	return result, nil
}
