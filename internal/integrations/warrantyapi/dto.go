package warrantyapi

import (
	"encoding/json"
	"fmt"
)

// envelope is the common shape of every warranty API response.
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ok reports an explicit success:true. A missing flag is a failure.
func (e envelope) ok() bool {
	return e.Success != nil && *e.Success
}

func (e envelope) reason() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

func decodeList[T any](raw []byte, key string) ([]T, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	if !env.ok() {
		return nil, fmt.Errorf("unsuccessful response: %s", or(env.reason(), "no success flag"))
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	list, ok := body[key]
	if !ok || string(list) == "null" {
		return nil, fmt.Errorf("response has no %q list", key)
	}

	var items []T
	if err := json.Unmarshal(list, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = make([]T, 0)
	}
	return items, nil
}
