package gamehub

import (
	"errors"
)

var ErrNoValueForKey = errors.New("no value found for key")
var ErrValueNotAsserted = errors.New("value could not be asserted to specified type")

func checkAndAssertStringFromMap(src map[string]any, key string) (string, error) {
	data, ok := src[key]
	if !ok {
		return "", ErrNoValueForKey
	}
	value, ok := data.(string)
	if !ok {
		return "", ErrValueNotAsserted
	}

	return value, nil
}

// optionalStringFromMap returns nil when key is absent.
func optionalStringFromMap(src map[string]any, key string) (*string, error) {
	value, err := checkAndAssertStringFromMap(src, key)
	if err != nil {
		if errors.Is(err, ErrNoValueForKey) {
			return nil, nil
		}
		return nil, err
	}

	return &value, nil
}
