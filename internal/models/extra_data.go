package models

import "fmt"

// ExtraData stores caller-supplied structured metadata on a log entry as
// key-value pairs. The recorder never interprets values beyond storing and
// re-emitting them, but every value must belong to the closed serializable
// set accepted by the export formats: string, bool, numeric, nil, or nested
// maps/slices of the same. Anything else is rejected at the export boundary.
type ExtraData map[string]interface{}

// Merge returns a copy of d with the entries of other applied on top.
// Either side may be nil.
func (d ExtraData) Merge(other ExtraData) ExtraData {
	if len(d) == 0 && len(other) == 0 {
		return nil
	}
	merged := make(ExtraData, len(d)+len(other))
	for k, v := range d {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Validate checks that every value is serializable in all export formats.
// Returns a descriptive error naming the offending key on failure.
func (d ExtraData) Validate() error {
	for key, value := range d {
		if err := validateValue(value); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
	}
	return nil
}

func validateValue(value interface{}) error {
	switch v := value.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return nil
	case ExtraData:
		return v.Validate()
	case map[string]interface{}:
		return ExtraData(v).Validate()
	case []interface{}:
		for i, item := range v {
			if err := validateValue(item); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		return nil
	case []string:
		return nil
	default:
		return fmt.Errorf("unsupported value type %T", value)
	}
}
