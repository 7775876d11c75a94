package postgres

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// stringList se guarda como JSONB array (characteristics, images).
// Value devuelve string: lib/pq mandaría []byte en formato binario.
type stringList []string

func (l stringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *stringList) Scan(src any) error {
	b, err := jsonBytes(src)
	if err != nil {
		return err
	}
	if b == nil {
		*l = stringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("scan jsonb list: %w", err)
	}
	*l = out
	return nil
}

// jsonObject: blobs opacos (contact_info, experience_info, sess).
type jsonObject map[string]any

func (o jsonObject) Value() (driver.Value, error) {
	if o == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]any(o))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (o *jsonObject) Scan(src any) error {
	b, err := jsonBytes(src)
	if err != nil {
		return err
	}
	out := map[string]any{}
	if b != nil {
		if err := json.Unmarshal(b, &out); err != nil {
			return fmt.Errorf("scan jsonb object: %w", err)
		}
	}
	*o = out
	return nil
}

func jsonBytes(src any) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported jsonb source %T", src)
	}
}
