package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

var attributeKeyPattern = regexp.MustCompile(`^[a-z0-9_]{1,50}$`)

// AttributeKey names a dynamic product attribute such as "color" or "diameter_mm"
type AttributeKey string

// Validate checks the key against the allowed attribute key format
func (k AttributeKey) Validate() error {
	if !attributeKeyPattern.MatchString(string(k)) {
		return fmt.Errorf("invalid attribute key %q: must match %s", k, attributeKeyPattern)
	}
	return nil
}

// AttributeValue holds one or more values of an attribute.
// Multi-valued attributes serialize as a JSON list, single ones as a string.
type AttributeValue struct {
	Values []string
	Multi  bool
}

// Single builds a single-valued attribute
func Single(value string) AttributeValue {
	return AttributeValue{Values: []string{value}}
}

// Multi builds a multi-valued attribute
func Multi(values ...string) AttributeValue {
	return AttributeValue{Values: values, Multi: true}
}

func (v AttributeValue) MarshalJSON() ([]byte, error) {
	if v.Multi {
		if v.Values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Values)
	}
	if len(v.Values) == 0 {
		return []byte(`""`), nil
	}
	return json.Marshal(v.Values[0])
}

func (v *AttributeValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		values := make([]string, 0, len(raw))
		for _, item := range raw {
			s, err := scalarString(item)
			if err != nil {
				return err
			}
			values = append(values, s)
		}
		*v = AttributeValue{Values: values, Multi: true}
		return nil
	}

	s, err := scalarString(data)
	if err != nil {
		return err
	}
	*v = Single(s)
	return nil
}

// scalarString converts a JSON string, number or boolean to its string form
func scalarString(data json.RawMessage) (string, error) {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return "", err
	}
	switch t := value.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", errors.New("attribute values must be strings, numbers or booleans")
	}
}

// Attributes is the set of dynamic attributes attached to a product
type Attributes map[AttributeKey]AttributeValue

// Keys returns the attribute keys in ascending order
func (a Attributes) Keys() []AttributeKey {
	keys := make([]AttributeKey, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Validate checks every key and rejects empty values
func (a Attributes) Validate() error {
	for _, key := range a.Keys() {
		if err := key.Validate(); err != nil {
			return err
		}
		value := a[key]
		if !value.Multi && len(value.Values) != 1 {
			return fmt.Errorf("attribute %q must have exactly one value", key)
		}
		seen := make(map[string]bool, len(value.Values))
		for _, s := range value.Values {
			if seen[s] {
				return fmt.Errorf("attribute %q repeats value %q", key, s)
			}
			seen[s] = true
			if s == "" {
				return fmt.Errorf("attribute %q has an empty value", key)
			}
			if len(s) > 100 {
				return fmt.Errorf("attribute %q value exceeds 100 characters", key)
			}
		}
	}
	return nil
}
