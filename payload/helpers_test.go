package payload_test

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// JSONComparer transforms JSON bytes into a generic value for semantic comparison.
var JSONComparer = cmp.Transformer("JSON", func(in []byte) any {
	var v any
	if err := json.Unmarshal(in, &v); err != nil {
		// Treated as a difference in comparison.
		fmt.Printf("JSON Unmarshal Error: %v: json=%s\n", err, in)
		return nil
	}
	return v
})

// --- Duplicate Key Checker Logic ---

type duplicateKeyChecker struct {
	dec *json.Decoder
}

func newDuplicateKeyChecker(data []byte) *duplicateKeyChecker {
	return &duplicateKeyChecker{dec: json.NewDecoder(bytes.NewReader(data))}
}

// check walks the document; scalars at the top level have no keys to check.
func (c *duplicateKeyChecker) check() error {
	t, err := c.dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := t.(json.Delim); ok && delim == '{' {
		return c.checkObject()
	}
	return nil
}

func (c *duplicateKeyChecker) checkObject() error {
	keys := make(map[string]bool)
	for c.dec.More() {
		t, err := c.dec.Token()
		if err != nil {
			return err
		}
		key, ok := t.(string)
		if !ok {
			return fmt.Errorf("expected string key, got %T %v", t, t)
		}
		if keys[key] {
			return fmt.Errorf("duplicate key found: %s", key)
		}
		keys[key] = true

		if err := c.consumeValue(); err != nil {
			return err
		}
	}
	t, err := c.dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := t.(json.Delim); !ok || delim != '}' {
		return fmt.Errorf("expected end of object '}', got %T %v", t, t)
	}
	return nil
}

func (c *duplicateKeyChecker) consumeValue() error {
	t, err := c.dec.Token()
	if err != nil {
		return err
	}

	if delim, ok := t.(json.Delim); ok {
		switch delim {
		case '{':
			return c.checkObject()
		case '[':
			for c.dec.More() {
				if err := c.consumeValue(); err != nil {
					return err
				}
			}
			if _, err := c.dec.Token(); err != nil {
				return fmt.Errorf("failed to read end of array token: %w", err)
			}
		}
	}
	return nil
}
