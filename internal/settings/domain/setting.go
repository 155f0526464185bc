// Package domain defines the store settings model. Every setting carries an
// explicit type tag; the value is validated against the tag, never sniffed.
package domain

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Setting type tags.
const (
	TypeText       = "text"
	TypeImage      = "image"
	TypeJSONArray  = "json_array"
	TypeJSONObject = "json_object"
)

// ValidTypes lists the accepted setting type tags.
var ValidTypes = []string{TypeText, TypeImage, TypeJSONArray, TypeJSONObject}

// IsValidType reports whether t is a known setting type tag.
func IsValidType(t string) bool {
	switch t {
	case TypeText, TypeImage, TypeJSONArray, TypeJSONObject:
		return true
	}
	return false
}

// Setting is one key of the store configuration. Value holds the raw JSON
// document matching the Type tag.
type Setting struct {
	Key       string          `json:"key"`
	Type      string          `json:"type"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ValidateValue checks that raw is a JSON document matching the given type
// tag. text and image require a JSON string; image additionally requires a
// URL or absolute path. json_array and json_object require the matching
// top-level container.
func ValidateValue(settingType string, raw json.RawMessage) error {
	if !IsValidType(settingType) {
		return fmt.Errorf("unknown setting type %q", settingType)
	}
	if len(raw) == 0 || !json.Valid(raw) {
		return fmt.Errorf("value is not valid JSON")
	}

	switch settingType {
	case TypeText:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("text value must be a JSON string")
		}
		return nil

	case TypeImage:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("image value must be a JSON string")
		}
		return validateImageRef(s)

	case TypeJSONArray:
		if firstToken(raw) != '[' {
			return fmt.Errorf("json_array value must be a top-level array")
		}
		return nil

	case TypeJSONObject:
		if firstToken(raw) != '{' {
			return fmt.Errorf("json_object value must be a top-level object")
		}
		return nil
	}

	return nil
}

// validateImageRef accepts http(s) URLs and absolute paths.
func validateImageRef(s string) error {
	if s == "" {
		return fmt.Errorf("image value must not be empty")
	}
	if strings.HasPrefix(s, "/") {
		return nil
	}

	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("image value must be an http(s) URL or an absolute path")
	}
	return nil
}

// firstToken returns the first non-whitespace byte of a JSON document.
func firstToken(raw json.RawMessage) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
