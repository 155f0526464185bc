package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateValue(t *testing.T) {
	tests := []struct {
		name        string
		settingType string
		value       string
		wantErr     bool
	}{
		{"text accepts a string", TypeText, `"مرحبا بكم"`, false},
		{"text rejects a number", TypeText, `42`, true},
		{"text rejects an object", TypeText, `{"ar": "x"}`, true},

		{"image accepts an https url", TypeImage, `"https://cdn.example.com/logo.png"`, false},
		{"image accepts an absolute path", TypeImage, `"/uploads/logo.png"`, false},
		{"image rejects a bare word", TypeImage, `"logo.png"`, true},
		{"image rejects an empty string", TypeImage, `""`, true},
		{"image rejects a non-string", TypeImage, `["x"]`, true},

		{"json_array accepts an array", TypeJSONArray, `[{"title": "a"}, {"title": "b"}]`, false},
		{"json_array accepts with leading whitespace", TypeJSONArray, "\n  []", false},
		{"json_array rejects an object", TypeJSONArray, `{"a": 1}`, true},
		{"json_array rejects a string", TypeJSONArray, `"[]"`, true},

		{"json_object accepts an object", TypeJSONObject, `{"phone": "0551234567"}`, false},
		{"json_object rejects an array", TypeJSONObject, `[]`, true},

		{"unknown type rejected", "number", `42`, true},
		{"invalid json rejected", TypeText, `{`, true},
		{"empty value rejected", TypeText, ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateValue(tt.settingType, json.RawMessage(tt.value))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsValidType(t *testing.T) {
	for _, typ := range ValidTypes {
		assert.True(t, IsValidType(typ))
	}
	assert.False(t, IsValidType("number"))
	assert.False(t, IsValidType(""))
}
