package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilders(t *testing.T) {
	tests := []struct {
		name   string
		schema JSON
		want   string
	}{
		{"string", String(), "string"},
		{"int", Int(), "integer"},
		{"number", Number(), "number"},
		{"bool", Bool(), "boolean"},
		{"array", Array(String()), "array"},
		{"object", Object(nil), "object"},
		{"any", Any(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.schema.Type != tt.want {
				t.Errorf("Type = %q, want %q", tt.schema.Type, tt.want)
			}
		})
	}

	desc := StringWithDesc("City name")
	assert.Equal(t, "City name", desc.Description)
	assert.Equal(t, "Amount", Number().WithDescription("Amount").Description)
	assert.Equal(t, "string", Array(String()).Items.Type)
}

func TestToMap(t *testing.T) {
	s := Object(map[string]JSON{
		"location": StringWithDesc("The city"),
		"days":     Int(),
	}, "location")

	got := s.ToMap()
	assert.Equal(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"location": map[string]any{"type": "string", "description": "The city"},
			"days":     map[string]any{"type": "integer"},
		},
		"required": []any{"location"},
	}, got)
}

func TestValidate(t *testing.T) {
	minAmount := 0.0
	weather := Object(map[string]JSON{
		"location": StringWithDesc("The city"),
		"amount":   {Type: "number", Minimum: &minAmount},
		"unit":     Enum("celsius", "fahrenheit"),
		"tags":     Array(String()),
	}, "location")

	v, err := weather.Compile()
	require.NoError(t, err)

	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{name: "minimal", value: map[string]any{"location": "London"}},
		{name: "all fields", value: map[string]any{"location": "London", "amount": 3.5, "unit": "celsius", "tags": []any{"a"}}},
		{name: "typed integer", value: map[string]any{"location": "London", "amount": 7}},
		{name: "missing required", value: map[string]any{}, wantErr: true},
		{name: "wrong type", value: map[string]any{"location": 12}, wantErr: true},
		{name: "below minimum", value: map[string]any{"location": "x", "amount": -1.0}, wantErr: true},
		{name: "not in enum", value: map[string]any{"location": "x", "unit": "kelvin"}, wantErr: true},
		{name: "bad item", value: map[string]any{"location": "x", "tags": []any{1}}, wantErr: true},
		{name: "not an object", value: "London", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_Struct(t *testing.T) {
	type args struct {
		Location string `json:"location"`
	}
	s := Object(map[string]JSON{"location": String()}, "location")

	assert.NoError(t, s.Validate(args{Location: "Paris"}))
	assert.Error(t, s.Validate(func() {}))
}

func TestCompile_InvalidPattern(t *testing.T) {
	s := JSON{Type: "string", Pattern: "("}
	_, err := s.Compile()
	assert.Error(t, err)
}
