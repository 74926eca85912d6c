package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolDef_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tool    ToolDef
		wantErr bool
	}{
		{
			name: "valid tool",
			tool: ToolDef{
				Name:        "getWeather",
				Description: "Get current weather",
				Parameters:  map[string]any{"type": "object"},
			},
		},
		{
			name:    "empty name",
			tool:    ToolDef{Description: "Test", Parameters: map[string]any{"type": "object"}},
			wantErr: true,
		},
		{
			name:    "empty description",
			tool:    ToolDef{Name: "test", Parameters: map[string]any{"type": "object"}},
			wantErr: true,
		},
		{
			name:    "nil parameters",
			tool:    ToolDef{Name: "test", Description: "Test tool"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tool.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestToolCall_ParseArguments(t *testing.T) {
	tests := []struct {
		name    string
		args    string
		want    map[string]any
		wantErr bool
	}{
		{name: "object", args: `{"location":"London"}`, want: map[string]any{"location": "London"}},
		{name: "empty", args: "", want: map[string]any{}},
		{name: "whitespace", args: "  \n", want: map[string]any{}},
		{name: "null", args: "null", want: map[string]any{}},
		{name: "nested", args: `{"a":{"b":[1,2]}}`, want: map[string]any{"a": map[string]any{"b": []any{float64(1), float64(2)}}}},
		{name: "truncated", args: `{"location":`, wantErr: true},
		{name: "not json", args: "London", wantErr: true},
		{name: "array", args: `["London"]`, wantErr: true},
		{name: "string", args: `"London"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := ToolCall{ID: "c1", Name: "getWeather", Arguments: tt.args}
			got, err := call.ParseArguments()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToolChoice_IsValid(t *testing.T) {
	assert.True(t, ToolChoiceAuto.IsValid())
	assert.True(t, ToolChoiceNone.IsValid())
	assert.True(t, ToolChoiceRequired.IsValid())
	assert.False(t, ToolChoice("sometimes").IsValid())
	assert.Equal(t, "auto", ToolChoiceAuto.String())
}
