package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPolicy_CompileErrors(t *testing.T) {
	tests := []struct {
		name  string
		rules map[string]string
	}{
		{name: "syntax", rules: map[string]string{"x": "args.path.startsWith("}},
		{name: "non bool", rules: map[string]string{"x": `"yes"`}},
		{name: "unknown variable", rules: map[string]string{"x": "user == 'root'"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPolicy(tt.rules)
			assert.Error(t, err)
		})
	}
}

func TestPolicy_Allow(t *testing.T) {
	p, err := NewPolicy(map[string]string{
		"deleteFile": `!args.path.startsWith("/") && !args.path.contains("..")`,
		"*":          `tool != "searchWeb" || size(args.query) < 20`,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())

	tests := []struct {
		name string
		tool string
		args map[string]any
		want bool
	}{
		{name: "relative delete", tool: "deleteFile", args: map[string]any{"path": "notes.txt"}, want: true},
		{name: "absolute delete", tool: "deleteFile", args: map[string]any{"path": "/etc/passwd"}},
		{name: "traversal", tool: "deleteFile", args: map[string]any{"path": "../x"}},
		{name: "missing key errors", tool: "deleteFile", args: map[string]any{}},
		{name: "short query", tool: "searchWeb", args: map[string]any{"query": "go"}, want: true},
		{name: "long query", tool: "searchWeb", args: map[string]any{"query": "a very very long search query"}},
		{name: "no rule", tool: "getWeather", args: nil, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Allow(tt.tool, tt.args)
			assert.Equal(t, tt.want, got)
			if tt.want {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestPolicy_Nil(t *testing.T) {
	var p *Policy
	ok, err := p.Allow("anything", nil)
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Zero(t, p.Len())
}
