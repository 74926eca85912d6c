package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromType(t *testing.T) {
	type convertArgs struct {
		Amount float64   `json:"amount" description:"Amount to convert"`
		From   string    `json:"from_currency"`
		To     string    `json:"to_currency"`
		Note   string    `json:"note,omitempty"`
		When   time.Time `json:"when,omitempty"`
		Tags   []string  `json:"tags,omitempty"`
		Skip   string    `json:"-"`
		hidden string
	}

	s := FromType(convertArgs{})

	assert.Equal(t, "object", s.Type)
	assert.Equal(t, []string{"amount", "from_currency", "to_currency"}, s.Required)
	assert.Equal(t, JSON{Type: "number", Description: "Amount to convert"}, s.Properties["amount"])
	assert.Equal(t, "date-time", s.Properties["when"].Format)
	assert.Equal(t, "string", s.Properties["tags"].Items.Type)
	assert.NotContains(t, s.Properties, "Skip")
	assert.NotContains(t, s.Properties, "hidden")

	assert.NoError(t, s.Validate(map[string]any{"amount": 10, "from_currency": "USD", "to_currency": "EUR"}))
	assert.Error(t, s.Validate(map[string]any{"amount": "ten", "from_currency": "USD", "to_currency": "EUR"}))
}

func TestFromType_Primitives(t *testing.T) {
	assert.Equal(t, JSON{}, FromType(nil))
	assert.Equal(t, "integer", FromType(uint8(1)).Type)
	assert.Equal(t, "boolean", FromType(true).Type)
	assert.Equal(t, "object", FromType(map[string]int{}).Type)

	var p *string
	assert.Equal(t, "string", FromType(p).Type)
}

func TestFromType_ClosedObjects(t *testing.T) {
	type location struct {
		City    string `json:"city"`
		Country string `json:"country,omitempty"`
	}
	type lookupArgs struct {
		location
		Units string `json:"units,omitempty" description:"metric or imperial"`
	}

	s := FromType(lookupArgs{})

	require.NotNil(t, s.AdditionalProperties)
	assert.False(t, *s.AdditionalProperties)
	assert.Equal(t, false, s.ToMap()["additionalProperties"])
	assert.Equal(t, []string{"city"}, s.Required)
	assert.Contains(t, s.Properties, "country", "embedded fields are promoted")
	assert.Contains(t, s.Properties, "units")
	assert.NotContains(t, s.Properties, "location")

	assert.NoError(t, s.Validate(map[string]any{"city": "Leeds", "units": "metric"}))
	assert.Error(t, s.Validate(map[string]any{"city": "Leeds", "unit": "metric"}), "unknown key")
	assert.Nil(t, FromType(map[string]string{}).AdditionalProperties, "maps stay open")
}
