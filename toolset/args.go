package toolset

import (
	"encoding/json"

	"github.com/zero-day-ai/toolchat/toolerr"
)

// decodeArgs copies the validated argument map into a typed struct.
func decodeArgs(name string, args map[string]any, v any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return toolerr.New(name, "decode", toolerr.ErrCodeInvalidInput, "arguments are not serializable").
			WithCause(err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return toolerr.New(name, "decode", toolerr.ErrCodeInvalidInput, err.Error()).
			WithCause(toolerr.ErrInvalidInput)
	}
	return nil
}
