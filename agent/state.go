package agent

// State is the position of the loop within a turn.
type State int

const (
	StateIdle State = iota
	StateAwaitingModel
	StateStreaming
	StateDispatchingTool
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingModel:
		return "awaiting_model"
	case StateStreaming:
		return "streaming"
	case StateDispatchingTool:
		return "dispatching_tool"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
