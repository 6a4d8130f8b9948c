package game

// Action represents a player decision on a single hand. Custom actions
// registered through the Registry use their registered name.
type Action string

const (
	Hit       Action = "hit"
	Stand     Action = "stand"
	Double    Action = "double"
	Split     Action = "split"
	Surrender Action = "surrender"
)

// String returns the wire name of the action
func (a Action) String() string {
	return string(a)
}

// ActionNames converts a legal-action set to plain strings for prompts
func ActionNames(actions []Action) []string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.String()
	}
	return names
}

func containsAction(actions []Action, action Action) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}
