package scenario

// State is a step of the scenario
type State int

const (
	Uninitialized State = iota
	WorkspaceReady
	RepoCloned
	Verified
	TornDown
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case WorkspaceReady:
		return "WorkspaceReady"
	case RepoCloned:
		return "RepoCloned"
	case Verified:
		return "Verified"
	case TornDown:
		return "TornDown"
	default:
		return "Unknown"
	}
}
