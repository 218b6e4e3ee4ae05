package session

// State is the persisted navigation state of a notebook: the last note
// opened through link following and the one before it, so go-back
// survives sidecar restarts.
type State struct {
	LastFile string `json:"last_file,omitempty"`
	PrevFile string `json:"prev_file,omitempty"`
}
