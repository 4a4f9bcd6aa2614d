package domain

// Snapshot is the observable state of the scheduler after a tick.
type Snapshot struct {
	Tick    uint64   `json:"tick"`
	Mode    Mode     `json:"mode"`
	Running []string `json:"running"`
	// Owners maps a subsystem name to the command currently requiring it.
	Owners map[string]string `json:"owners"`
}
