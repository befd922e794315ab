package events

const (
	TableSyncedEvent     = "table.synced"
	TableSyncFailedEvent = "table.sync_failed"
)

// TableSynced is published after records were committed to a table
type TableSynced struct {
	Table     string `json:"table"`
	Strategy  string `json:"strategy"`
	Processed int    `json:"processed"`
}

// TableSyncFailed is published when a write was rolled back
type TableSyncFailed struct {
	Table    string `json:"table"`
	Strategy string `json:"strategy"`
	Reason   string `json:"reason"`
}
