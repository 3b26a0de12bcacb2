package reconcile

import "time"

// Item is one rules document as seen by a single source.
type Item struct {
	// Name is the resource name, e.g. "realms.json".
	Name string `json:"name"`
	// Version is the document's top-level version, empty when absent.
	Version string `json:"version,omitempty"`
	// Checksum is the hex SHA-256 of the body.
	Checksum string `json:"checksum"`
	// Body is the raw document.
	Body []byte `json:"-"`
}

// Index holds the items of one source by name. A nil Index means the source
// is not configured.
type Index map[string]Item

// State describes one backend's copy of a document relative to the reference.
type State string

const (
	// StatePresent means the backend copy matches the reference.
	StatePresent State = "present"
	// StateMissing means the reference has the document and the backend does not.
	StateMissing State = "missing"
	// StateMismatch means both have it but version or checksum differ.
	StateMismatch State = "mismatch"
	// StateExtra means the backend has a document the reference does not know.
	StateExtra State = "extra"
	// StateAbsent means neither the reference nor the backend holds the document.
	StateAbsent State = "absent"
	// StateSkipped means the backend is not configured.
	StateSkipped State = "skipped"
)

// ReconcileResult is the reconciliation of one document across every source.
type ReconcileResult struct {
	// Name is the resource name.
	Name string `json:"name"`

	// Version is the reference version, empty for extra documents.
	Version string `json:"version,omitempty"`

	// Reference reports whether the embedded defaults carry the document.
	Reference bool `json:"reference"`

	Storage  State `json:"storage"`
	Database State `json:"database"`

	// Mismatch describes every difference, e.g. "storage version: reference=1.0.0 storage=0.9.0".
	Mismatch []string `json:"mismatch"`
}

// Spec bundles the adapter with cache settings.
type Spec struct {
	// Adapter loads the three sources.
	Adapter Adapter

	// CacheTTL is the time-to-live for cached indices.
	// If zero, caching is disabled.
	CacheTTL time.Duration
}

// CacheKey returns the key the indices of this spec are cached under.
func (s *Spec) CacheKey() string {
	return s.Adapter.Name()
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionUploadStorage uploads a missing document to storage.
	ActionUploadStorage ActionType = "upload_storage"
	// ActionInsertDB stores a missing document in the database.
	ActionInsertDB ActionType = "insert_db"
	// ActionSyncStorage overwrites a mismatched storage copy with the reference.
	ActionSyncStorage ActionType = "sync_storage"
	// ActionSyncDB overwrites a mismatched database copy with the reference.
	ActionSyncDB ActionType = "sync_db"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Name is the document the action writes.
	Name string `json:"name"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Item is the reference copy the action writes.
	Item Item `json:"-"`
}

// ReconcilePlan contains reconciliation results and planned actions.
type ReconcilePlan struct {
	Results []ReconcileResult `json:"results"`
	Actions []Action          `json:"actions"`
	Summary PlanSummary       `json:"summary"`
}

// PlanSummary provides aggregate counts for a reconcile plan.
type PlanSummary struct {
	TotalItems     int `json:"total_items"`
	MissingStorage int `json:"missing_storage"`
	MissingDB      int `json:"missing_db"`
	Mismatches     int `json:"mismatches"`
	Extra          int `json:"extra"`
	RestoreActions int `json:"restore_actions"`
	SyncActions    int `json:"sync_actions"`
}

// ReconcileOptions controls which actions a plan carries and whether they run.
type ReconcileOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// DoRestore plans uploads and inserts for missing documents.
	DoRestore bool

	// DoSync plans overwrites of mismatched documents with the reference.
	DoSync bool

	// Confirmed must be set for ApplyPlan to write anything.
	Confirmed bool
}
