package transfer

import "time"

// Operation selects what the engine does with the source. Values outside the
// two constants are accepted at the boundary and rejected during type
// dispatch, once the engine knows whether it is looking at a file or a
// directory.
type Operation string

const (
	OpCopy Operation = "copy"
	OpMove Operation = "move"
)

// Kind classifies a transfer failure. OK is the zero value for successful
// outcomes.
type Kind int

const (
	OK Kind = iota
	SourceNotFound
	UnsafeDestination
	SelfNesting
	DestinationCreateFailed
	UnsupportedSourceType
	InvalidOperation
	TransferFailed
)

func (k Kind) String() string {
	switch k {
	case OK:
		return "ok"
	case SourceNotFound:
		return "source_not_found"
	case UnsafeDestination:
		return "unsafe_destination"
	case SelfNesting:
		return "self_nesting"
	case DestinationCreateFailed:
		return "destination_create_failed"
	case UnsupportedSourceType:
		return "unsupported_source_type"
	case InvalidOperation:
		return "invalid_operation"
	case TransferFailed:
		return "transfer_failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of a single transfer. The message names the exact
// paths and operation involved and, for OS-level failures, carries the
// underlying error text verbatim.
type Outcome struct {
	Message string
	Kind    Kind
	Success bool
}

// CollisionPolicy decides what happens when a directory copy targets a
// subdirectory that already exists under the destination.
type CollisionPolicy string

const (
	// PolicyMerge copies into the existing subdirectory, overwriting
	// same-named files and leaving extra destination files untouched.
	// Re-running the same copy is idempotent.
	PolicyMerge CollisionPolicy = "merge"
	// PolicyTimestamp copies into a fresh "<name>_<YYYYMMDD_HHMMSS>"
	// subdirectory instead, preserving the previous copy.
	PolicyTimestamp CollisionPolicy = "timestamp"
)

// Record is the journal entry written for each outcome.
type Record struct {
	Time        time.Time
	Source      string
	Destination string
	Operation   Operation
	Message     string
	Success     bool
}
