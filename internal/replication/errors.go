package replication

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Store.FindByIdentity when no row matches.
var ErrNotFound = errors.New("record not found")

// ConnectivityError means one of the two stores could not be reached at the
// start of a pass. It is fatal to the whole pass; nothing is attempted
// half-connected.
type ConnectivityError struct {
	Store string // "local" or "central"
	Err   error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("%s store unreachable: %v", e.Store, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// MappingError is a configuration error: a declared foreign-key column is
// missing from a record. Silently dropping the key would orphan the record in
// the target store, so the whole type's batch aborts instead.
type MappingError struct {
	Type  string
	Field string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("mapping %s: required foreign key column %q missing from record", e.Type, e.Field)
}

// ConflictError means the target already holds a record with the same
// identity but an incompatible shape. Isolated to the one record; a human
// has to intervene, so it is surfaced in the pass summary.
type ConflictError struct {
	Type     string
	Identity any
	Field    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("upsert conflict on %s %v: field %q has incompatible type in target", e.Type, e.Identity, e.Field)
}

// PartialCascadeError reports identifiers that vanished between the primary
// writes and the cascade (e.g. a race with a concurrent delete). The cascade
// continues for the rest.
type PartialCascadeError struct {
	Type    string
	Missing int
}

func (e *PartialCascadeError) Error() string {
	return fmt.Sprintf("cascade %s: %d touched record(s) no longer exist", e.Type, e.Missing)
}
