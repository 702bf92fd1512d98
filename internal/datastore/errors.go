package datastore

import "errors"

// ErrCorruptSnapshotFile indicates the snapshot file exists but cannot be
// interpreted. A truncated or empty state file must be treated as a store
// failure, never as a zero-unit snapshot.
var ErrCorruptSnapshotFile = errors.New("snapshot file is corrupt or empty")
