package storage

import "taskmanager/pkg/serrors"

// ErrRecordNotFound is returned by update operations when the record to
// update does not exist.
var ErrRecordNotFound = serrors.With(serrors.ErrNotFound, "record not found") //nolint: gochecknoglobals
