package output

import "errors"

// Repository errors. Adapters translate their driver errors into these so the
// application layer never sees a storage-specific type.
var (
	ErrNotFound   = errors.New("store: not found")
	ErrDuplicate  = errors.New("store: duplicate key")
	ErrForeignKey = errors.New("store: dangling reference")
)
