package assetbridge

import "errors"

// Sentinel errors for library operations.
var (
	// ErrUnknownDialect indicates a file name whose extension maps to
	// neither the stylesheet nor the script dialect.
	ErrUnknownDialect = errors.New("unknown dialect")
)
