// Package lifecycle holds process-wide start and shutdown settings.
package lifecycle

import "time"

// DefaultTimeout bounds fx start hooks (database ping) and graceful shutdown.
const DefaultTimeout = 10 * time.Second
