// Package lifecycle holds shared constants for fx lifecycle hooks.
package lifecycle

import "time"

// DefaultTimeout bounds start and stop hooks that touch the network.
const DefaultTimeout = 10 * time.Second
