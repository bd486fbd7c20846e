// Package delivery defines the contract every transport entrypoint satisfies.
package delivery

import "context"

// Delivery is one serving surface of the application. Implementations block
// in Serve until the surface is shut down through the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
