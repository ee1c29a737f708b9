// Package delivery defines the contract every transport entry point
// (HTTP server, future workers) fulfils so main can start them uniformly.
package delivery

import "context"

// Delivery is a long-running entry point of the application.
type Delivery interface {
	// Serve blocks until the delivery stops or fails.
	Serve(ctx context.Context) error
}
