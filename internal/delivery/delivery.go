// Package delivery defines the contract every transport entry point
// (HTTP server, workers) fulfills so the process can start them uniformly.
package delivery

import "context"

// Delivery is one serving surface of the process.
type Delivery interface {
	// Serve blocks, serving requests until the process shuts down.
	Serve(ctx context.Context) error
}
