package ports

import "context"

// ConnectivityProbe checks whether the template host can be reached at all.
type ConnectivityProbe interface {
	// Reachable never returns an error; any failure means unreachable.
	Reachable(ctx context.Context) bool
}
