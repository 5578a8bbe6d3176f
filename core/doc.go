// Package core defines the data model shared by every cru-go transformation:
// the Graph handle, Vertex and Edge records, the lane table that partitions
// vertices across worker goroutines by hash, the per-lane open-addressed
// vertex store, the per-vertex edge lists, and the connection queue used by
// the connector protocol during discovery.
//
// Vertex and edge values are opaque to the engine (interface{}); a client
// supplies Hash, Equal, and Destroy callbacks for each. The engine never
// interprets a value beyond calling those callbacks.
package core
