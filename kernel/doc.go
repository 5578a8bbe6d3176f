// Package kernel implements the shared execution engine every cru-go
// operation composes: the worker pool that runs lane-parallel phase
// tasks behind a barrier, the killswitch and error channel threaded
// through every worker, the reachability engine that drives discovery
// to quiescence, the PROP/CLASSIFY/REDUCE building blocks of the
// map-reduce runtime, and the reclamation engine that dispatches
// destructors without leaking under cancellation or error.
//
// Operation packages (build, fabricate, mutate, filter, compose, merge,
// dedup, stretch, mapreduce, induce, postpone, cross, split) each
// sequence these building blocks in the order their row of the
// Operation-to-phase table calls for; none of them reimplement
// scheduling, hashing, or reclamation themselves.
package kernel
