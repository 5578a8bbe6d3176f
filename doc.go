// Package cru is your toolkit for building, transforming, and
// analyzing large directed labeled graphs in parallel on a single
// multi-core machine.
//
// 🚀 What is cru?
//
//	A lane-partitioned graph engine that brings together:
//
//	  • A worker pool and phase scheduler driving every transformation
//	    through the same discover/classify/map/reduce/rewire/reclaim
//	    kernel
//	  • A sharded vertex store, one shard per lane, so unrelated
//	    vertices never contend on the same lock
//	  • Thirteen whole-graph operations (build, fabricate, mutate,
//	    compose, merge, filter, dedup, stretch, map-reduce, induce,
//	    postpone, cross, and split), each its own package with its own
//	    Plan/Option surface
//
// ✨ Why choose cru?
//
//   - Lane-local by default: a vertex's lifetime lives on one lane's
//     store, and cross-lane traffic is the exception, not the rule
//   - Cooperative cancellation: every phase barrier checks the
//     invocation's Killswitch before starting the next lane's work
//   - Explicit ownership: every callback signature says who destroys
//     what, so client-allocated vertex and edge values never leak or
//     double-free
//
// Under the hood, everything is organized under:
//
//	core/    - Graph, VertexRecord, EdgeList, the lane table and vertex store
//	kernel/  - the worker pool, phase state machine, and shared phase primitives
//	cruerr/  - the error taxonomy and process-wide error channel
//	config/  - lane count, queue depth, and allocation-limit configuration
//	metrics/ - Prometheus instrumentation for phase duration and lane load
//
// and one package per operation: build, fabricate, mutate, compose,
// merge, filter, dedup, stretch, mapreduce, induce, postpone, cross,
// split.
package cru
