// Package sim provides the day-stepped replication simulator for multi-echelon
// inventory networks.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - state.go: FacilityInventoryState, PendingOrder and PendingReplenishment
//   - simulator.go: Replication construction and the per-day step order
//   - demand.go, production.go, replenishment.go: the phases of a day
//
// # Day order
//
// Each simulated day runs, in this order: demand arrival, order aging, FIFO
// fulfillment, holding cost, replenishment arrivals, production, replenishment
// ordering, end-of-day bookkeeping. Later phases see the inventory changes of
// earlier ones, so the order is part of the model.
//
// # Architecture
//
// The sim package consumes resolved inputs from sub-packages:
//   - sim/network/: typed input records, defaults and the read-only Index
//   - sim/distribution/: distribution spec parsing and sampling
//   - sim/scenario/: (s,S) scenario generation from input factors
//   - sim/trace/: per-replication log records
//   - sim/sweep/: scenario × replication orchestration and statistics
//
// A Replication owns every piece of mutable state it touches, including its
// PartitionedRNG, so replications may run on separate goroutines without locks.
package sim
