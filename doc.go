// Package cache provides an in-memory map with bounded-staleness expiration.
//
// Every written entry stays readable for at least Expire and is removed no later than
// Expire + Bias after its last write. Bias is also the interval of the background sweep,
// so it trades expiration accuracy for sweep overhead.
//
// Features:
//
//  - Single mutex per map, reads never observe a half-evicted entry.
//  - Write-ordered index makes each sweep cost proportional to the number of expired entries.
//  - Re-writing a key restarts its lifetime.
//  - Batch updates are applied atomically.
//  - Allows logging, stats collection.
//  - Deterministic shutdown with Close.
//  - Sharded flavour for string keys to reduce lock contention.
package cache
