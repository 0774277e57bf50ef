package cache

import (
	bcache "github.com/bool64/cache"
)

const (
	// MetricHit is a name of a counter of found entries.
	MetricHit = bcache.MetricHit

	// MetricMiss is a name of a counter of missing entries.
	MetricMiss = bcache.MetricMiss

	// MetricWrite is a name of a counter of written entries.
	MetricWrite = bcache.MetricWrite

	// MetricEvict is a name of a counter of entries removed by sweep.
	MetricEvict = bcache.MetricEvict

	// MetricItems is a name of a gauge of entries count, updated after every sweep.
	MetricItems = bcache.MetricItems

	// MetricRemove is a name of a counter of explicitly removed entries.
	MetricRemove = "cache_remove"

	// MetricSweepFailed is a name of a counter of sweeps aborted by panic.
	MetricSweepFailed = "cache_sweep_failed"
)
