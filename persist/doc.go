// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package persist writes the election dataset to disk with rotating backups.

# Layout

For PathBase "elections" and BackupDir "bku":

	elections.json          primary file (latest schema, pretty-printed)
	bku/history/            every persist, keep newest 20
	bku/hourly/             one per hour bucket, keep newest 24
	bku/daily/              one per day bucket, keep newest 30
	bku/monthly/            one per 28-day bucket, keep all

Bucket keys are floor(unixTime / bucketSeconds), so repeated persists within
a bucket overwrite one file rather than multiplying entries. History files
are named by raw timestamp and snapshot the primary as it was *before* the
write, which is what makes a corrupting write recoverable.

# Failure Semantics

Persist is called synchronously after every successful mutation, behind the
store's write lock. A failed persist surfaces to the caller as a failed
operation but the in-memory mutation stays; the next successful persist
carries it. On-disk state therefore lags, never forks.
*/
package persist
