package dedupe

// Package dedupe provides shared singleflight groups. A group guarantees that
// only one job runs for a given key while other callers wait for its result.

import "golang.org/x/sync/singleflight"

// DrawGroup collapses concurrent draw requests for the same match code into
// a single resolved round.
var DrawGroup singleflight.Group
