package dedupe

// Package dedupe provides the shared singleflight group used to deduplicate
// concurrent encounter lookups. Using a centralized singleflight.Group
// ensures only one database read runs for a given encounter code while other
// callers wait for the result.

import "golang.org/x/sync/singleflight"

// EncounterGroup deduplicates encounter record lookups keyed by the
// encounter code.
var EncounterGroup singleflight.Group
