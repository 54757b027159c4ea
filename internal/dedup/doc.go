// Package dedup persists the set of story identifiers that have already been
// turned into videos, so repeated runs never narrate the same story twice.
//
// The store is append-only within the scope of this design and survives
// process restarts. A corrupt or missing database is treated as empty: the
// damaged file is quarantined and the run proceeds with no history. Marking a
// story used is committed before synthesis starts, trading a possibly wasted
// story on crash for a hard no-duplicates guarantee.
package dedup
