// Package selector picks one usable, never-before-used story from a feed.
//
// The content filter is a pure predicate (NSFW flag, whole-word forbidden
// list, length bounds); the selector layers the dedup store and a bounded
// retry loop on top. Exhausting the attempt budget is "no content available",
// not a pipeline failure, and is reported as services.ErrNoContent.
package selector
