// Package feed fetches candidate stories from Reddit's public JSON listing.
//
// The Source interface hands out zero-or-one story per call so the selector
// can drive its retry loop without caring where candidates come from; tests
// substitute an in-memory source.
package feed
