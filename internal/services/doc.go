// Package services defines shared utilities consumed by the pipeline stages
// and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run, stage, and story identifiers for
//     logging and diagnostics.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent exit classification (fatal vs no-content).
//
// Use these helpers when wiring new stage logic so operational behaviour
// stays uniform across the pipeline.
package services
