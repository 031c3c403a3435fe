// Package reportparse recovers structured records from iClassPro HTML
// report exports: roll sheets, rosters, instructor retention tables and
// the flat tabular reports (aged accounts, drop lists, new enrollments,
// ACNE lead lists).
//
// # Architecture
//
// The package is organized around one Parser with an extractor per
// report family:
//
//  1. DetectMetadata: classifies a document and pulls location and
//     date-range signals out of headers, visible text and embedded
//     report scripts
//  2. ParseRollSheet: per-class scheduled occurrences
//  3. ParseRosterEntries: per-swimmer attendance entries
//  4. ExtractInstructorRetention and the tabular extractors: typed rows
//     located by header-alias matching
//
// ResolveLocations matches detected location candidates against the
// caller's known-locations registry.
//
// # Error Handling
//
// The vendor's markup is loosely structured and inconsistent, so the
// extractors never fail on document variability. A missing signal
// becomes a warning code or a nil field, a row that cannot yield a
// minimally valid record is dropped, and an unparseable number or date
// becomes nil. The only error any extractor returns is ErrEmptyDocument
// for an empty input string, which is caller misuse rather than a bad
// document.
//
// # Concurrency
//
// Parsing is pure computation over the input string. A single Parser
// may be used from any number of goroutines.
package reportparse
