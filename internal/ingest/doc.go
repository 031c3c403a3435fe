// Package ingest orchestrates the pre-ingestion flow for uploaded
// report documents: preflight (classify the document, resolve its
// location against the known-locations registry, fingerprint it for
// dedupe) and the extraction pipeline that routes a classified
// document to the right extractor.
//
// Persistence, human resolution of ambiguous locations and fallback
// dates stay with the caller; this package never writes anything.
package ingest
