// Package files handles the on-disk lifecycle of uploaded report
// documents: discovering HTML exports under the uploads directory,
// loading them for parsing, and archiving them once processed.
//
// Discovery is deliberately shallow. Vendor exports arrive as flat
// batches of .html files, so nothing here recurses into
// subdirectories; the archive subdirectory in particular must never be
// rediscovered as fresh input.
package files
