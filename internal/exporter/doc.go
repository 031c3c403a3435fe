// Package exporter writes parsed report rows out for operations staff:
// one CSV per row type, or a single xlsx workbook with one sheet per
// populated result kind.
package exporter
