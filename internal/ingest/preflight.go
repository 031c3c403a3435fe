package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"swimparse/internal/reportparse"
	"swimparse/pkg/contracts/domain"
)

// UploadManifest records the provenance of one preflighted document:
// a fresh upload ID, the content fingerprint callers dedupe repeated
// uploads on, and the detection outcome that decides routing.
type UploadManifest struct {
	UploadID    string                 `json:"upload_id"`
	ContentHash string                 `json:"content_hash"`
	ReceivedAt  time.Time              `json:"received_at"`
	ReportType  domain.ReportType      `json:"report_type"`
	Metadata    *domain.ReportMetadata `json:"metadata"`
}

// Ambiguous reports whether the document failed to resolve to exactly
// one known location. Ambiguous documents need a human decision before
// ingestion proceeds.
func (m *UploadManifest) Ambiguous() bool {
	return m.Metadata == nil || len(m.Metadata.DetectedLocationIDs) != 1
}

// Preflight classifies uploads before any data is committed.
type Preflight struct {
	parser *reportparse.Parser
	known  []domain.Location
	logger *slog.Logger
}

// NewPreflight creates a Preflight against the given known-locations
// registry. A nil logger falls back to slog.Default().
func NewPreflight(known []domain.Location, logger *slog.Logger) *Preflight {
	if logger == nil {
		logger = slog.Default()
	}
	return &Preflight{
		parser: reportparse.New(logger),
		known:  known,
		logger: logger,
	}
}

// Check runs detection and location resolution on one document and
// returns its manifest. The only error is reportparse.ErrEmptyDocument
// for empty input; every detection gap surfaces as metadata warnings.
func (p *Preflight) Check(html string) (*UploadManifest, error) {
	meta, err := p.parser.DetectMetadata(html)
	if err != nil {
		return nil, err
	}
	meta.DetectedLocationIDs = reportparse.ResolveLocations(meta.LocationCandidates, p.known)

	sum := sha256.Sum256([]byte(html))
	manifest := &UploadManifest{
		UploadID:    uuid.NewString(),
		ContentHash: hex.EncodeToString(sum[:]),
		ReceivedAt:  time.Now().UTC(),
		ReportType:  meta.ReportType,
		Metadata:    meta,
	}

	p.logger.Info("document preflighted",
		slog.String("upload_id", manifest.UploadID),
		slog.String("report_type", string(manifest.ReportType)),
		slog.Int("matched_locations", len(meta.DetectedLocationIDs)),
		slog.Bool("ambiguous", manifest.Ambiguous()))
	return manifest, nil
}
