package ingest

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"swimparse/internal/reportparse"
	"swimparse/pkg/contracts/domain"
)

// Result is everything one document produced: its manifest plus the
// typed rows of whichever extractor its report type routed to. Exactly
// one row slice is populated per document; Unsupported marks documents
// no extractor claims.
type Result struct {
	Manifest *UploadManifest `json:"manifest"`

	Classes       []domain.ParsedClass            `json:"classes,omitempty"`
	RosterEntries []domain.ParsedRosterEntry      `json:"roster_entries,omitempty"`
	Retention     []domain.InstructorRetentionRow `json:"retention,omitempty"`
	AgedAccounts  []domain.AgedAccountsRow        `json:"aged_accounts,omitempty"`
	DropList      []domain.DropListRow            `json:"drop_list,omitempty"`
	Enrollments   []domain.EnrollmentRow          `json:"enrollments,omitempty"`
	AcneLeads     []domain.AcneLeadRow            `json:"acne_leads,omitempty"`

	Warnings    []string `json:"warnings,omitempty"`
	Unsupported bool     `json:"unsupported,omitempty"`
}

// Pipeline routes classified documents to extractors. One Pipeline is
// safe for concurrent use; it holds only stateless collaborators.
type Pipeline struct {
	parser    *reportparse.Parser
	preflight *Preflight
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewPipeline builds a Pipeline over the given known-locations
// registry.
func NewPipeline(known []domain.Location, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		parser:    reportparse.New(logger),
		preflight: NewPreflight(known, logger),
		validate:  validator.New(),
		logger:    logger,
	}
}

// Run preflights one document and extracts its rows. Unknown report
// types come back with Unsupported set and only the manifest populated;
// the caller distinguishes that from "supported but nothing usable
// detected", which appears as empty rows plus warnings.
func (p *Pipeline) Run(html string) (*Result, error) {
	manifest, err := p.preflight.Check(html)
	if err != nil {
		return nil, err
	}
	res := &Result{Manifest: manifest}
	res.Warnings = append(res.Warnings, manifest.Metadata.Warnings...)

	switch manifest.ReportType {
	case domain.ReportTypeRollSheet:
		classes, err := p.parser.ParseRollSheet(html)
		if err != nil {
			return nil, err
		}
		res.Classes = validRows(p, classes)
	case domain.ReportTypeRoster, domain.ReportTypeRosterHistory:
		entries, err := p.parser.ParseRosterEntries(html)
		if err != nil {
			return nil, err
		}
		res.RosterEntries = validRows(p, entries)
	case domain.ReportTypeRetention:
		rows, err := p.parser.ExtractInstructorRetention(html)
		if err != nil {
			return nil, err
		}
		res.Retention = validRows(p, rows)
	case domain.ReportTypeAgedAccounts:
		rows, warnings, err := p.parser.ExtractAgedAccounts(html)
		if err != nil {
			return nil, err
		}
		res.AgedAccounts = rows
		res.Warnings = append(res.Warnings, warnings...)
	case domain.ReportTypeDropList:
		rows, warnings, err := p.parser.ExtractDropList(html)
		if err != nil {
			return nil, err
		}
		res.DropList = validRows(p, rows)
		res.Warnings = append(res.Warnings, warnings...)
	case domain.ReportTypeEnrollments:
		rows, warnings, err := p.parser.ExtractEnrollments(html)
		if err != nil {
			return nil, err
		}
		res.Enrollments = validRows(p, rows)
		res.Warnings = append(res.Warnings, warnings...)
	case domain.ReportTypeAcneLeads:
		rows, warnings, err := p.parser.ExtractAcneLeads(html)
		if err != nil {
			return nil, err
		}
		res.AcneLeads = validRows(p, rows)
		res.Warnings = append(res.Warnings, warnings...)
	default:
		res.Unsupported = true
		p.logger.Warn("unsupported report type",
			slog.String("upload_id", manifest.UploadID),
			slog.String("report_type", string(manifest.ReportType)))
	}
	return res, nil
}

// RunBatch parses many documents concurrently, keyed however the
// caller keys them (file name, upload ID). Extraction is pure
// computation, so concurrency is bounded by CPU count.
func (p *Pipeline) RunBatch(ctx context.Context, docs map[string]string) (map[string]*Result, error) {
	results := make(map[string]*Result, len(docs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for key, html := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := p.Run(html)
			if err != nil {
				return err
			}
			mu.Lock()
			results[key] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// validRows filters extracted rows through struct validation, dropping
// and logging anything that violates the contract tags. Extractors
// already gate on required fields, so drops here are unexpected.
func validRows[T any](p *Pipeline, rows []T) []T {
	out := rows[:0]
	for _, row := range rows {
		if err := p.validate.Struct(row); err != nil {
			p.logger.Warn("dropping invalid row", slog.String("error", err.Error()))
			continue
		}
		out = append(out, row)
	}
	return out
}
