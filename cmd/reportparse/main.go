package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"swimparse/internal/config"
	"swimparse/internal/exporter"
	"swimparse/internal/files"
	"swimparse/internal/infrastructure"
	"swimparse/internal/ingest"
	"swimparse/internal/validation"
)

func main() {
	in := flag.String("in", "", "input HTML report file or directory, resolved against the uploads dir unless absolute (defaults to the uploads dir itself)")
	out := flag.String("out", "", "output directory (defaults to the configured reports dir)")
	format := flag.String("format", "csv", "output format: csv or xlsx")
	archive := flag.Bool("archive", false, "move processed uploads into an archive subdirectory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := infrastructure.InitializeLogger(cfg.Logging)

	if *in == "" {
		*in = "."
	}
	if *out == "" {
		*out = cfg.Paths.ReportsDir
	}
	if err := cfg.EnsureDirs(); err != nil {
		logger.Error("Failed to prepare data directories", "error", err)
		os.Exit(1)
	}

	known, err := config.LoadLocations(cfg.Locations.File)
	if err != nil {
		logger.Error("Failed to load known locations", "error", err)
		os.Exit(1)
	}
	if len(known) == 0 {
		logger.Warn("No known locations configured; every document will resolve as ambiguous",
			slog.String("locations_file", cfg.Locations.File))
	}

	docs, err := files.NewDiscovery(cfg.Paths.UploadsDir).FindReports(*in)
	if err != nil {
		logger.Error("Failed to read input", "error", err, slog.String("in", *in))
		os.Exit(1)
	}
	validator := validation.NewFileValidator(logger)
	valid := docs[:0]
	for _, doc := range docs {
		if err := validator.ValidateReportFile(doc.Path); err != nil {
			logger.Warn("Skipping invalid report file", "error", err)
			continue
		}
		valid = append(valid, doc)
	}
	if len(valid) == 0 {
		logger.Error("No HTML documents found", slog.String("in", *in))
		os.Exit(1)
	}

	contents, err := files.LoadDocuments(valid)
	if err != nil {
		logger.Error("Failed to load documents", "error", err)
		os.Exit(1)
	}
	logger.Info("Parsing documents", slog.Int("count", len(contents)))

	pipeline := ingest.NewPipeline(known, logger)
	results, err := pipeline.RunBatch(context.Background(), contents)
	if err != nil {
		logger.Error("Parsing failed", "error", err)
		os.Exit(1)
	}

	keys := make([]string, 0, len(results))
	for k := range results {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	csvWriter := exporter.NewCSVWriter(*out, logger)
	xlsxWriter := exporter.NewWorkbookWriter(logger)
	for _, key := range keys {
		res := results[key]
		if res.Unsupported {
			logger.Warn("Skipping unsupported document",
				slog.String("document", key),
				slog.String("upload_id", res.Manifest.UploadID))
			continue
		}
		if res.Manifest.Ambiguous() {
			logger.Warn("Document location is ambiguous; review before ingesting",
				slog.String("document", key),
				slog.Int("matched_locations", len(res.Manifest.Metadata.DetectedLocationIDs)))
		}
		switch *format {
		case "xlsx":
			path := filepath.Join(*out, key+".xlsx")
			if err := xlsxWriter.Write(path, res); err != nil {
				logger.Error("Export failed", "error", err, slog.String("document", key))
				os.Exit(1)
			}
		default:
			if _, err := csvWriter.WriteResult(key, res); err != nil {
				logger.Error("Export failed", "error", err, slog.String("document", key))
				os.Exit(1)
			}
		}
	}

	if *archive {
		archiver := files.NewArchiver(filepath.Join(cfg.Paths.UploadsDir, "archive"), logger)
		for _, doc := range valid {
			if res, ok := results[doc.Key]; !ok || res.Unsupported {
				continue
			}
			if err := archiver.Archive(doc); err != nil {
				logger.Error("Archive failed", "error", err, slog.String("document", doc.Key))
				os.Exit(1)
			}
		}
	}
	logger.Info("Done", slog.Int("documents", len(results)))
}
