// Package ingest imports plain-text log files and gzip archives written by
// pkg/logger into the persisted record store that backs the browsing API.
package ingest

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/modlog/modlog/internal/storage"
	"github.com/modlog/modlog/pkg/logger"
	"github.com/modlog/modlog/pkg/types"
)

// linePattern matches the writer's record format:
// [<timestamp>] <LEVEL padded to 8> <name>: <message>
var linePattern = regexp.MustCompile(`^\[([^\]]+)\]\s+(\S+)\s+(.+?): (.*)$`)

const batchSize = 500

// Result summarizes one ingestion run.
type Result struct {
	Source   string `json:"source"`
	Imported int64  `json:"imported"`
	Skipped  int64  `json:"skipped"`
}

// Ingestor parses record lines and saves them in batches.
type Ingestor struct {
	store  storage.Storage
	layout string
	log    *logger.Logger
}

// New creates an ingestor. layout is the timestamp layout records were
// written with; empty means the logger default.
func New(store storage.Storage, layout string, log *logger.Logger) *Ingestor {
	if layout == "" {
		layout = logger.DefaultTimestampLayout
	}
	return &Ingestor{store: store, layout: layout, log: log}
}

// IngestFile imports one live log file or .gz archive. Lines that do not
// parse as records are counted as skipped, never fatal: a log file may hold
// partial lines after a crash.
func (i *Ingestor) IngestFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read archive %s: %w", path, err)
		}
		defer gz.Close()
		reader = gz
	}

	result, err := i.ingest(ctx, reader, path)
	if err != nil {
		return nil, err
	}

	if i.log != nil {
		i.log.Infof("ingested %d records from %s (%d lines skipped)",
			result.Imported, path, result.Skipped)
	}
	return result, nil
}

func (i *Ingestor) ingest(ctx context.Context, reader io.Reader, source string) (*Result, error) {
	result := &Result{Source: source}
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	batch := make([]*types.LogRecord, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		saved, err := i.store.SaveRecords(ctx, batch)
		if err != nil {
			return fmt.Errorf("failed to save batch from %s: %w", source, err)
		}
		result.Imported += saved
		batch = batch[:0]
		return nil
	}

	for scanner.Scan() {
		record, ok := i.parseLine(scanner.Text(), source)
		if !ok {
			result.Skipped++
			continue
		}
		batch = append(batch, record)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return result, nil
}

// parseLine converts one record line into a LogRecord. Lines with an
// unrecognized level or timestamp are rejected.
func (i *Ingestor) parseLine(line, source string) (*types.LogRecord, bool) {
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}

	timestamp, err := time.ParseInLocation(i.layout, m[1], time.Local)
	if err != nil {
		return nil, false
	}
	level, err := logger.ParseLevel(m[2])
	if err != nil {
		return nil, false
	}

	return &types.LogRecord{
		Timestamp: timestamp,
		Level:     level.String(),
		Logger:    strings.TrimSpace(m[3]),
		Message:   m[4],
		Source:    source,
	}, true
}
