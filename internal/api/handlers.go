package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/modlog/modlog/internal/storage"
	"github.com/modlog/modlog/pkg/logger"
	"github.com/modlog/modlog/pkg/types"
)

const maxListLimit = 1000

// RecordList is the payload of the record listing endpoint.
type RecordList struct {
	Records []*types.LogRecord `json:"records"`
	Total   int64              `json:"total"`
	Limit   int                `json:"limit"`
	Offset  int                `json:"offset"`
}

// ArchiveList is the payload of the archive inventory endpoint.
type ArchiveList struct {
	Archives []logger.ArchiveFile `json:"archives"`
	Count    int                  `json:"count"`
}

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status string        `json:"status"`
	Uptime time.Duration `json:"uptime_ns"`
}

// handleHealth godoc
// @Summary Health check
// @Description Reports whether the record store is reachable
// @Tags Health
// @Produce json
// @Success 200 {object} Response
// @Failure 503 {object} Response
// @Router /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		NewErrorResponse("method not allowed").WriteWithStatus(w, http.StatusMethodNotAllowed)
		return
	}

	if err := s.storage.HealthCheck(r.Context()); err != nil {
		s.log.Errorf("health check failed: %v", err)
		NewErrorResponse("record store unavailable").WriteWithStatus(w, http.StatusServiceUnavailable)
		return
	}

	NewJSONResponse(HealthStatus{
		Status: "healthy",
		Uptime: time.Since(s.started),
	}).Write(w)
}

// handleRecords godoc
// @Summary List log records
// @Description Lists persisted log records, newest first, with optional level filter and message substring search
// @Tags Records
// @Produce json
// @Param level query string false "Exact level name (DEBUG, INFO, SUCCESS, WARNING, ERROR)"
// @Param q query string false "Message substring to search for"
// @Param since query string false "RFC3339 lower bound on the record timestamp"
// @Param limit query int false "Page size (max 1000)"
// @Param offset query int false "Page offset"
// @Success 200 {object} Response{data=RecordList}
// @Failure 400 {object} Response
// @Router /api/records [get]
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		NewErrorResponse("method not allowed").WriteWithStatus(w, http.StatusMethodNotAllowed)
		return
	}

	filter, errMsg := parseRecordFilter(r)
	if errMsg != "" {
		NewErrorResponse(errMsg).WriteWithStatus(w, http.StatusBadRequest)
		return
	}

	records, err := s.storage.ListRecords(r.Context(), filter)
	if err != nil {
		s.log.Errorf("failed to list records: %v", err)
		NewErrorResponse("failed to list records").Write(w)
		return
	}
	total, err := s.storage.CountRecords(r.Context(), filter)
	if err != nil {
		s.log.Errorf("failed to count records: %v", err)
		NewErrorResponse("failed to count records").Write(w)
		return
	}

	if records == nil {
		records = []*types.LogRecord{}
	}
	NewJSONResponse(RecordList{
		Records: records,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}).Write(w)
}

// handleRecord godoc
// @Summary Get one log record
// @Description Fetches a single persisted record by ID
// @Tags Records
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} Response{data=types.LogRecord}
// @Failure 404 {object} Response
// @Router /api/records/{id} [get]
func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		NewErrorResponse("method not allowed").WriteWithStatus(w, http.StatusMethodNotAllowed)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/api/records/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		NewErrorResponse("invalid record ID").WriteWithStatus(w, http.StatusBadRequest)
		return
	}

	record, err := s.storage.GetRecord(r.Context(), id)
	if err != nil {
		if _, ok := err.(*storage.RecordNotFoundError); ok {
			NewErrorResponse(err.Error()).WriteWithStatus(w, http.StatusNotFound)
			return
		}
		s.log.Errorf("failed to get record %d: %v", id, err)
		NewErrorResponse("failed to get record").Write(w)
		return
	}
	NewJSONResponse(record).Write(w)
}

// handleStats godoc
// @Summary Record store statistics
// @Description Returns record counts per level and the covered time range
// @Tags Records
// @Produce json
// @Success 200 {object} Response{data=storage.Stats}
// @Router /api/records/stats [get]
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		NewErrorResponse("method not allowed").WriteWithStatus(w, http.StatusMethodNotAllowed)
		return
	}

	stats, err := s.storage.GetStats(r.Context())
	if err != nil {
		s.log.Errorf("failed to read stats: %v", err)
		NewErrorResponse("failed to read stats").Write(w)
		return
	}
	NewJSONResponse(stats).Write(w)
}

// handleArchives godoc
// @Summary List log archives
// @Description Lists the gzip archives retained for the configured log file, newest first
// @Tags Archives
// @Produce json
// @Success 200 {object} Response{data=ArchiveList}
// @Router /api/archives [get]
func (s *Server) handleArchives(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		NewErrorResponse("method not allowed").WriteWithStatus(w, http.StatusMethodNotAllowed)
		return
	}

	archives := []logger.ArchiveFile{}
	if s.archiver != nil && s.baseName != "" {
		listed, err := s.archiver.List(s.baseName)
		if err != nil {
			s.log.Errorf("failed to list archives: %v", err)
			NewErrorResponse("failed to list archives").Write(w)
			return
		}
		archives = listed
	}

	NewJSONResponse(ArchiveList{Archives: archives, Count: len(archives)}).Write(w)
}

// handleVersion godoc
// @Summary Version information
// @Tags System
// @Produce json
// @Success 200 {object} Response{data=BuildInfo}
// @Router /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		NewErrorResponse("method not allowed").WriteWithStatus(w, http.StatusMethodNotAllowed)
		return
	}
	NewJSONResponse(GetBuildInfo()).Write(w)
}

// parseRecordFilter reads the listing query parameters. It returns a non-empty
// error message for values the caller got wrong.
func parseRecordFilter(r *http.Request) (types.RecordFilter, string) {
	q := r.URL.Query()
	filter := types.RecordFilter{
		Search: q.Get("q"),
		Limit:  100,
	}

	if level := q.Get("level"); level != "" {
		parsed, err := logger.ParseLevel(level)
		if err != nil {
			return filter, "invalid level: " + level
		}
		filter.Level = parsed.String()
	}

	if since := q.Get("since"); since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			return filter, "invalid since timestamp, want RFC3339"
		}
		filter.Since = t
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > maxListLimit {
			return filter, "invalid limit, want 1..1000"
		}
		filter.Limit = limit
	}

	if offsetStr := q.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return filter, "invalid offset"
		}
		filter.Offset = offset
	}

	return filter, ""
}
