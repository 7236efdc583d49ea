package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aheien/tbvec/pkg/journal"
	"github.com/aheien/tbvec/pkg/stream"
)

// Server holds the API server state
type Server struct {
	recorder Recorder
	config   ServerConfig
	metrics  *Metrics
	logger   zerolog.Logger
}

// NewServer creates a new API server. A nil recorder disables run
// journaling; the runs endpoints then answer 404.
func NewServer(recorder Recorder, config ServerConfig, metrics *Metrics, logger zerolog.Logger) *Server {
	return &Server{
		recorder: recorder,
		config:   config,
		metrics:  metrics,
		logger:   logger,
	}
}

// handleHealth reports service liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleEncode frames submitted text as vector lines, one message per line
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req EncodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.RecordPipelineOperation("encode", false, time.Since(start))
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	writer := stream.NewLineWriter(&buf, stream.WriterConfig{})
	records, err := writer.EncodeFrom(strings.NewReader(req.Text))
	if err != nil {
		s.metrics.RecordPipelineOperation("encode", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to encode text: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordPipelineOperation("encode", true, time.Since(start))
	s.metrics.AddRecordsProcessed("encode", records)
	sendSuccess(w, EncodeResponse{
		Records: records,
		Vectors: buf.String(),
	})
}

// handleDecode reconstructs messages from submitted vector lines
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.RecordPipelineOperation("decode", false, time.Since(start))
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	reader, messages, err := s.reconstruct(req.Vectors)
	if err != nil {
		s.metrics.RecordPipelineOperation("decode", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to decode vectors: %v", err), http.StatusBadRequest)
		return
	}

	response := DecodeResponse{
		Lines:    reader.Line(),
		Messages: messages,
	}
	response.RunID = s.journalRun("decode", reader.Line(), toEntries(messages))

	s.metrics.RecordPipelineOperation("decode", true, time.Since(start))
	s.metrics.AddRecordsProcessed("decode", int64(reader.Line()))
	s.metrics.AddMessagesReconstructed(len(messages))
	sendSuccess(w, response)
}

// handleHash reconstructs messages and reports their checksums only
func (s *Server) handleHash(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.RecordPipelineOperation("hash", false, time.Since(start))
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	reader, messages, err := s.reconstruct(req.Vectors)
	if err != nil {
		s.metrics.RecordPipelineOperation("hash", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to hash vectors: %v", err), http.StatusBadRequest)
		return
	}

	results := make([]HashResult, 0, len(messages))
	entries := make([]journal.Entry, 0, len(messages))
	for _, msg := range messages {
		results = append(results, HashResult{
			Seq:         msg.Seq,
			Checksum:    msg.Checksum,
			ChecksumHex: msg.ChecksumHex,
		})
		entries = append(entries, journal.Entry{Checksum: msg.Checksum})
	}

	response := HashResponse{
		Lines:    reader.Line(),
		Messages: results,
	}
	response.RunID = s.journalRun("hash", reader.Line(), entries)

	s.metrics.RecordPipelineOperation("hash", true, time.Since(start))
	s.metrics.AddRecordsProcessed("hash", int64(reader.Line()))
	s.metrics.AddMessagesReconstructed(len(messages))
	sendSuccess(w, response)
}

// handleListRuns lists journaled runs
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.recorder == nil {
		sendError(w, "Run journal is not enabled", http.StatusNotFound)
		return
	}

	runs, err := s.recorder.Runs()
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to list runs: %v", err), http.StatusInternalServerError)
		return
	}

	sendSuccess(w, map[string]interface{}{"runs": runs})
}

// handleGetRun returns one journaled run with its messages
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.recorder == nil {
		sendError(w, "Run journal is not enabled", http.StatusNotFound)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		sendError(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	run, err := s.recorder.Run(id)
	if err != nil {
		if errors.Is(err, journal.ErrRunNotFound) {
			sendError(w, "Run not found", http.StatusNotFound)
		} else {
			sendError(w, fmt.Sprintf("Failed to get run: %v", err), http.StatusInternalServerError)
		}
		return
	}

	entries, err := s.recorder.Entries(id)
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to get run messages: %v", err), http.StatusInternalServerError)
		return
	}

	messages := make([]MessageResult, 0, len(entries))
	for _, entry := range entries {
		messages = append(messages, MessageResult{
			Seq:         entry.Seq,
			Checksum:    entry.Checksum,
			ChecksumHex: checksumHex(entry.Checksum),
			Body:        entry.Body,
			Text:        string(entry.Body),
		})
	}

	sendSuccess(w, RunDetailResponse{Run: run, Messages: messages})
}

// reconstruct runs the assembler over vector text and collects the results
func (s *Server) reconstruct(vectors string) (*stream.LineReader, []MessageResult, error) {
	reader := stream.NewLineReader(strings.NewReader(vectors), stream.ReaderConfig{
		CommentPrefix: s.config.CommentPrefix,
	})
	asm := stream.NewAssembler(reader)

	var messages []MessageResult
	for asm.Next() {
		msg := asm.Message()
		messages = append(messages, MessageResult{
			Seq:         len(messages),
			Checksum:    msg.Checksum,
			ChecksumHex: checksumHex(msg.Checksum),
			Body:        msg.Body,
			Text:        msg.Text(),
		})
	}
	if err := asm.Err(); err != nil {
		return nil, nil, err
	}

	return reader, messages, nil
}

// journalRun records a run if journaling is enabled, returning the run ID.
// Journal failures are logged but do not fail the request.
func (s *Server) journalRun(command string, lines int, entries []journal.Entry) string {
	if s.recorder == nil {
		return ""
	}

	runID, err := s.recorder.Append(journal.Run{
		Command: command,
		Source:  "api",
		Lines:   lines,
	}, entries)
	if err != nil {
		s.logger.Error().Err(err).Str("command", command).Msg("failed to journal run")
		return ""
	}
	return runID
}

func toEntries(messages []MessageResult) []journal.Entry {
	entries := make([]journal.Entry, 0, len(messages))
	for _, msg := range messages {
		entries = append(entries, journal.Entry{
			Checksum: msg.Checksum,
			Body:     msg.Body,
		})
	}
	return entries
}

func checksumHex(sum uint32) string {
	return fmt.Sprintf("32'h%08x", sum)
}

// startMetricsUpdater periodically refreshes journal metrics
func (s *Server) startMetricsUpdater() {
	if s.recorder == nil {
		return
	}

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		runs, err := s.recorder.Runs()
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to refresh journal metrics")
			continue
		}
		s.metrics.UpdateJournalRuns(len(runs))
	}
}
