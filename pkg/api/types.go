package api

import (
	"github.com/aheien/tbvec/pkg/journal"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// EncodeRequest carries source text to be framed as vector lines
type EncodeRequest struct {
	Text string `json:"text"`
}

// EncodeResponse carries the rendered vector lines
type EncodeResponse struct {
	Records int64  `json:"records"`
	Vectors string `json:"vectors"`
}

// DecodeRequest carries vector lines to be reconstructed
type DecodeRequest struct {
	Vectors string `json:"vectors"`
}

// MessageResult is one reconstructed message. Body is the exact byte
// sequence (base64 in JSON); Text is a best-effort string rendering.
type MessageResult struct {
	Seq         int    `json:"seq"`
	Checksum    uint32 `json:"checksum"`
	ChecksumHex string `json:"checksum_hex"`
	Body        []byte `json:"body"`
	Text        string `json:"text"`
}

// DecodeResponse carries reconstructed messages with their bodies
type DecodeResponse struct {
	Lines    int             `json:"lines"`
	Messages []MessageResult `json:"messages"`
	RunID    string          `json:"run_id,omitempty"`
}

// HashResult is the checksum of one reconstructed message
type HashResult struct {
	Seq         int    `json:"seq"`
	Checksum    uint32 `json:"checksum"`
	ChecksumHex string `json:"checksum_hex"`
}

// HashResponse carries message checksums without bodies
type HashResponse struct {
	Lines    int          `json:"lines"`
	Messages []HashResult `json:"messages"`
	RunID    string       `json:"run_id,omitempty"`
}

// RunDetailResponse pairs a journaled run with its messages
type RunDetailResponse struct {
	Run      journal.Run     `json:"run"`
	Messages []MessageResult `json:"messages"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port          int
	Bind          string
	APIKey        string
	CommentPrefix string // Comment prefix applied to submitted vector text
}

// Recorder persists reconstruction runs. *journal.Journal satisfies it; a
// nil Recorder disables journaling.
type Recorder interface {
	Append(run journal.Run, entries []journal.Entry) (string, error)
	Run(id string) (journal.Run, error)
	Runs() ([]journal.Run, error)
	Entries(runID string) ([]journal.Entry, error)
}
