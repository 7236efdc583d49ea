// Package journal persists reconstruction runs in an embedded pebble store.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// ErrRunNotFound is returned when a run ID has no journal entry
var ErrRunNotFound = errors.New("run not found")

// Run summarizes one recorded reconstruction
type Run struct {
	ID        string    `json:"id"`
	Command   string    `json:"command"` // decode or hash
	Source    string    `json:"source"`  // input path or origin label
	StartedAt time.Time `json:"started_at"`
	Lines     int       `json:"lines"`    // source lines consumed
	Messages  int       `json:"messages"` // messages reconstructed
}

// Entry is one reconstructed message within a run
type Entry struct {
	Seq      int    `json:"seq"`
	Checksum uint32 `json:"checksum"`
	Body     []byte `json:"body"`
}

const (
	runPrefix = "run/"
	msgPrefix = "msg/"
)

func runKey(id string) []byte {
	return []byte(runPrefix + id)
}

func msgKey(id string, seq int) []byte {
	return []byte(fmt.Sprintf("%s%s/%08d", msgPrefix, id, seq))
}

// Journal records reconstruction runs and their messages
type Journal struct {
	db *pebble.DB
}

// Open opens (or creates) a journal at path
func Open(path string) (*Journal, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &Journal{db: db}, nil
}

// Append stores a run with its messages and returns the assigned run ID.
// The run record is written last and synced, so a run listed by Runs always
// has its entries in place.
func (j *Journal) Append(run Run, entries []Entry) (string, error) {
	id := ksuid.New()
	run.ID = id.String()
	run.Messages = len(entries)
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	for i, entry := range entries {
		entry.Seq = i
		data, err := json.Marshal(entry)
		if err != nil {
			return "", err
		}
		if err := j.db.Set(msgKey(run.ID, i), data, pebble.NoSync); err != nil {
			return "", err
		}
	}

	data, err := json.Marshal(run)
	if err != nil {
		return "", err
	}
	if err := j.db.Set(runKey(run.ID), data, pebble.Sync); err != nil {
		return "", err
	}

	return run.ID, nil
}

// Run returns the summary for a single run
func (j *Journal) Run(id string) (Run, error) {
	data, closer, err := j.db.Get(runKey(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return Run{}, ErrRunNotFound
		}
		return Run{}, err
	}
	defer closer.Close()

	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return Run{}, err
	}
	return run, nil
}

// Runs lists all recorded runs, oldest first
func (j *Journal) Runs() ([]Run, error) {
	iter, err := j.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(runPrefix),
		UpperBound: []byte(runPrefix + "\xff"),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var runs []Run
	for iter.First(); iter.Valid(); iter.Next() {
		var run Run
		if err := json.Unmarshal(iter.Value(), &run); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}

	sort.Slice(runs, func(i, k int) bool {
		return runs[i].StartedAt.Before(runs[k].StartedAt)
	})
	return runs, nil
}

// Entries returns the messages of a run in arrival order
func (j *Journal) Entries(runID string) ([]Entry, error) {
	if _, err := j.Run(runID); err != nil {
		return nil, err
	}

	prefix := msgPrefix + runID + "/"
	iter, err := j.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(prefix),
		UpperBound: []byte(prefix + "\xff"),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var entries []Entry
	for iter.First(); iter.Valid(); iter.Next() {
		var entry Entry
		if err := json.Unmarshal(iter.Value(), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Close closes the underlying store
func (j *Journal) Close() error {
	return j.db.Close()
}
