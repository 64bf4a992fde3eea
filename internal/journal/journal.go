// Package journal appends one JSON line per stage transition to a run log
// and parses it back to decide which stages a resumed run may skip.
package journal

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	StatusStarted   = "started"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// Journal records stage transitions for one sample under a unique run ID.
// The file is opened in append mode so concurrent samples sharing a working
// root interleave lines instead of clobbering each other.
type Journal struct {
	mu     sync.Mutex
	file   *os.File
	log    *slog.Logger
	run    string
	sample string
}

func Open(path, sample string) (*Journal, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open journal %s", path)
	}

	return &Journal{
		file:   file,
		log:    slog.New(slog.NewJSONHandler(file, nil)),
		run:    uuid.NewString(),
		sample: sample,
	}, nil
}

// Run returns the unique identifier of this run.
func (j *Journal) Run() string {
	return j.run
}

func (j *Journal) Record(stage, status string, stageErr error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if stageErr != nil {
		j.log.Error("stage", "run", j.run, "sample", j.sample, "stage", stage, "status", status, "error", stageErr.Error())

		return
	}
	j.log.Info("stage", "run", j.run, "sample", j.sample, "stage", stage, "status", status)
}

func (j *Journal) Close() error {
	return errors.Wrap(j.file.Close(), "unable to close journal")
}

// Key identifies a (sample, stage) pair inside the journal.
func Key(sample, stage string) string {
	return sample + "/" + stage
}

type entry struct {
	Sample string `json:"sample"`
	Stage  string `json:"stage"`
	Status string `json:"status"`
}

// Completed parses a journal file and returns the (sample, stage) pairs
// whose latest record is completed. A later failure or restart of the same
// stage drops it from the set, so a resumed run launches it again.
func Completed(path string) (map[string]struct{}, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]struct{}{}, nil
		}

		return nil, errors.Wrapf(err, "unable to open journal %s", path)
	}
	defer file.Close()

	completed := map[string]struct{}{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var e entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			// foreign or truncated line, not this journal's business
			continue
		}
		if e.Sample == "" || e.Stage == "" {
			continue
		}

		key := Key(e.Sample, e.Stage)
		switch e.Status {
		case StatusCompleted:
			completed[key] = struct{}{}
		case StatusStarted, StatusFailed:
			delete(completed, key)
		}
	}

	return completed, errors.Wrapf(scanner.Err(), "unable to read journal %s", path)
}
