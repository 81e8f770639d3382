package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/sasport/internal/domain"
)

// job holds a finished batch: its report plus the packaged artifacts,
// kept in memory for download. Jobs live for the life of the process.
type job struct {
	id        string
	createdAt time.Time
	report    *domain.BatchReport
	artifacts map[string][]byte
	archive   []byte
}

// artifact returns the named artifact, with the archive addressable under
// the reserved name "archive".
func (j *job) artifact(name string) ([]byte, bool) {
	if name == "archive" {
		return j.archive, len(j.archive) > 0
	}
	data, ok := j.artifacts[name]
	return data, ok
}

// itemSummary is the JSON representation of one item's outcome.
type itemSummary struct {
	Item   string `json:"item"`
	Output string `json:"output,omitempty"`
	URL    string `json:"url,omitempty"`
	Error  string `json:"error,omitempty"`
}

// jobSummary is the JSON response for a finished batch.
type jobSummary struct {
	JobID      string        `json:"job_id"`
	CreatedAt  time.Time     `json:"created_at"`
	Total      int           `json:"total"`
	Succeeded  []itemSummary `json:"succeeded"`
	Failed     []itemSummary `json:"failed"`
	ArchiveURL string        `json:"archive_url,omitempty"`
}

func (j *job) summary() jobSummary {
	s := jobSummary{
		JobID:     j.id,
		CreatedAt: j.createdAt,
		Total:     j.report.Total,
		Succeeded: make([]itemSummary, 0, len(j.report.Succeeded)),
		Failed:    make([]itemSummary, 0, len(j.report.Failed)),
	}
	for _, r := range j.report.Succeeded {
		s.Succeeded = append(s.Succeeded, itemSummary{
			Item:   r.ItemName,
			Output: r.OutputName,
			URL:    fmt.Sprintf("/download/%s/%s", j.id, r.OutputName),
		})
	}
	for _, r := range j.report.Failed {
		s.Failed = append(s.Failed, itemSummary{Item: r.ItemName, Error: r.Err})
	}
	if len(s.Succeeded) > 0 {
		s.ArchiveURL = fmt.Sprintf("/download/%s/archive", j.id)
	}
	return s
}

// jobStore is an in-memory, mutex-guarded job registry.
type jobStore struct {
	mu   sync.RWMutex
	jobs map[string]*job
}

func newJobStore() *jobStore {
	return &jobStore{jobs: make(map[string]*job)}
}

func (s *jobStore) add(report *domain.BatchReport, artifacts []domain.OutputArtifact, archive domain.OutputArtifact) *job {
	byName := make(map[string][]byte, len(artifacts))
	for _, a := range artifacts {
		byName[a.Name] = a.Data
	}

	j := &job{
		id:        uuid.NewString(),
		createdAt: time.Now().UTC(),
		report:    report,
		artifacts: byName,
		archive:   archive.Data,
	}

	s.mu.Lock()
	s.jobs[j.id] = j
	s.mu.Unlock()
	return j
}

func (s *jobStore) get(id string) (*job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	return j, ok
}
