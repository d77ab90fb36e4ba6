package jobs

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/samvad-hq/tokenmetrics-go/internal/regfile"
)

// Package jobs declares which API resources the harvester polls (YAML/JSON) and how.

// Job is one configured poll of a single API resource.
type Job struct {
	ID             string         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	Resource       string         `json:"resource" yaml:"resource"`
	Params         map[string]any `json:"params" yaml:"params"`
	Prompt         string         `json:"prompt" yaml:"prompt"`
	RequestDelayMs int            `json:"request_delay_ms" yaml:"request_delay_ms"`
	Enabled        *bool          `json:"enabled" yaml:"enabled"`
}

type fileRegistry struct {
	Jobs []Job `json:"jobs" yaml:"jobs"`
}

const defaultRequestDelayMs = 500

// Registry holds the validated jobs loaded from a file.
type Registry struct {
	mu   sync.RWMutex
	jobs []Job
	idx  map[string]Job
}

// LoadRegistry loads the job registry from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	fileReg, err := regfile.Load[fileRegistry](path, "jobs")
	if err != nil {
		return nil, err
	}
	return NewRegistry(fileReg.Jobs...)
}

// NewRegistry validates jobs and indexes them by id.
func NewRegistry(jobs ...Job) (*Registry, error) {
	if len(jobs) == 0 {
		return nil, errors.New("jobs file contains no jobs entries")
	}

	reg := &Registry{
		jobs: make([]Job, len(jobs)),
		idx:  make(map[string]Job, len(jobs)),
	}
	for i := range jobs {
		j := sanitizeJob(jobs[i])
		if err := validateJob(j); err != nil {
			return nil, fmt.Errorf("jobs[%d]: %w", i, err)
		}
		if _, exists := reg.idx[j.ID]; exists {
			return nil, fmt.Errorf("duplicate job id %q", j.ID)
		}
		reg.jobs[i] = j
		reg.idx[j.ID] = j
	}
	return reg, nil
}

func sanitizeJob(j Job) Job {
	j.ID = strings.TrimSpace(j.ID)
	j.Name = strings.TrimSpace(j.Name)
	j.Resource = strings.ToLower(strings.TrimSpace(j.Resource))
	j.Prompt = strings.TrimSpace(j.Prompt)

	params := make(map[string]any, len(j.Params))
	for k, v := range j.Params {
		if k = strings.TrimSpace(k); k != "" {
			params[k] = v
		}
	}
	j.Params = params

	if j.RequestDelayMs <= 0 {
		j.RequestDelayMs = defaultRequestDelayMs
	}
	if j.Enabled == nil {
		def := true
		j.Enabled = &def
	}
	return j
}

func validateJob(j Job) error {
	if j.ID == "" {
		return errors.New("id is required")
	}
	if j.Name == "" {
		return fmt.Errorf("name is required for job %q", j.ID)
	}
	if j.Resource == "" {
		return fmt.Errorf("resource is required for job %q", j.ID)
	}
	if !IsKnownResource(j.Resource) {
		return fmt.Errorf("unknown resource %q for job %q", j.Resource, j.ID)
	}
	if j.Resource == ResourceAIAgent && j.Prompt == "" {
		return fmt.Errorf("prompt is required for %s job %q", ResourceAIAgent, j.ID)
	}
	for k, v := range j.Params {
		if v == nil {
			continue
		}
		if kind := reflect.TypeOf(v).Kind(); kind == reflect.Map || kind == reflect.Struct {
			return fmt.Errorf("param %q of job %q must be a scalar or list", k, j.ID)
		}
	}
	return nil
}

// ByID returns the job by id.
func (r *Registry) ByID(id string) (Job, bool) {
	if r == nil {
		return Job{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Job{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.idx[id]
	return j, ok
}

// All returns every configured job in file order.
func (r *Registry) All() []Job {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Job, len(r.jobs))
	copy(out, r.jobs)
	return out
}

// Enabled returns jobs that are enabled.
func (r *Registry) Enabled() []Job {
	all := r.All()
	out := make([]Job, 0, len(all))
	for _, j := range all {
		if j.EnabledValue() {
			out = append(out, j)
		}
	}
	return out
}

// EnabledValue returns enabled flag defaulting to true.
func (j Job) EnabledValue() bool {
	if j.Enabled == nil {
		return true
	}
	return *j.Enabled
}

// RequestDelay returns the pause the harvester takes after running the job.
func (j Job) RequestDelay() time.Duration {
	if j.RequestDelayMs <= 0 {
		return time.Duration(defaultRequestDelayMs) * time.Millisecond
	}
	return time.Duration(j.RequestDelayMs) * time.Millisecond
}
