package solver

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Job tracks one solve through the in-memory job table.
type Job struct {
	ID         string    `json:"id"`
	Status     Status    `json:"status"`
	Progress   []string  `json:"progress"`
	Error      string    `json:"error,omitempty"`
	ResultPath string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

const maxProgressLines = 200

// Solver output is chatty; only iteration and lifecycle lines are worth
// relaying to clients.
var progressKeywords = []string{"Iter:", "exploitability", "time used", "SOLVING", "START"}

func progressLine(line string) bool {
	for _, kw := range progressKeywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}

// Runner owns the solver binary and serializes access to it. The solver is
// heavily multithreaded on its own, so one process at a time is the point.
type Runner struct {
	bin     string
	jobsDir string

	sem chan struct{}

	mu   sync.Mutex
	jobs map[string]*Job
}

func NewRunner(bin, jobsDir string) *Runner {
	return &Runner{
		bin:     bin,
		jobsDir: jobsDir,
		sem:     make(chan struct{}, 1),
		jobs:    map[string]*Job{},
	}
}

// Job returns a snapshot of one job.
func (r *Runner) Job(id string) (Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return Job{}, false
	}
	cp := *j
	cp.Progress = append([]string(nil), j.Progress...)
	return cp, true
}

func (r *Runner) setStatus(id string, st Status, errMsg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.jobs[id]; ok {
		j.Status = st
		j.Error = errMsg
	}
}

func (r *Runner) appendProgress(id, line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return
	}
	if len(j.Progress) >= maxProgressLines {
		j.Progress = j.Progress[1:]
	}
	j.Progress = append(j.Progress, line)
}

// Submit registers a job and starts solving in the background. The result
// lands at <jobsDir>/<id>/result.json when the job reaches done.
func (r *Runner) Submit(req Request) (*Job, error) {
	id := uuid.NewString()
	dir := filepath.Join(r.jobsDir, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("job dir: %w", err)
	}
	resultPath := filepath.Join(dir, "result.json")
	configPath := filepath.Join(dir, "config.txt")
	if err := os.WriteFile(configPath, []byte(RenderConfig(req, resultPath)), 0o644); err != nil {
		return nil, fmt.Errorf("write config: %w", err)
	}
	job := &Job{ID: id, Status: StatusPending, ResultPath: resultPath, CreatedAt: time.Now().UTC()}
	r.mu.Lock()
	r.jobs[id] = job
	r.mu.Unlock()

	go func() {
		if err := r.run(context.Background(), id, configPath, resultPath, r.appendProgressFunc(id)); err != nil {
			log.Error().Err(err).Str("job_id", id).Msg("solve failed")
			r.setStatus(id, StatusFailed, err.Error())
			return
		}
		r.setStatus(id, StatusDone, "")
	}()
	return job, nil
}

func (r *Runner) appendProgressFunc(id string) func(string) {
	return func(line string) { r.appendProgress(id, line) }
}

// RunToPath solves one request synchronously, writing the dump to
// resultPath. Progress is discarded. Used by background spot solving.
func (r *Runner) RunToPath(ctx context.Context, req Request, resultPath string) error {
	dir := filepath.Dir(resultPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("result dir: %w", err)
	}
	configPath := filepath.Join(dir, "config.txt")
	if err := os.WriteFile(configPath, []byte(RenderConfig(req, resultPath)), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return r.run(ctx, "", configPath, resultPath, nil)
}

func (r *Runner) run(ctx context.Context, id, configPath, resultPath string, onProgress func(string)) error {
	select {
	case r.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-r.sem }()

	if id != "" {
		r.setStatus(id, StatusRunning, "")
	}
	start := time.Now()
	log.Info().Str("config", configPath).Msg("solver starting")

	cmd := exec.CommandContext(ctx, r.bin, "-i", configPath)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start solver: %w", err)
	}
	sc := bufio.NewScanner(stdout)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || !progressLine(line) {
			continue
		}
		if onProgress != nil {
			onProgress(line)
		}
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("solver exited: %w", err)
	}
	if _, err := os.Stat(resultPath); err != nil {
		return fmt.Errorf("solver produced no result: %w", err)
	}
	log.Info().Dur("elapsed", time.Since(start)).Str("result", resultPath).Msg("solver finished")
	return nil
}
