package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/Swayam-a/agrovision-backend/internal/model"
)

// ComputeInvoker abstracts the external computation binary. A nil return
// means the output artifact was written; any failure is reported as an error
// whose message is the computation's diagnostic.
type ComputeInvoker interface {
	Run(ctx context.Context, rgbPath, nirPath, outputPath string) error
}

// Result references the published artifact of a completed job: a filesystem
// path in local mode, a public URL in remote mode. Immutable once produced.
type Result struct {
	JobID  string
	Output string
}

// Runner drives one job at a time through the fixed pipeline:
// workspace → inputs → computation → publication → cleanup. Each call is
// synchronous and self-contained; concurrent calls are safe because every
// job owns a disjoint workspace.
type Runner struct {
	workspaces *Workspaces
	invoker    ComputeInvoker
	logger     *slog.Logger
}

// NewRunner creates a pipeline runner.
func NewRunner(ws *Workspaces, invoker ComputeInvoker, logger *slog.Logger) *Runner {
	return &Runner{
		workspaces: ws,
		invoker:    invoker,
		logger:     logger,
	}
}

// Run executes the job. Stages run strictly in order and the first failure
// short-circuits the rest; workspace destruction alone is exempt and runs on
// every exit path. The returned error carries the originating stage's
// diagnostic and classifies via Classify.
func (r *Runner) Run(ctx context.Context, job *model.Job, inputs InputAcquirer, pub Publisher) (res Result, err error) {
	start := time.Now()
	activeJobs.Inc()
	defer func() {
		activeJobs.Dec()
		status := statusCompleted
		if err != nil {
			status = statusFailed
		}
		jobsTotal.WithLabelValues(job.Mode, status).Inc()
		jobDuration.Observe(time.Since(start).Seconds())
	}()

	r.logger.Info("job started", "job_id", job.ID, "mode", job.Mode,
		"rgb", job.Inputs.RGB, "nir", job.Inputs.NIR)

	ws, err := r.workspaces.Create(job.ID)
	if err != nil {
		r.logFailure(job, "create workspace", err)
		return Result{}, err
	}
	job.WorkspacePath = ws
	defer func() {
		if derr := r.workspaces.Destroy(ws); derr != nil {
			r.logger.Error("workspace cleanup failed", "job_id", job.ID, "workspace", ws, "error", derr)
		} else {
			r.logger.Debug("workspace removed", "job_id", job.ID, "workspace", ws)
		}
	}()

	rgbPath, nirPath, err := inputs.Acquire(ctx, job)
	if err != nil {
		r.logFailure(job, "acquire inputs", err)
		return Result{}, err
	}

	artifact := r.artifactPath(job)
	computeStart := time.Now()
	err = r.invoker.Run(ctx, rgbPath, nirPath, artifact)
	computeDuration.Observe(time.Since(computeStart).Seconds())
	if err != nil {
		r.logFailure(job, "compute", err)
		return Result{}, err
	}

	output, err := pub.Publish(ctx, artifact, job.OutputRef)
	if err != nil {
		r.logFailure(job, "publish", err)
		return Result{}, err
	}

	r.logger.Info("job completed", "job_id", job.ID, "mode", job.Mode,
		"output", output, "duration_ms", time.Since(start).Milliseconds())
	return Result{JobID: job.ID, Output: output}, nil
}

// artifactPath is where the computation writes its output. Local jobs write
// straight to the final destination; remote jobs write inside the workspace
// and the artifact only leaves it via upload.
func (r *Runner) artifactPath(job *model.Job) string {
	if job.Mode == model.ModeRemote {
		return filepath.Join(job.WorkspacePath, filepath.Base(job.OutputRef))
	}
	return job.OutputRef
}

func (r *Runner) logFailure(job *model.Job, stage string, err error) {
	r.logger.Error("job failed", "job_id", job.ID, "mode", job.Mode,
		"stage", stage, "kind", string(Classify(err)), "error", err)
}
