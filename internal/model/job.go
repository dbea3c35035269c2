package model

// Job mode constants. Local jobs read fixture files and leave the result on
// disk; remote jobs pull inputs from object storage and publish a public URL.
const (
	ModeLocal  = "local"
	ModeRemote = "remote"
)

// InputRefs names the pair of source images for one job: fixture file names
// in local mode, storage object paths in remote mode.
type InputRefs struct {
	RGB string
	NIR string
}

// Job is one end-to-end execution of the stress-map pipeline for one
// request. A job lives only for the duration of that execution; it is never
// persisted and never reused.
type Job struct {
	ID            string
	Mode          string
	Inputs        InputRefs
	OutputRef     string
	WorkspacePath string
}

// NewJob creates a job with a freshly generated ID for the given mode and
// input pair. OutputRef is set by the caller once the destination is known.
func NewJob(mode string, inputs InputRefs) *Job {
	return &Job{
		ID:     NewID(),
		Mode:   mode,
		Inputs: inputs,
	}
}
