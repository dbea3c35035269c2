package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/Swayam-a/agrovision-backend/internal/model"
	"github.com/Swayam-a/agrovision-backend/internal/pipeline"
)

const maxBodySize = 1 << 20 // 1 MB

// generateStressMapRequest is the JSON body for POST /generate-stress-map.
type generateStressMapRequest struct {
	RGBImagePath string `json:"rgb_image_path"`
	NIRImagePath string `json:"nir_image_path"`
}

// localResultResponse is returned by POST /process-local-images.
type localResultResponse struct {
	Message       string `json:"message"`
	OutputSavedTo string `json:"output_saved_to"`
}

// remoteResultResponse is returned by POST /generate-stress-map.
type remoteResultResponse struct {
	Message   string `json:"message"`
	OutputURL string `json:"output_url"`
}

// handleProcessLocal runs the pipeline against the conventional fixture
// files and leaves the result in the local output directory.
func (s *Server) handleProcessLocal(w http.ResponseWriter, r *http.Request) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		s.logger.Error("create output dir", "dir", s.outputDir, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to create output directory")
		return
	}

	job := model.NewJob(model.ModeLocal, model.InputRefs{RGB: pipeline.FixtureRGB, NIR: pipeline.FixtureNIR})
	outputRef, err := filepath.Abs(filepath.Join(s.outputDir, fmt.Sprintf("local_map_%s.png", job.ID)))
	if err != nil {
		s.logger.Error("resolve output dir", "dir", s.outputDir, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to resolve output directory")
		return
	}
	job.OutputRef = outputRef

	res, err := s.runner.Run(r.Context(), job, pipeline.FixtureInputs{Dir: s.fixtureDir}, pipeline.LocalPublisher{})
	if err != nil {
		s.writeJobError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, localResultResponse{
		Message:       "Local processing successful!",
		OutputSavedTo: res.Output,
	})
}

// handleGenerateStressMap downloads the named objects from storage, runs the
// computation, and publishes the resulting map to the bucket.
func (s *Server) handleGenerateStressMap(w http.ResponseWriter, r *http.Request) {
	var req generateStressMapRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.RGBImagePath == "" {
		s.writeError(w, http.StatusBadRequest, "rgb_image_path is required")
		return
	}
	if req.NIRImagePath == "" {
		s.writeError(w, http.StatusBadRequest, "nir_image_path is required")
		return
	}

	job := model.NewJob(model.ModeRemote, model.InputRefs{RGB: req.RGBImagePath, NIR: req.NIRImagePath})
	job.OutputRef = fmt.Sprintf("outputs/stress_map_%s.png", job.ID)

	res, err := s.runner.Run(r.Context(), job,
		pipeline.StorageInputs{Store: s.store},
		pipeline.StoragePublisher{Store: s.store},
	)
	if err != nil {
		s.writeJobError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, remoteResultResponse{
		Message:   "Stress map generated successfully!",
		OutputURL: res.Output,
	})
}

// writeJobError converts any pipeline failure into the uniform error
// response, carrying the originating diagnostic as the message. The runner
// has already logged the failure with full detail.
func (s *Server) writeJobError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if pipeline.Classify(err) == pipeline.KindNotFound {
		status = http.StatusNotFound
	}
	s.writeError(w, status, err.Error())
}

// writeJSON writes a JSON response with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// writeError writes a JSON error response. Failures are always reported as
// {"detail": message}, carrying the originating diagnostic.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"detail": message})
}
