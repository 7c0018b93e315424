package webapi

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/aeobooster/aeobooster/internal/models"
	"github.com/aeobooster/aeobooster/internal/reporting"
)

// ErrRunNotFound is returned when a run ID does not match any stored run.
var ErrRunNotFound = errors.New("run not found")

// RunStore provides access to analysis run data.
type RunStore interface {
	// ListRuns returns all runs, sorted by the given field and order.
	ListRuns(sortField, order string) ([]RunSummary, error)
	// GetRun returns a single run with full per-prompt details.
	GetRun(id string) (*RunDetail, error)
	// GetOutcome returns the raw stored outcome for a run.
	GetOutcome(id string) (*models.AnalysisOutcome, error)
	// Summary returns aggregate metrics across all runs.
	Summary() (*SummaryResponse, error)
}

// FileStore reads AnalysisOutcome JSON files from a directory.
type FileStore struct {
	dir string

	mu      sync.RWMutex
	runs    map[string]*models.AnalysisOutcome
	loaded  bool
	loadErr error
}

var _ RunStore = (*FileStore)(nil)

// NewFileStore creates a FileStore that reads results from dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:  dir,
		runs: make(map[string]*models.AnalysisOutcome),
	}
}

// load reads all result JSON files from the configured directory.
func (fs *FileStore) load() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.runs = make(map[string]*models.AnalysisOutcome)

	if fs.dir == "" {
		fs.loaded = true
		return nil
	}

	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		if os.IsNotExist(err) {
			fs.loaded = true
			return nil
		}
		fs.loadErr = err
		return err
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(fs.dir, e.Name()))
		if err != nil {
			continue
		}
		var outcome models.AnalysisOutcome
		if err := json.Unmarshal(data, &outcome); err != nil {
			continue
		}
		if outcome.RunID == "" {
			// Use filename (without extension) as fallback ID.
			outcome.RunID = strings.TrimSuffix(e.Name(), ".json")
		}
		fs.runs[outcome.RunID] = &outcome
	}

	fs.loaded = true
	fs.loadErr = nil
	return nil
}

// ensureLoaded loads data if not already loaded.
func (fs *FileStore) ensureLoaded() error {
	fs.mu.RLock()
	if fs.loaded {
		fs.mu.RUnlock()
		return nil
	}
	fs.mu.RUnlock()
	return fs.load()
}

// Reload forces a fresh reload of all result files from disk.
func (fs *FileStore) Reload() error {
	return fs.load()
}

func outcomeToSummary(o *models.AnalysisOutcome) RunSummary {
	return RunSummary{
		ID:           o.RunID,
		SiteURL:      o.SiteURL,
		Category:     o.BusinessCategory,
		Model:        o.Setup.ModelID,
		Engine:       o.Setup.EngineType,
		TotalScore:   o.TotalScore,
		AverageScore: o.AverageScore(),
		PromptCount:  o.PromptCount,
		WeakClusters: len(o.WeakClusters),
		Coverage:     o.Coverage,
		Duration:     float64(o.DurationMs) / 1000.0,
		Timestamp:    o.Timestamp,
	}
}

// ListRuns returns all runs sorted by the requested field.
// Supported fields: timestamp (default), score, site. Order is
// asc or desc (default desc).
func (fs *FileStore) ListRuns(sortField, order string) ([]RunSummary, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	summaries := make([]RunSummary, 0, len(fs.runs))
	for _, o := range fs.runs {
		summaries = append(summaries, outcomeToSummary(o))
	}

	asc := order == "asc"
	sort.Slice(summaries, func(i, j int) bool {
		var less bool
		switch sortField {
		case "score":
			less = summaries[i].TotalScore < summaries[j].TotalScore
		case "site":
			less = summaries[i].SiteURL < summaries[j].SiteURL
		default:
			less = summaries[i].Timestamp.Before(summaries[j].Timestamp)
		}
		if asc {
			return less
		}
		return !less
	})

	return summaries, nil
}

// GetRun returns full detail for one run.
func (fs *FileStore) GetRun(id string) (*RunDetail, error) {
	o, err := fs.GetOutcome(id)
	if err != nil {
		return nil, err
	}

	detail := &RunDetail{RunSummary: outcomeToSummary(o)}

	for _, cluster := range sortedClusterNames(o.Clusters) {
		stats := o.Clusters[cluster]
		detail.Clusters = append(detail.Clusters, ClusterResult{
			Cluster:  string(cluster),
			Count:    stats.Count,
			ScoreSum: stats.ScoreSum,
			Average:  stats.Average,
		})
	}

	for _, wc := range o.WeakClusters {
		detail.Weak = append(detail.Weak, WeakCluster{
			Cluster: string(wc.Cluster),
			Average: wc.Average,
			Count:   wc.Count,
			Advice:  reporting.ClusterAdvice(wc.Cluster),
		})
	}

	for _, r := range o.Results {
		detail.Results = append(detail.Results, PromptResult{
			Cluster:     string(r.Prompt.Cluster),
			Prompt:      r.Prompt.Text,
			MentionKind: r.MentionKind,
			Score:       r.Score,
			Duration:    float64(r.DurationMs) / 1000.0,
			Error:       r.Error,
		})
	}

	return detail, nil
}

// GetOutcome returns the raw outcome for one run.
func (fs *FileStore) GetOutcome(id string) (*models.AnalysisOutcome, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	o, ok := fs.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return o, nil
}

// Summary returns aggregate metrics across all runs.
func (fs *FileStore) Summary() (*SummaryResponse, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	resp := &SummaryResponse{TotalRuns: len(fs.runs)}
	if len(fs.runs) == 0 {
		return resp, nil
	}

	var scoreSum, coverageSum, durationSum float64
	for _, o := range fs.runs {
		resp.TotalPrompts += o.PromptCount
		scoreSum += o.AverageScore()
		coverageSum += o.Coverage
		durationSum += float64(o.DurationMs) / 1000.0
	}

	n := float64(len(fs.runs))
	resp.AvgScore = scoreSum / n
	resp.AvgCoverage = coverageSum / n
	resp.AvgDuration = durationSum / n

	return resp, nil
}

func sortedClusterNames(clusters map[models.Cluster]models.ClusterStats) []models.Cluster {
	out := make([]models.Cluster, 0, len(clusters))
	for c := range clusters {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
