package compare

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"subcompare/internal/catalog"
	"subcompare/internal/config"
	"subcompare/internal/library"
	"subcompare/internal/logging"
	"subcompare/internal/services"
	"subcompare/internal/subtitle"
)

// CandidateFile is one translated subtitle file pulled into a comparison.
type CandidateFile struct {
	// Key is the stable column identifier, "<folder>_<n>" in listing order.
	Key      string
	Folder   string
	Name     string
	Path     string
	Encoding string
	Track    subtitle.Track
}

// Row is one reference cue with the best match from every candidate file,
// keyed by CandidateFile.Key. Files with no overlapping cue map to the
// empty string.
type Row struct {
	Index     int
	Start     float64
	End       float64
	Reference string
	Matches   map[string]string
}

// Result is the outcome of comparing one movie.
type Result struct {
	RunID         string
	Movie         string
	ReferenceCues int
	Files         []CandidateFile
	Rows          []Row
	// Coverage maps file keys to the fraction of reference cues that found
	// an overlapping candidate cue.
	Coverage    map[string]float64
	CSVPath     string
	JSONPath    string
	GeneratedAt time.Time
}

// Comparer runs subtitle comparisons across the library.
type Comparer struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *catalog.Store
}

// New constructs a comparer. The store may be nil, in which case runs are
// not recorded in the catalog.
func New(cfg *config.Config, logger *slog.Logger, store *catalog.Store) *Comparer {
	return &Comparer{cfg: cfg, logger: logging.NewComponentLogger(logger, "compare"), store: store}
}

// CompareAll processes every movie in the library. Movies without a
// reference track are skipped with a warning rather than failing the batch.
func (c *Comparer) CompareAll(ctx context.Context) ([]*Result, error) {
	movies, err := library.Movies(c.cfg.Paths.DataDir)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "comparing", "scan library", "Failed to list movie folders", err)
	}

	var results []*Result
	for _, movieDir := range movies {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result, err := c.CompareMovie(ctx, movieDir)
		if err != nil {
			c.logger.Warn("movie skipped",
				logging.String("movie", filepath.Base(movieDir)),
				logging.Error(err),
			)
			continue
		}
		results = append(results, result)
	}
	return results, nil
}

// CompareMovie aligns every candidate file for one movie against its
// reference track, writes the CSV and JSON reports next to the movie, and
// records the run.
func (c *Comparer) CompareMovie(ctx context.Context, movieDir string) (*Result, error) {
	movie := filepath.Base(movieDir)
	runID := uuid.New().String()
	ctx = services.WithRunID(services.WithMovie(ctx, movie), runID)
	logger := logging.WithContext(ctx, c.logger)
	started := time.Now()

	reference, err := c.loadReference(movieDir, logger)
	if err != nil {
		return nil, err
	}

	files, err := c.loadCandidates(ctx, movieDir, logger)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "comparing", "load candidates", "No candidate subtitle files found for "+movie, nil)
	}

	result := &Result{
		RunID:         runID,
		Movie:         movie,
		ReferenceCues: len(reference),
		Files:         files,
		Coverage:      map[string]float64{},
		GeneratedAt:   started,
	}
	c.alignRows(result, reference)

	base := movie + c.cfg.Comparison.OutputSuffix
	result.CSVPath = filepath.Join(movieDir, base+".csv")
	result.JSONPath = filepath.Join(movieDir, base+".json")
	if err := WriteCSV(result, result.CSVPath); err != nil {
		return nil, services.Wrap(services.ErrTransient, "comparing", "write csv", "Failed to write CSV report", err)
	}
	if err := WriteJSON(result, result.JSONPath); err != nil {
		return nil, services.Wrap(services.ErrTransient, "comparing", "write json", "Failed to write JSON report", err)
	}

	if err := c.record(ctx, result, started); err != nil {
		return nil, err
	}

	logger.Info("comparison complete",
		logging.Int("reference_cues", result.ReferenceCues),
		logging.Int("candidate_files", len(result.Files)),
		logging.String("csv", result.CSVPath),
	)
	return result, nil
}

func (c *Comparer) loadReference(movieDir string, logger *slog.Logger) (subtitle.Track, error) {
	path := filepath.Join(movieDir, c.cfg.Comparison.ReferenceName)
	track, encoding, err := subtitle.ParseFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "comparing", "load reference", "Failed to load reference track "+path, err)
	}
	track, stats := subtitle.CleanTrack(track)
	// Checked after cleanup: an ad-only file cleans down to nothing, and
	// alignment divides coverage by the cue count.
	if len(track) == 0 {
		return nil, services.Wrap(services.ErrValidation, "comparing", "load reference", "Reference track has no parseable cues: "+path, nil)
	}
	logger.Debug("reference loaded",
		logging.String("path", path),
		logging.String("encoding", encoding),
		logging.Int("cues", len(track)),
		logging.Int("removed_ads", stats.RemovedCues),
	)
	return track, nil
}

func (c *Comparer) loadCandidates(ctx context.Context, movieDir string, logger *slog.Logger) ([]CandidateFile, error) {
	var files []CandidateFile
	for _, folder := range c.cfg.Comparison.CandidateDirs {
		paths := library.CandidateFiles(filepath.Join(movieDir, folder))
		for i, path := range paths {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			track, encoding, err := subtitle.ParseFile(path)
			if err != nil {
				logger.Warn("candidate skipped",
					logging.String("path", path),
					logging.Error(err),
				)
				continue
			}
			track, _ = subtitle.CleanTrack(track)
			files = append(files, CandidateFile{
				Key:      fmt.Sprintf("%s_%d", folder, i+1),
				Folder:   folder,
				Name:     filepath.Base(path),
				Path:     path,
				Encoding: encoding,
				Track:    track,
			})
		}
	}
	return files, nil
}

func (c *Comparer) alignRows(result *Result, reference subtitle.Track) {
	matched := map[string]int{}
	result.Rows = make([]Row, 0, len(reference))
	for _, ref := range reference {
		row := Row{
			Index:     ref.Index,
			Start:     ref.Start,
			End:       ref.End,
			Reference: ref.Text,
			Matches:   make(map[string]string, len(result.Files)),
		}
		for _, file := range result.Files {
			text := subtitle.BestMatch(ref, file.Track)
			row.Matches[file.Key] = text
			if text != "" {
				matched[file.Key]++
			}
		}
		result.Rows = append(result.Rows, row)
	}
	for _, file := range result.Files {
		result.Coverage[file.Key] = float64(matched[file.Key]) / float64(len(reference))
	}
}

func (c *Comparer) record(ctx context.Context, result *Result, started time.Time) error {
	if c.store == nil {
		return nil
	}
	run := &catalog.Run{
		ID:             result.RunID,
		Movie:          result.Movie,
		ReferenceCues:  result.ReferenceCues,
		CandidateFiles: len(result.Files),
		CSVPath:        result.CSVPath,
		JSONPath:       result.JSONPath,
		StartedAt:      started,
		FinishedAt:     time.Now(),
	}
	if err := run.SetCoverage(result.Coverage); err != nil {
		return services.Wrap(services.ErrTransient, "comparing", "record run", "Failed to encode coverage", err)
	}
	if err := c.store.Insert(ctx, run); err != nil {
		return services.Wrap(services.ErrTransient, "comparing", "record run", "Failed to record run in catalog", err)
	}
	return nil
}
