package library

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	"subcompare/internal/config"
	"subcompare/internal/fileutil"
	"subcompare/internal/logging"
	"subcompare/internal/services"
)

// ActionKind identifies one category of library mutation.
type ActionKind string

const (
	ActionRenameReference ActionKind = "rename_reference"
	ActionRenameFolder    ActionKind = "rename_folder"
	ActionArchiveZip      ActionKind = "archive_zip"
	ActionFlattenFile     ActionKind = "flatten_file"
	ActionRemoveEmptyDir  ActionKind = "remove_empty_dir"
)

// Action is a single planned filesystem change.
type Action struct {
	Kind   ActionKind
	Movie  string
	Source string
	Target string
}

// Plan is the ordered set of changes `organize` intends to apply.
type Plan struct {
	Actions []Action
	// Notes collects situations the planner refused to touch, such as a
	// movie folder with several loose subtitle files.
	Notes []string
}

// Empty reports whether the plan has nothing to do.
func (p *Plan) Empty() bool {
	return p == nil || len(p.Actions) == 0
}

// Result summarizes an Apply pass.
type Result struct {
	Applied int
	Failed  int
}

// Organizer normalizes the library layout: reference subtitles get their
// canonical name, legacy candidate folders are renamed, downloads are
// archived, and candidate folders are flattened.
type Organizer struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewOrganizer constructs the organizer.
func NewOrganizer(cfg *config.Config, logger *slog.Logger) *Organizer {
	return &Organizer{cfg: cfg, logger: logging.NewComponentLogger(logger, "organizer")}
}

// Plan scans the library and computes the changes to bring it into the
// canonical layout. The filesystem is not modified.
func (o *Organizer) Plan(ctx context.Context) (*Plan, error) {
	movies, err := Movies(o.cfg.Paths.DataDir)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "organizing", "scan library", "Failed to list movie folders", err)
	}

	plan := &Plan{}
	for _, movieDir := range movies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		movie := filepath.Base(movieDir)
		o.planReferenceRename(plan, movie, movieDir)
		o.planFolderRenames(plan, movie, movieDir)
		if err := o.planZipArchival(plan, movie, movieDir); err != nil {
			return nil, err
		}
		if err := o.planFlatten(plan, movie, movieDir); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// Apply executes a plan while holding the library lock so concurrent
// invocations cannot interleave. Individual action failures are logged and
// counted; they do not abort the rest of the plan.
func (o *Organizer) Apply(ctx context.Context, plan *Plan) (Result, error) {
	var result Result
	if plan.Empty() {
		return result, nil
	}

	lock := flock.New(filepath.Join(o.cfg.Paths.DataDir, ".subcompare.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return result, services.Wrap(services.ErrTransient, "organizing", "acquire lock", "Failed to acquire library lock", err)
	}
	if !locked {
		return result, services.Wrap(services.ErrTransient, "organizing", "acquire lock", "Another subcompare invocation holds the library lock", nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	for _, action := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		logger := logging.WithContext(services.WithMovie(ctx, action.Movie), o.logger)
		if err := o.applyAction(action); err != nil {
			result.Failed++
			logger.Warn("action failed",
				logging.String("kind", string(action.Kind)),
				logging.String("source", action.Source),
				logging.Error(err),
			)
			continue
		}
		result.Applied++
		logger.Info("applied",
			logging.String("kind", string(action.Kind)),
			logging.String("source", action.Source),
			logging.String("target", action.Target),
		)
	}
	return result, nil
}

func (o *Organizer) applyAction(action Action) error {
	switch action.Kind {
	case ActionRenameReference, ActionRenameFolder:
		if _, err := os.Stat(action.Target); err == nil {
			return fmt.Errorf("target already exists: %s", action.Target)
		}
		return os.Rename(action.Source, action.Target)
	case ActionArchiveZip:
		if _, err := os.Stat(action.Target); err == nil {
			return fmt.Errorf("already archived: %s", action.Target)
		}
		return fileutil.MoveFile(action.Source, action.Target)
	case ActionFlattenFile:
		target, err := fileutil.UniquePath(action.Target)
		if err != nil {
			return err
		}
		return fileutil.MoveFile(action.Source, target)
	case ActionRemoveEmptyDir:
		// Fails when not empty; Plan orders file moves first so this only
		// triggers if something new appeared mid-apply.
		return os.Remove(action.Source)
	default:
		return fmt.Errorf("unknown action kind %q", action.Kind)
	}
}

func (o *Organizer) planReferenceRename(plan *Plan, movie, movieDir string) {
	entries, err := os.ReadDir(movieDir)
	if err != nil {
		plan.Notes = append(plan.Notes, fmt.Sprintf("%s: %v", movie, err))
		return
	}
	var loose []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ".srt") {
			continue
		}
		if name == o.cfg.Comparison.ReferenceName {
			return // already canonical
		}
		loose = append(loose, name)
	}
	switch len(loose) {
	case 0:
	case 1:
		plan.Actions = append(plan.Actions, Action{
			Kind:   ActionRenameReference,
			Movie:  movie,
			Source: filepath.Join(movieDir, loose[0]),
			Target: filepath.Join(movieDir, o.cfg.Comparison.ReferenceName),
		})
	default:
		sort.Strings(loose)
		plan.Notes = append(plan.Notes, fmt.Sprintf(
			"%s: %d loose subtitle files (%s); rename one to %s manually",
			movie, len(loose), strings.Join(loose, ", "), o.cfg.Comparison.ReferenceName,
		))
	}
}

func (o *Organizer) planFolderRenames(plan *Plan, movie, movieDir string) {
	if len(o.cfg.Comparison.CandidateDirs) == 0 {
		return
	}
	target := filepath.Join(movieDir, o.cfg.Comparison.CandidateDirs[0])
	for _, legacy := range o.cfg.Organize.LegacyCandidateDirs {
		source := filepath.Join(movieDir, legacy)
		info, err := os.Stat(source)
		if err != nil || !info.IsDir() {
			continue
		}
		if _, err := os.Stat(target); err == nil {
			plan.Notes = append(plan.Notes, fmt.Sprintf(
				"%s: both %s and %s exist; merge manually", movie, legacy, o.cfg.Comparison.CandidateDirs[0],
			))
			continue
		}
		plan.Actions = append(plan.Actions, Action{
			Kind:   ActionRenameFolder,
			Movie:  movie,
			Source: source,
			Target: target,
		})
	}
}

func (o *Organizer) planZipArchival(plan *Plan, movie, movieDir string) error {
	archiveDir := filepath.Join(movieDir, o.cfg.Organize.ArchiveDir)
	return filepath.WalkDir(movieDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if filepath.Base(path) == o.cfg.Organize.ArchiveDir {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".zip") {
			return nil
		}
		plan.Actions = append(plan.Actions, Action{
			Kind:   ActionArchiveZip,
			Movie:  movie,
			Source: path,
			Target: filepath.Join(archiveDir, filepath.Base(path)),
		})
		return nil
	})
}

func (o *Organizer) planFlatten(plan *Plan, movie, movieDir string) error {
	for _, candidate := range o.cfg.Comparison.CandidateDirs {
		candidateDir := filepath.Join(movieDir, candidate)
		info, err := os.Stat(candidateDir)
		if err != nil || !info.IsDir() {
			continue
		}
		var emptied []string
		err = filepath.WalkDir(candidateDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != candidateDir {
					emptied = append(emptied, path)
				}
				return nil
			}
			if filepath.Dir(path) == candidateDir {
				return nil
			}
			plan.Actions = append(plan.Actions, Action{
				Kind:   ActionFlattenFile,
				Movie:  movie,
				Source: path,
				Target: filepath.Join(candidateDir, filepath.Base(path)),
			})
			return nil
		})
		if err != nil {
			return services.Wrap(services.ErrTransient, "organizing", "scan candidate folder", "Failed to walk "+candidateDir, err)
		}
		// Deepest first so nested directories empty out before their parents.
		sort.Slice(emptied, func(i, j int) bool {
			return strings.Count(emptied[i], string(filepath.Separator)) > strings.Count(emptied[j], string(filepath.Separator))
		})
		for _, dir := range emptied {
			plan.Actions = append(plan.Actions, Action{
				Kind:   ActionRemoveEmptyDir,
				Movie:  movie,
				Source: dir,
			})
		}
	}
	return nil
}

// Movies lists the movie directories directly under dataDir, sorted by name.
func Movies(dataDir string) ([]string, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, err
	}
	var movies []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		movies = append(movies, filepath.Join(dataDir, entry.Name()))
	}
	sort.Strings(movies)
	return movies, nil
}

// IsMovieDir reports whether path looks like a movie directory the tool can
// process (it exists and is a directory).
func IsMovieDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
