package report

import (
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"subcompare/internal/compare"
	"subcompare/internal/config"
	"subcompare/internal/language"
	"subcompare/internal/library"
	"subcompare/internal/logging"
	"subcompare/internal/services"
)

//go:embed dashboard.html
var dashboardHTML string

var dashboardTemplate = template.Must(template.New("dashboard").Parse(dashboardHTML))

// Column describes one candidate file column in the dashboard.
type Column struct {
	Folder   string
	Key      string
	File     string
	Language string
	RTL      bool
	Coverage float64
}

// Percent renders the column's coverage as a whole percentage.
func (c Column) Percent() string {
	return fmt.Sprintf("%.0f%%", c.Coverage*100)
}

// Cell is one rendered translation cell.
type Cell struct {
	Text string
	RTL  bool
}

// RowView is one reference cue with its translation cells in column order.
type RowView struct {
	Index   int
	Time    string
	English string
	Cells   []Cell
}

type dashboardData struct {
	Movie        string
	GeneratedAt  string
	CueCount     int
	FileCount    int
	MeanCoverage string
	Columns      []Column
	Rows         []RowView
}

// Render writes the HTML dashboard for one comparison report.
func Render(rep *compare.Report, outPath string) error {
	data := buildDashboard(rep)
	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create dashboard: %w", err)
	}
	defer file.Close()
	if err := dashboardTemplate.Execute(file, data); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}

// RenderFile reads a comparison JSON report and writes its dashboard.
func RenderFile(jsonPath, outPath string) error {
	rep, err := compare.ReadReport(jsonPath)
	if err != nil {
		return err
	}
	return Render(rep, outPath)
}

// Renderer generates dashboards across the library.
type Renderer struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewRenderer constructs a renderer.
func NewRenderer(cfg *config.Config, logger *slog.Logger) *Renderer {
	return &Renderer{cfg: cfg, logger: logging.NewComponentLogger(logger, "report")}
}

// RenderAll finds every comparison JSON report in the library and writes an
// HTML dashboard next to it. It returns the paths of the dashboards written.
func (r *Renderer) RenderAll(ctx context.Context) ([]string, error) {
	movies, err := library.Movies(r.cfg.Paths.DataDir)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "rendering", "scan library", "Failed to list movie folders", err)
	}

	var written []string
	for _, movieDir := range movies {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		movie := filepath.Base(movieDir)
		jsonPath := filepath.Join(movieDir, movie+r.cfg.Comparison.OutputSuffix+".json")
		if _, err := os.Stat(jsonPath); err != nil {
			continue
		}
		outPath := strings.TrimSuffix(jsonPath, ".json") + ".html"
		if err := RenderFile(jsonPath, outPath); err != nil {
			r.logger.Warn("dashboard skipped",
				logging.String("movie", movie),
				logging.Error(err),
			)
			continue
		}
		written = append(written, outPath)
		r.logger.Info("dashboard written",
			logging.String("movie", movie),
			logging.String("path", outPath),
		)
	}
	return written, nil
}

func buildDashboard(rep *compare.Report) dashboardData {
	columns := buildColumns(rep)

	data := dashboardData{
		Movie:       rep.Movie,
		GeneratedAt: rep.GeneratedAt,
		CueCount:    len(rep.Subtitles),
		FileCount:   len(columns),
		Columns:     columns,
	}

	if len(columns) > 0 {
		var sum float64
		for _, col := range columns {
			sum += col.Coverage
		}
		data.MeanCoverage = fmt.Sprintf("%.0f%%", sum/float64(len(columns))*100)
	} else {
		data.MeanCoverage = "n/a"
	}

	data.Rows = make([]RowView, 0, len(rep.Subtitles))
	for _, entry := range rep.Subtitles {
		row := RowView{
			Index:   entry.Index,
			Time:    entry.Time,
			English: entry.English,
		}
		for _, col := range columns {
			row.Cells = append(row.Cells, Cell{
				Text: entry.Translations[col.Folder][col.Key],
				RTL:  col.RTL,
			})
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

// buildColumns orders columns by folder then file key so the dashboard is
// stable across runs.
func buildColumns(rep *compare.Report) []Column {
	folders := make([]string, 0, len(rep.FileMapping))
	for folder := range rep.FileMapping {
		folders = append(folders, folder)
	}
	sort.Strings(folders)

	var columns []Column
	for _, folder := range folders {
		keys := make([]string, 0, len(rep.FileMapping[folder]))
		for key := range rep.FileMapping[folder] {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			columns = append(columns, Column{
				Folder:   folder,
				Key:      key,
				File:     rep.FileMapping[folder][key],
				Language: language.Display(folder),
				RTL:      language.RightToLeft(folder),
				Coverage: rep.Coverage[key],
			})
		}
	}
	return columns
}
