package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/nexustech101/particlebox/internal/config"
	"github.com/nexustech101/particlebox/internal/engine"
)

// Store records finished runs under baseDir, one directory per run:
// metadata.json plus frames.csv with a row per sampled frame.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Count       int                `json:"count"`
	Frames      int                `json:"frames"`
	SampleEvery int                `json:"sample_every"`
	Collisions  int                `json:"collisions"`
	WallHits    int                `json:"wall_hits"`
	Elapsed     float64            `json:"elapsed_seconds"`
	Masses      []float64          `json:"masses,omitempty"`
	Radii       []float64          `json:"radii,omitempty"`
	Colors      []string           `json:"colors,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes one run directory named <name>_<unixnano>. Nanoseconds
// rather than seconds: batch steps finish back to back and second
// resolution collides.
func (s *Store) Save(cfg *config.Config, result *engine.Result) (string, error) {
	name := cfg.Name
	if name == "" {
		name = "run"
	}
	runID := fmt.Sprintf("%s_%d", name, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Name:        name,
		Timestamp:   time.Now(),
		Seed:        cfg.Seed,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Count:       cfg.Count,
		Frames:      result.Frames,
		SampleEvery: cfg.SampleEvery,
		Collisions:  result.Collisions,
		WallHits:    result.WallHits,
		Elapsed:     result.Elapsed.Seconds(),
		Metrics:     result.Metrics,
	}
	if len(result.Samples) > 0 {
		bodies := result.Samples[0].Bodies
		meta.Masses = make([]float64, len(bodies))
		meta.Radii = make([]float64, len(bodies))
		meta.Colors = make([]string, len(bodies))
		for i, b := range bodies {
			meta.Masses[i] = b.Mass
			meta.Radii[i] = b.Radius
			meta.Colors[i] = b.Color
		}
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "frames.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Samples) == 0 {
		return runID, nil
	}

	header := []string{"frame"}
	for i := range result.Samples[0].Bodies {
		header = append(header,
			fmt.Sprintf("p%d_x", i), fmt.Sprintf("p%d_y", i),
			fmt.Sprintf("p%d_vx", i), fmt.Sprintf("p%d_vy", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, sample := range result.Samples {
		row := []string{strconv.Itoa(sample.Frame)}
		for _, b := range sample.Bodies {
			row = append(row,
				strconv.FormatFloat(b.Pos.X, 'f', 6, 64),
				strconv.FormatFloat(b.Pos.Y, 'f', 6, 64),
				strconv.FormatFloat(b.Vel.X, 'f', 6, 64),
				strconv.FormatFloat(b.Vel.Y, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List reads every run directory's metadata, skipping entries that are
// missing or unreadable.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) LoadMeta(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames returns one flat row per sampled frame, columns ordered
// x,y,vx,vy per body, plus the frame numbers.
func (s *Store) LoadFrames(runID string) ([][]float64, []int, error) {
	csvPath := filepath.Join(s.baseDir, runID, "frames.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return [][]float64{}, []int{}, nil
	}

	frames := make([]int, 0, len(records)-1)
	rows := make([][]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		frame, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}

		row := make([]float64, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			row = append(row, val)
		}
		frames = append(frames, frame)
		rows = append(rows, row)
	}

	return rows, frames, nil
}
