package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Seed       int64              `json:"seed"`
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
	Count      int                `json:"count"`
	Collisions int                `json:"collisions"`
	WallHits   int                `json:"wall_hits"`
	Masses     []float64          `json:"masses,omitempty"`
	Radii      []float64          `json:"radii,omitempty"`
	Colors     []string           `json:"colors,omitempty"`
	Frames     []int              `json:"frames"`
	Rows       [][]float64        `json:"rows"`
	Metrics    map[string]float64 `json:"metrics"`
}

// ExportJSON streams a stored run as indented JSON. Callers hand in the
// destination (file or stdout).
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.LoadMeta(runID)
	if err != nil {
		return err
	}
	rows, frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		ID:         meta.ID,
		Name:       meta.Name,
		Seed:       meta.Seed,
		Width:      meta.Width,
		Height:     meta.Height,
		Count:      meta.Count,
		Collisions: meta.Collisions,
		WallHits:   meta.WallHits,
		Masses:     meta.Masses,
		Radii:      meta.Radii,
		Colors:     meta.Colors,
		Frames:     frames,
		Rows:       rows,
		Metrics:    meta.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
