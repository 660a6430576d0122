// Package export renders recorded runs into portable documents.
package export

import (
	"fmt"
	"strings"

	"github.com/nexustech101/particlebox/internal/engine"
	"github.com/nexustech101/particlebox/internal/storage"
)

const (
	background    = "#0a0a0a"
	wallStroke    = "#333333"
	fallbackColor = "#b4b4b4"
	trailOpacity  = 0.35
)

// RunSVG renders a recorded run as a standalone SVG document: the
// arena walls, one motion trail per body across the recorded samples,
// and the discs at the last sample. Trails and discs reuse the colors
// and radii stored with the run; recordings that predate those fields
// fall back to gray discs of the default radius.
func RunSVG(meta *storage.RunMetadata, rows [][]float64) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<rect x="0.5" y="0.5" width="%.1f" height="%.1f" fill="none" stroke="%s"/>
`, meta.Width, meta.Height, meta.Width, meta.Height, background,
		meta.Width-1, meta.Height-1, wallStroke))

	if len(rows) == 0 {
		sb.WriteString("</svg>\n")
		return sb.String()
	}

	n := len(rows[0]) / 4

	// Trails first so the discs draw on top of them.
	if len(rows) > 1 {
		for i := 0; i < n; i++ {
			sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-opacity="%.2f" points="`,
				bodyColor(meta, i), trailOpacity))
			for j, row := range rows {
				if i*4+1 >= len(row) {
					continue
				}
				if j > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", row[i*4], row[i*4+1]))
			}
			sb.WriteString("\"/>\n")
		}
	}

	last := rows[len(rows)-1]
	for i := 0; i < n && i*4+1 < len(last); i++ {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, last[i*4], last[i*4+1], bodyRadius(meta, i), bodyColor(meta, i)))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func bodyColor(meta *storage.RunMetadata, i int) string {
	if i < len(meta.Colors) && meta.Colors[i] != "" {
		return meta.Colors[i]
	}
	return fallbackColor
}

func bodyRadius(meta *storage.RunMetadata, i int) float64 {
	if i < len(meta.Radii) && meta.Radii[i] > 0 {
		return meta.Radii[i]
	}
	return engine.DefaultRadius
}
