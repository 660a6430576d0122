package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/nexustech101/particlebox/internal/config"
	"github.com/nexustech101/particlebox/internal/engine"
)

const (
	defaultCanvasWidth  = 80
	defaultCanvasHeight = 24
	statsPanelWidth     = 42
	historyCapacity     = 600
	noticeTicks         = 120 // two seconds at 60 fps
	gifFileName         = "capture.gif"
)

type TickMsg time.Time

// Model drives one world on a 60 fps tick and renders it to a braille
// canvas with a stats sidebar.
type Model struct {
	world  *engine.World
	cfg    *config.Config
	canvas *Canvas
	theme  Theme
	styles Styles

	running    bool
	collisions int
	wallHits   int
	keHistory  []float64
	initialKE  float64

	recording  bool
	gifFrames  []*image.Paletted
	notice     string
	noticeLeft int

	snap []engine.Particle
}

// NewModel wraps an already-built world. cfg is retained for the
// reseed key and the stats header.
func NewModel(cfg *config.Config, world *engine.World) Model {
	ke := world.TotalKineticEnergy()
	return Model{
		world:     world,
		cfg:       cfg,
		canvas:    NewCanvas(defaultCanvasWidth, defaultCanvasHeight),
		theme:     ThemeCyberpunk,
		styles:    NewStyles(ThemeCyberpunk),
		running:   true,
		keHistory: append(make([]float64, 0, historyCapacity), ke),
		initialKE: ke,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the world.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "n":
			m.reseed()
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.styles = NewStyles(m.theme)
		case "g":
			if m.recording {
				m.flash(m.saveGIF())
				m.recording = false
				m.gifFrames = nil
			} else {
				m.recording = true
				m.gifFrames = make([]*image.Paletted, 0)
			}
		case "y":
			if err := clipboard.WriteAll(m.statsReport()); err != nil {
				m.flash(fmt.Sprintf("clipboard: %v", err))
			} else {
				m.flash("stats copied to clipboard")
			}
		}
	case tea.MouseMsg:
		m.trackPointer(msg.X, msg.Y)
	case tea.WindowSizeMsg:
		m.fitCanvas(msg.Width, msg.Height)
	case TickMsg:
		if m.running {
			info := m.world.Advance()
			m.collisions += info.Collisions
			m.wallHits += info.WallHits
			m.keHistory = append(m.keHistory, m.world.TotalKineticEnergy())
			if len(m.keHistory) > historyCapacity {
				m.keHistory = m.keHistory[1:]
			}
		}
		m.draw()
		if m.recording {
			m.captureFrame()
		}
		if m.noticeLeft > 0 {
			m.noticeLeft--
			if m.noticeLeft == 0 {
				m.notice = ""
			}
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) flash(msg string) {
	if msg == "" {
		return
	}
	m.notice = msg
	m.noticeLeft = noticeTicks
}

// reset restores the initial placement and zeroes the counters.
func (m *Model) reset() {
	m.world.Reset()
	m.collisions = 0
	m.wallHits = 0
	m.initialKE = m.world.TotalKineticEnergy()
	m.keHistory = append(m.keHistory[:0], m.initialKE)
}

// reseed builds a fresh world from the config with a wall-clock seed.
func (m *Model) reseed() {
	cfg := *m.cfg
	cfg.Seed = time.Now().UnixNano()
	world, err := cfg.NewWorld()
	if err != nil {
		m.flash(fmt.Sprintf("reseed: %v", err))
		return
	}
	m.world = world
	m.collisions = 0
	m.wallHits = 0
	m.initialKE = world.TotalKineticEnergy()
	m.keHistory = append(m.keHistory[:0], m.initialKE)
	m.flash("new arena")
}

// fitCanvas sizes the canvas to the terminal, reserving the sidebar.
func (m *Model) fitCanvas(termW, termH int) {
	w := termW - statsPanelWidth - 4
	h := termH - 3
	if w < 30 {
		w = 30
	}
	if w > 140 {
		w = 140
	}
	if h < 10 {
		h = 10
	}
	if h > 44 {
		h = 44
	}
	m.canvas = NewCanvas(w, h)
}

// fitTransform maps arena coordinates onto the dot grid, preserving
// aspect so discs stay round.
func fitTransform(worldW, worldH float64, dotsW, dotsH int) (scale, offX, offY float64) {
	availW, availH := float64(dotsW-4), float64(dotsH-4)
	scale = availW / worldW
	if s := availH / worldH; s < scale {
		scale = s
	}
	offX = (float64(dotsW) - worldW*scale) / 2
	offY = (float64(dotsH) - worldH*scale) / 2
	return scale, offX, offY
}

// trackPointer maps a terminal cell to arena coordinates and feeds the
// world pointer. Cells outside the arena clear it.
func (m *Model) trackPointer(cellX, cellY int) {
	w, h := m.world.Bounds()
	dotsW, dotsH := m.canvas.DotSize()
	scale, offX, offY := fitTransform(w, h, dotsW, dotsH)

	// The canvas panel sits at the view origin inside a one-cell border.
	dotX := float64((cellX - 1) * 2)
	dotY := float64((cellY - 1) * 4)
	wx := (dotX - offX) / scale
	wy := (dotY - offY) / scale
	if wx < 0 || wx > w || wy < 0 || wy > h {
		m.world.ClearPointer()
		return
	}
	m.world.PointAt(engine.Vec2{X: wx, Y: wy})
}

func (m *Model) draw() {
	m.canvas.Clear()
	w, h := m.world.Bounds()
	dotsW, dotsH := m.canvas.DotSize()
	scale, offX, offY := fitTransform(w, h, dotsW, dotsH)

	m.canvas.DrawRect(int(offX)-1, int(offY)-1, int(offX+w*scale)+1, int(offY+h*scale)+1)

	m.snap = m.world.SnapshotInto(m.snap)
	for _, b := range m.snap {
		cx := int(offX + b.Pos.X*scale)
		cy := int(offY + b.Pos.Y*scale)
		r := int(b.Radius * scale)
		if r < 1 {
			r = 1
		}
		m.canvas.FillCircle(cx, cy, r)
		if b.Highlight {
			m.canvas.DrawCircle(cx, cy, r+2)
		}
	}
}

func (m *Model) drift() float64 {
	if m.initialKE == 0 || len(m.keHistory) == 0 {
		return 0
	}
	d := m.keHistory[len(m.keHistory)-1] - m.initialKE
	if d < 0 {
		d = -d
	}
	return d / m.initialKE
}

func (m *Model) meanSpeed() float64 {
	if len(m.snap) == 0 {
		return 0
	}
	total := 0.0
	for _, b := range m.snap {
		total += b.Speed()
	}
	return total / float64(len(m.snap))
}

func (m *Model) statsReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "particlebox %s\n", m.cfg.Name)
	fmt.Fprintf(&b, "frame: %d  bodies: %d\n", m.world.Frame(), m.world.Count())
	w, h := m.world.Bounds()
	fmt.Fprintf(&b, "arena: %gx%g\n", w, h)
	if len(m.keHistory) > 0 {
		fmt.Fprintf(&b, "kinetic energy: %.4f (drift %.2e)\n", m.keHistory[len(m.keHistory)-1], m.drift())
	}
	fmt.Fprintf(&b, "momentum: %.4f\n", m.world.TotalMomentum().Len())
	fmt.Fprintf(&b, "collisions: %d  wall hits: %d\n", m.collisions, m.wallHits)
	return b.String()
}

// View renders the canvas panel and the stats sidebar.
func (m Model) View() string {
	m.draw()
	canvasView := m.styles.Canvas.Render(strings.TrimRight(m.canvas.String(), "\n"))

	var s strings.Builder
	s.WriteString(m.styles.Header.Render("PARTICLEBOX") + "\n")

	status := m.styles.Running.Render("RUNNING")
	if !m.running {
		status = m.styles.Paused.Render("PAUSED")
	}
	if m.recording {
		status += " " + m.styles.Recording.Render("REC")
	}
	s.WriteString(status + "\n\n")

	w, h := m.world.Bounds()
	s.WriteString(m.styles.Label.Render("Preset") + m.styles.Value.Render(m.cfg.Name) + "\n")
	s.WriteString(m.styles.Label.Render("Arena") + m.styles.Value.Render(fmt.Sprintf("%.0f x %.0f", w, h)) + "\n")
	s.WriteString(m.styles.Label.Render("Bodies") + m.styles.Value.Render(fmt.Sprintf("%d", m.world.Count())) + "\n")
	s.WriteString(m.styles.Label.Render("Frame") + m.styles.Value.Render(fmt.Sprintf("%d", m.world.Frame())) + "\n")

	ke := m.initialKE
	if len(m.keHistory) > 0 {
		ke = m.keHistory[len(m.keHistory)-1]
	}
	s.WriteString(m.styles.Label.Render("Energy") + m.styles.Value.Render(fmt.Sprintf("%.3f", ke)) + "\n")
	s.WriteString(m.styles.Label.Render("Drift") + m.styles.Value.Render(fmt.Sprintf("%.2e", m.drift())) + "\n")
	s.WriteString(m.styles.Label.Render("Momentum") + m.styles.Value.Render(fmt.Sprintf("%.3f", m.world.TotalMomentum().Len())) + "\n")

	frames := m.world.Frame()
	rate := 0.0
	if frames > 0 {
		rate = float64(m.collisions) / float64(frames)
	}
	s.WriteString(m.styles.Label.Render("Collisions") + m.styles.Value.Render(fmt.Sprintf("%d (%.2f/frame)", m.collisions, rate)) + "\n")
	s.WriteString(m.styles.Label.Render("Wall hits") + m.styles.Value.Render(fmt.Sprintf("%d", m.wallHits)) + "\n")

	speedCap := m.cfg.MaxSpeed
	if speedCap <= 0 {
		speedCap = engine.DefaultMaxSpeed
	}
	s.WriteString(m.styles.Label.Render("Mean speed") + m.styles.ProgressBar(m.meanSpeed()/speedCap, 12) + "\n")

	for i, b := range m.snap {
		if !b.Highlight {
			continue
		}
		s.WriteString("\n" + m.styles.Accent.Render(
			fmt.Sprintf("> body %d  r=%.1f m=%.1f v=%.2f", i, b.Radius, b.Mass, b.Speed())) + "\n")
		break
	}

	if len(m.keHistory) > 1 {
		chart := asciigraph.Plot(m.keHistory,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("kinetic energy"))
		s.WriteString(m.styles.Graph.Render(chart) + "\n")
	}

	if m.notice != "" {
		s.WriteString("\n" + m.styles.Notice.Render(m.notice) + "\n")
	}

	s.WriteString(m.styles.Separator(30) + "\n")
	s.WriteString(m.styles.Help.Render("SP:Pause R:Reset N:New T:Theme\nG:Record Y:Copy Q:Quit"))

	statsView := m.styles.Stats.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// captureFrame rasterizes the braille grid into a 2-color paletted
// image, one block per dot.
func (m *Model) captureFrame() {
	charW, charH := 8, 16
	imgW, imgH := m.canvas.Width*charW, m.canvas.Height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})

	dotW, dotH := charW/2, charH/4
	for row := 0; row < m.canvas.Height; row++ {
		for col := 0; col < m.canvas.Width; col++ {
			r := m.canvas.cells[row][col]
			if r <= 0x2800 {
				continue
			}
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if r&brailleDots[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, 1)
						}
					}
				}
			}
		}
	}
	m.gifFrames = append(m.gifFrames, img)
}

func (m *Model) saveGIF() string {
	if len(m.gifFrames) == 0 {
		return "nothing recorded"
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.gifFrames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(gifFileName)
	if err != nil {
		return fmt.Sprintf("gif: %v", err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		return fmt.Sprintf("gif: %v", err)
	}
	return fmt.Sprintf("saved %s (%d frames)", gifFileName, len(anim.Image))
}

// WithTheme returns the model recolored to the named theme.
func (m Model) WithTheme(name string) Model {
	m.theme = GetTheme(name)
	m.styles = NewStyles(m.theme)
	return m
}

// Run starts the live terminal host and blocks until quit. An empty
// theme name keeps the default.
func Run(cfg *config.Config, theme string) error {
	world, err := cfg.NewWorld()
	if err != nil {
		return err
	}
	m := NewModel(cfg, world)
	if theme != "" {
		m = m.WithTheme(theme)
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
