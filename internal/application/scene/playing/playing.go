// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/gravshift/internal/application/replay"
	"github.com/younwookim/gravshift/internal/application/scene"
	"github.com/younwookim/gravshift/internal/application/session"
	"github.com/younwookim/gravshift/internal/application/state"
	"github.com/younwookim/gravshift/internal/application/system"
	"github.com/younwookim/gravshift/internal/domain/geom"
	"github.com/younwookim/gravshift/internal/infrastructure/config"
	"github.com/younwookim/gravshift/internal/infrastructure/logger"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorFloor      = color.RGBA{60, 60, 80, 255}
	colorPlayer     = color.RGBA{100, 200, 100, 255}
	colorHeading    = color.RGBA{255, 255, 255, 200}
	colorDown       = color.RGBA{255, 120, 60, 255}
	colorPreview    = color.RGBA{120, 180, 255, 255}
	colorCheckpoint = color.RGBA{255, 215, 0, 160}
)

// bannerTime is how long a flow message stays on screen, in seconds
const bannerTime = 2.0

// Playing is the main gameplay scene
type Playing struct {
	session *session.Session
	input   *system.InputSystem
	log     *slog.Logger
	screenW int
	screenH int

	// Hot reload
	loader  *config.Loader
	watcher *config.Watcher

	// Input recording
	recorder   *replay.Recorder
	recordPath string

	banner      string
	bannerTimer float64
}

// New creates a new Playing scene.
// If recordPath is not empty, gameplay will be recorded.
func New(cfg *config.GameConfig, recordPath string, log *slog.Logger) (*Playing, error) {
	if log == nil {
		log = slog.Default()
	}
	sess, err := session.New(cfg.Locomotion, cfg.Stage, log)
	if err != nil {
		return nil, err
	}

	p := &Playing{
		session:    sess,
		input:      system.NewInputSystem(),
		log:        log,
		screenW:    cfg.Locomotion.Display.ScreenWidth,
		screenH:    cfg.Locomotion.Display.ScreenHeight,
		recordPath: recordPath,
	}
	sess.OnReset = p.bindFlow
	p.bindFlow(sess)
	p.startRecording()
	return p, nil
}

// EnableHotReload reapplies the tuning file whenever watcher reports a change
func (p *Playing) EnableHotReload(loader *config.Loader, watcher *config.Watcher) {
	p.loader = loader
	p.watcher = watcher
}

func (p *Playing) bindFlow(s *session.Session) {
	m := s.Flow()
	m.OnCheckpointReached = func(remaining int) {
		p.showBanner(fmt.Sprintf("Checkpoint! %d left", remaining))
	}
	m.OnGameWon = func(int) {
		p.showBanner("STAGE CLEAR")
		p.saveRecording()
	}
	m.OnGameLost = func(remaining int) {
		p.showBanner(fmt.Sprintf("LOST with %d checkpoints left", remaining))
		p.saveRecording()
	}
}

func (p *Playing) showBanner(msg string) {
	p.banner = msg
	p.bannerTimer = bannerTime
}

func (p *Playing) startRecording() {
	if p.recordPath == "" {
		p.recorder = nil
		return
	}
	p.recorder = replay.NewRecorder(p.session.StageConfig().ID, 1.0/float64(p.session.Config().Display.Framerate))
	p.log.Info("recording enabled", "path", p.recordPath)
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	p.reload()

	flow := p.session.Flow()
	switch {
	case flow.State().Finished():
		if inpututil.IsKeyJustPressed(ebiten.KeyZ) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			if err := p.restart(); err != nil {
				return nil, err
			}
		}
		return nil, nil
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		flow.SetPaused(flow.State() != state.StatePaused)
		return nil, nil
	case flow.State() == state.StatePaused:
		return nil, nil
	}

	// F5: Save recording manually
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		p.saveRecording()
	}

	p.step(p.input.GetInput(), dt)
	return nil, nil // nil = stay on this scene
}

// step records and simulates one frame
func (p *Playing) step(input system.InputState, dt float64) {
	if p.recorder != nil {
		p.recorder.RecordFrame(input)
	}
	p.session.Frame(input, dt)

	if p.bannerTimer > 0 {
		p.bannerTimer -= dt
	}
}

// reload applies pending tuning file changes
func (p *Playing) reload() {
	if p.watcher == nil || p.loader == nil {
		return
	}
	for _, err := range p.watcher.DrainErrors() {
		p.log.Warn("config watcher error", "error", err)
	}

	changed := false
	for _, path := range p.watcher.Drain() {
		if config.IsConfigFile(path) {
			changed = true
		}
	}
	if !changed {
		return
	}

	cfg, err := p.loader.LoadLocomotion()
	if err != nil {
		p.log.Warn("config reload failed, keeping current tuning", "error", err)
		return
	}
	logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	p.session.SetConfig(cfg)
	p.log.Info("tuning reloaded", "file", config.LocomotionFile)
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordPath
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		p.log.Warn("failed to save recording", "error", err)
	} else {
		p.log.Info("recording saved", "path", filename, "frames", p.recorder.FrameCount())
	}
}

func (p *Playing) restart() error {
	if err := p.session.Restart(); err != nil {
		return err
	}
	p.banner = ""
	p.bannerTimer = 0
	p.startRecording()
	return nil
}

// OnEnter implements scene.Scene
func (p *Playing) OnEnter() {
	p.log.Info("stage started", "stage", p.session.StageConfig().ID)
}

// OnExit saves any recording in progress
func (p *Playing) OnExit() {
	if p.recorder != nil && p.recorder.IsRecording() {
		p.saveRecording()
		p.recorder.Stop()
	}
}

// Draw renders a top-down view of the stage
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	tile, offX, offY := p.viewport()
	p.drawStage(screen, tile, offX, offY)
	p.drawCheckpoints(screen, tile, offX, offY)
	p.drawPlayer(screen, tile, offX, offY)
	p.drawUI(screen)

	switch p.session.Flow().State() {
	case state.StatePaused:
		p.drawOverlay(screen, color.RGBA{0, 0, 0, 128}, "PAUSED\n\nPress ESC to resume")
	case state.StateLost:
		p.drawOverlay(screen, color.RGBA{100, 0, 0, 180}, "GAME OVER\n\nPress Z to restart")
	case state.StateWon:
		p.drawOverlay(screen, color.RGBA{0, 80, 0, 180}, "STAGE CLEAR\n\nPress Z to play again")
	}
}

// viewport fits the stage's X/Z footprint on screen
func (p *Playing) viewport() (tile, offX, offY float64) {
	st := p.session.Stage()
	tile = math.Floor(math.Min(float64(p.screenW)/float64(st.Width), float64(p.screenH)/float64(st.Depth)))
	if tile < 1 {
		tile = 1
	}
	offX = (float64(p.screenW) - tile*float64(st.Width)) / 2
	offY = (float64(p.screenH) - tile*float64(st.Depth)) / 2
	return tile, offX, offY
}

// drawStage shades each column by the height of its top block
func (p *Playing) drawStage(screen *ebiten.Image, tile, offX, offY float64) {
	st := p.session.Stage()
	for z := 0; z < st.Depth; z++ {
		for x := 0; x < st.Width; x++ {
			top := -1
			for y := st.Height - 1; y >= 0; y-- {
				if st.IsSolid(x, y, z) {
					top = y
					break
				}
			}
			if top < 0 {
				continue
			}
			shade := uint8(20 * top)
			c := color.RGBA{colorFloor.R + shade, colorFloor.G + shade, colorFloor.B + shade, 255}
			ebitenutil.DrawRect(screen, offX+float64(x)*tile, offY+float64(z)*tile, tile-1, tile-1, c)
		}
	}
}

func (p *Playing) drawCheckpoints(screen *ebiten.Image, tile, offX, offY float64) {
	for _, cp := range p.session.Stage().Checkpoints {
		if cp.Reached {
			continue
		}
		w := (cp.Bounds.Max[0] - cp.Bounds.Min[0]) * tile
		h := (cp.Bounds.Max[2] - cp.Bounds.Min[2]) * tile
		ebitenutil.DrawRect(screen, offX+cp.Bounds.Min[0]*tile, offY+cp.Bounds.Min[2]*tile, w, h, colorCheckpoint)
	}
}

func (p *Playing) drawPlayer(screen *ebiten.Image, tile, offX, offY float64) {
	body := p.session.Body()
	c := body.Center()
	half := body.WorldHalfExtents()
	cx := offX + c[0]*tile
	cy := offY + c[2]*tile

	ebitenutil.DrawRect(screen, cx-half[0]*tile, cy-half[2]*tile, 2*half[0]*tile, 2*half[2]*tile, colorPlayer)

	heading := p.session.Character().Heading()
	ebitenutil.DrawLine(screen, cx, cy, cx+heading[0]*tile, cy+heading[2]*tile, colorHeading)

	gravity := p.session.Character().Gravity()
	down := gravity.Down()
	ebitenutil.DrawLine(screen, cx, cy, cx+down[0]*tile*0.8, cy+down[2]*tile*0.8, colorDown)
	if pending, ok := gravity.PendingDown(); ok {
		ebitenutil.DrawLine(screen, cx, cy, cx+pending[0]*tile, cy+pending[2]*tile, colorPreview)
	}
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, p.statusText())

	if p.bannerTimer > 0 && p.banner != "" {
		ebitenutil.DebugPrintAt(screen, p.banner, p.screenW/2-3*len(p.banner), p.screenH-20)
	}
}

// statusText is the debug readout in the top left corner
func (p *Playing) statusText() string {
	ch := p.session.Character()
	flow := p.session.Flow()
	gravity := ch.Gravity()

	timeLeft := "--"
	if flow.TimeLimited() {
		timeLeft = fmt.Sprintf("%.1f", flow.TimeRemaining())
	}
	phase := gravity.Phase().String()
	if gravity.Phase() == state.GravityCommitting {
		phase += fmt.Sprintf(" %.0f%%", gravity.Progress()*100)
	}
	text := fmt.Sprintf(
		"WASD: Move | Space: Jump | Arrows: Aim | E: Shift | Q/R: Turn | ESC: Pause\n"+
			"state %s  grounded %t  gravity %s\n"+
			"down %s  air %.2f\n"+
			"time %s  checkpoints %d",
		ch.State(), ch.Grounded(), phase,
		formatAxis(gravity.Down()), ch.AirTimeRemaining(),
		timeLeft, flow.CheckpointsRemaining(),
	)
	if p.recorder != nil {
		text += fmt.Sprintf("\nREC %d (F5 save)", p.recorder.FrameCount())
	}
	return text
}

func (p *Playing) drawOverlay(screen *ebiten.Image, c color.RGBA, text string) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), c)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-60, p.screenH/2-20)
}

// formatAxis names a snapped direction, e.g. "-Y"
func formatAxis(v mgl64.Vec3) string {
	axis, ok := geom.SnapToAxis(v)
	if !ok {
		return "?"
	}
	names := [3]string{"X", "Y", "Z"}
	for i := 0; i < 3; i++ {
		switch {
		case axis[i] > 0.5:
			return "+" + names[i]
		case axis[i] < -0.5:
			return "-" + names[i]
		}
	}
	return "?"
}
