package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/arscene/geom"
	"github.com/plus3/arscene/sandbox"
	"github.com/plus3/arscene/scene"
	"github.com/plus3/arscene/scene/manipulate"
	"github.com/plus3/arscene/session"
	"go.uber.org/zap"
)

const (
	walkStep = 0.1
	turnStep = 0.1
	helpLine = "wasd walk  q/e turn  space fire  n add  x del  tab next  r/t/y rotate (R/T/Y back)  +/- scale  h/l j/k u/i move  c carry  m texture  esc quit"
)

var textures = []string{"", "wood", "brick", "marble"}

var runeActions = map[rune]struct {
	action manipulate.Action
	sign   int
}{
	'r': {manipulate.RotateX, 1}, 'R': {manipulate.RotateX, -1},
	't': {manipulate.RotateY, 1}, 'T': {manipulate.RotateY, -1},
	'y': {manipulate.RotateZ, 1}, 'Y': {manipulate.RotateZ, -1},
	'+': {manipulate.Scale, 1}, '=': {manipulate.Scale, 1}, '-': {manipulate.Scale, -1},
	'l': {manipulate.TranslateX, 1}, 'h': {manipulate.TranslateX, -1},
	'j': {manipulate.TranslateZ, 1}, 'k': {manipulate.TranslateZ, -1},
	'u': {manipulate.TranslateY, 1}, 'i': {manipulate.TranslateY, -1},
	'n': {manipulate.AddObject, 1},
	'x': {manipulate.DeleteObject, 1},
}

// App renders the session into a terminal while the session's own tick
// loop runs. Input arrives on tcell's event goroutine and is marshalled
// onto the tick goroutine by the session.
type App struct {
	screen   tcell.Screen
	session  *session.Session
	renderer *sandbox.Renderer
	tracker  *sandbox.Tracker
	sounds   *Sounds
	log      *zap.Logger

	cellWidth  float64
	status     string
	collisions uint64
}

func NewApp(s *session.Session, renderer *sandbox.Renderer, tracker *sandbox.Tracker, sounds *Sounds, logger *zap.Logger) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()

	return &App{
		screen:    screen,
		session:   s,
		renderer:  renderer,
		tracker:   tracker,
		sounds:    sounds,
		log:       logger,
		cellWidth: 0.1,
	}, nil
}

// Run draws at fps until the user quits.
func (a *App) Run(fps int) {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !a.handleInput(ev) {
				return
			}
		case <-ticker.C:
			a.draw()
		}
	}
}

func (a *App) Close() {
	a.screen.Fini()
}

func (a *App) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyTab:
			a.selectNext()
			return true
		case tcell.KeyRune:
		default:
			return true
		}

		r := ev.Rune()
		if ra, ok := runeActions[r]; ok {
			a.report(a.session.Dispatch(ra.action, ra.sign))
			return true
		}

		switch r {
		case 'w':
			a.tracker.Walk(mgl64.Vec3{0, 0, -walkStep}, 0)
		case 's':
			a.tracker.Walk(mgl64.Vec3{0, 0, walkStep}, 0)
		case 'a':
			a.tracker.Walk(mgl64.Vec3{-walkStep, 0, 0}, 0)
		case 'd':
			a.tracker.Walk(mgl64.Vec3{walkStep, 0, 0}, 0)
		case 'q':
			a.tracker.Walk(mgl64.Vec3{}, turnStep)
		case 'e':
			a.tracker.Walk(mgl64.Vec3{}, -turnStep)
		case ' ':
			if _, err := a.session.Fire(); err == nil {
				a.sounds.Fire()
			} else {
				a.status = err.Error()
			}
		case 'c':
			a.session.SetCarrying(!a.session.Carrying())
		case 'm':
			a.cycleTexture()
		case 'z':
			a.cellWidth = min(a.cellWidth*1.25, 1)
		case 'Z':
			a.cellWidth = max(a.cellWidth/1.25, 0.01)
		}

	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) report(id scene.RecordID, err error) {
	switch {
	case err == nil:
		a.status = fmt.Sprintf("ok #%d", id.Serial())
	case errors.Is(err, scene.ErrNoSelection):
		a.status = "select something first (tab)"
	default:
		a.status = err.Error()
	}
}

func (a *App) selectNext() {
	current, hasCurrent := a.session.Selection()

	var targets []scene.Handle
	for _, v := range a.renderer.Visuals() {
		if v.Material.Kind != scene.KindBullet {
			targets = append(targets, v.Handle)
		}
	}
	if len(targets) == 0 {
		return
	}

	next := targets[0]
	if hasCurrent {
		for i, h := range targets {
			if h == current.Handle {
				next = targets[(i+1)%len(targets)]
				break
			}
		}
	}
	if err := a.session.Select(next); err != nil {
		a.status = err.Error()
	}
}

func (a *App) cycleTexture() {
	rec, ok := a.session.Selection()
	if !ok {
		return
	}
	visual, ok := a.renderer.Visual(rec.Handle)
	if !ok {
		return
	}

	material := visual.Material
	for i, tex := range textures {
		if tex == material.Texture {
			material.Texture = textures[(i+1)%len(textures)]
			break
		}
	}
	if err := a.session.SetMaterial(material); err != nil {
		a.status = err.Error()
	}
}

func (a *App) draw() {
	a.screen.Clear()
	cols, rows := a.screen.Size()
	const footer = 4

	observer, tracking := a.tracker.ObserverPose()
	grid := Grid{Cols: cols, Rows: max(rows-footer, 1), CellWidth: a.cellWidth}
	if tracking {
		grid.Center = observer.Position
	}

	selected, hasSelection := a.session.Selection()
	for _, v := range a.renderer.Visuals() {
		x, y, ok := grid.Cell(v.Pose.Position)
		if !ok {
			continue
		}
		style := tcell.StyleDefault
		if tint := v.Material.Tint; tint != ([3]uint8{}) {
			style = style.Foreground(tcell.NewRGBColor(int32(tint[0]), int32(tint[1]), int32(tint[2])))
		}
		if hasSelection && v.Handle == selected.Handle {
			style = style.Reverse(true)
		}
		a.screen.SetContent(x, y, Glyph(v.Material.Kind), nil, style)
	}

	if tracking {
		if x, y, ok := grid.Cell(observer.Position); ok {
			a.screen.SetContent(x, y, HeadingGlyph(observer.Forward()), nil,
				tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true))
		}
	}

	stats := a.session.Stats()
	if stats.Collisions > a.collisions {
		a.sounds.Hit()
		a.collisions = stats.Collisions
	}

	desc := strings.SplitN(a.session.CurrentDescription(), "\n", 2)[0]
	lines := []string{
		fmt.Sprintf("targets %d  projectiles %d  hits %d  spawned %d  carrying %t  tick %d",
			stats.Registry.Targets, stats.Registry.Projectiles, stats.Collisions, stats.Spawned,
			a.session.Carrying(), stats.Scheduler.Ticks),
		desc,
		a.status,
		helpLine,
	}
	if !tracking {
		lines[2] = "tracking lost"
	}
	for i, line := range lines {
		a.drawText(0, rows-footer+i, line, tcell.StyleDefault.Foreground(tcell.ColorSilver))
	}

	a.screen.Show()
}

func (a *App) drawText(x, y int, s string, style tcell.Style) {
	for i, r := range s {
		a.screen.SetContent(x+i, y, r, nil, style)
	}
}

// startPose is where the observer begins, at eye height.
func startPose() geom.Pose {
	return geom.At(mgl64.Vec3{0, 1.5, 0})
}
