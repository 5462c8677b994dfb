package main

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/arscene/debugui"
	debugui_ebiten "github.com/plus3/arscene/debugui/ebiten"
	"github.com/plus3/arscene/sandbox"
	"github.com/plus3/arscene/scene"
	"github.com/plus3/arscene/scene/manipulate"
	"github.com/plus3/arscene/session"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	walkSpeed = 1.5 // m/s
	turnSpeed = 1.5 // rad/s
)

var (
	backgroundColor = color.RGBA{20, 22, 28, 255}
	gridColor       = color.RGBA{40, 44, 52, 255}
	selectionColor  = color.RGBA{255, 255, 255, 255}
	observerColor   = color.RGBA{90, 220, 120, 255}
	hudColor        = color.RGBA{220, 220, 220, 255}
)

type keyAction struct {
	key    ebiten.Key
	action manipulate.Action
	sign   int
}

// Held keys nudge the selection every frame, like a drag gesture.
var heldActions = []keyAction{
	{ebiten.KeyArrowRight, manipulate.TranslateX, 1},
	{ebiten.KeyArrowLeft, manipulate.TranslateX, -1},
	{ebiten.KeyPageUp, manipulate.TranslateY, 1},
	{ebiten.KeyPageDown, manipulate.TranslateY, -1},
	{ebiten.KeyArrowDown, manipulate.TranslateZ, 1},
	{ebiten.KeyArrowUp, manipulate.TranslateZ, -1},
}

var pressedActions = []keyAction{
	{ebiten.KeyR, manipulate.RotateX, 1},
	{ebiten.KeyT, manipulate.RotateY, 1},
	{ebiten.KeyY, manipulate.RotateZ, 1},
	{ebiten.KeyEqual, manipulate.Scale, 1},
	{ebiten.KeyMinus, manipulate.Scale, -1},
	{ebiten.KeyN, manipulate.AddObject, 1},
	{ebiten.KeyDelete, manipulate.DeleteObject, 1},
	{ebiten.KeyBackspace, manipulate.DeleteObject, 1},
}

// Game draws the sandbox renderer's visuals top-down and drives the
// session one tick per Ebiten update.
type Game struct {
	session  *session.Session
	renderer *sandbox.Renderer
	tracker  *sandbox.Tracker
	backend  *debugui_ebiten.ImguiBackend
	imgui    *debugui.ImguiSystem
	log      *zap.Logger

	view View
	face font.Face
}

func NewGame(s *session.Session, renderer *sandbox.Renderer, tracker *sandbox.Tracker, backend *debugui_ebiten.ImguiBackend, logger *zap.Logger) *Game {
	return &Game{
		session:  s,
		renderer: renderer,
		tracker:  tracker,
		backend:  backend,
		imgui:    debugui.Attach(s, renderer),
		log:      logger,
		view:     View{PixelsPerMeter: 150},
		face:     basicfont.Face7x13,
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if !g.imgui.Input.WantCaptureKeyboard {
		g.handleKeys()
	}
	if !g.imgui.Input.WantCaptureMouse {
		g.handleMouse()
	}

	if pose, ok := g.tracker.ObserverPose(); ok {
		g.view.Center = pose.Position
	}

	return g.backend.Frame(g.session.Step)
}

func (g *Game) handleKeys() {
	dt := 1 / ebiten.ActualTPS()
	if dt <= 0 || dt > 0.1 {
		dt = 1.0 / 60
	}

	var move mgl64.Vec3
	var yaw float64
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		move[2] -= walkSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		move[2] += walkSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		move[0] -= walkSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		move[0] += walkSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		yaw += turnSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		yaw -= turnSpeed * dt
	}
	if move.Len() > 0 || yaw != 0 {
		g.tracker.Walk(move, yaw)
	}

	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	for _, ka := range pressedActions {
		if inpututil.IsKeyJustPressed(ka.key) {
			g.dispatch(ka.action, ka.sign, shift)
		}
	}
	for _, ka := range heldActions {
		if ebiten.IsKeyPressed(ka.key) {
			g.dispatch(ka.action, ka.sign, false)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if _, err := g.session.Fire(); err != nil {
			g.log.Debug("fire", zap.Error(err))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.session.SetCarrying(!g.session.Carrying())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.cycleTexture()
	}
}

func (g *Game) dispatch(action manipulate.Action, sign int, reverse bool) {
	if reverse {
		sign = -sign
	}
	if _, err := g.session.Dispatch(action, sign); err != nil {
		g.log.Debug("action", zap.Stringer("action", action), zap.Error(err))
	}
}

var textures = []string{"", "wood", "brick", "marble"}

func (g *Game) cycleTexture() {
	rec, ok := g.session.Selection()
	if !ok {
		return
	}
	visual, ok := g.renderer.Visual(rec.Handle)
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
	if err := g.session.SetMaterial(material); err != nil {
		g.log.Debug("set material", zap.Error(err))
	}
}

func (g *Game) handleMouse() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if _, err := g.session.Tap(g.view.ToWorld(x, y)); err != nil && !errors.Is(err, scene.ErrNoObserverPose) {
			g.log.Warn("tap", zap.Error(err))
		}
	}

	if _, wheel := ebiten.Wheel(); wheel != 0 {
		g.view.Zoom(1 + wheel*0.1)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.drawGrid(screen)

	selected, hasSelection := g.session.Selection()
	for _, v := range g.renderer.Visuals() {
		g.drawVisual(screen, v, hasSelection && v.Handle == selected.Handle)
	}

	if pose, ok := g.tracker.ObserverPose(); ok {
		x, y := g.view.ToScreen(pose.Position)
		tx, ty := g.view.ToScreen(pose.Ahead(0.3))
		vector.DrawFilledCircle(screen, x, y, 6, observerColor, true)
		vector.StrokeLine(screen, x, y, tx, ty, 2, observerColor, true)
	} else {
		text.Draw(screen, "tracking lost", g.face, 10, 20, hudColor)
	}

	stats := g.session.Stats()
	text.Draw(screen, g.session.CurrentDescription(), g.face, 10, g.view.Height-90, hudColor)
	hud := fmt.Sprintf("targets %d  projectiles %d  hits %d  carrying %t",
		stats.Registry.Targets, stats.Registry.Projectiles, stats.Collisions, g.session.Carrying())
	text.Draw(screen, hud, g.face, 10, g.view.Height-10, hudColor)

	g.backend.Overlay(screen)
}

func (g *Game) drawGrid(screen *ebiten.Image) {
	const extent = 10
	for i := -extent; i <= extent; i++ {
		x0, y0 := g.view.ToScreen(mgl64.Vec3{float64(i), 0, -extent})
		x1, y1 := g.view.ToScreen(mgl64.Vec3{float64(i), 0, extent})
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, gridColor, false)

		x0, y0 = g.view.ToScreen(mgl64.Vec3{-extent, 0, float64(i)})
		x1, y1 = g.view.ToScreen(mgl64.Vec3{extent, 0, float64(i)})
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, gridColor, false)
	}
}

func (g *Game) drawVisual(screen *ebiten.Image, v sandbox.Visual, selected bool) {
	box, ok := g.renderer.Bounds(v.Handle)
	if !ok {
		return
	}
	box = box.Translate(v.Pose.Position)

	x0, y0 := g.view.ToScreen(box.Min)
	x1, y1 := g.view.ToScreen(box.Max)
	w, h := max(x1-x0, 2), max(y1-y0, 2)

	tint := color.RGBA{v.Material.Tint[0], v.Material.Tint[1], v.Material.Tint[2], 255}
	vector.DrawFilledRect(screen, x0, y0, w, h, tint, true)
	if selected {
		vector.StrokeRect(screen, x0-2, y0-2, w+4, h+4, 2, selectionColor, true)
	}

	// heading
	cx, cy := g.view.ToScreen(v.Pose.Position)
	hx, hy := g.view.ToScreen(v.Pose.Ahead(box.Max.X() - v.Pose.Position.X() + 0.05))
	vector.StrokeLine(screen, cx, cy, hx, hy, 1, selectionColor, true)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	g.view.Width, g.view.Height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
