package ebiten_test

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/arscene/config"
	"github.com/plus3/arscene/debugui"
	debugui_ebiten "github.com/plus3/arscene/debugui/ebiten"
	"github.com/plus3/arscene/sandbox"
	"github.com/plus3/arscene/session"
)

// Game drives a session one tick per Ebiten update and overlays the panels.
type Game struct {
	session *session.Session
	backend *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	return g.backend.Frame(g.session.Step)
}

func (g *Game) Draw(screen *ebiten.Image) {
	// draw the scene here
	g.backend.Overlay(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	backend := debugui_ebiten.NewImguiBackend("arscene debug", 1280, 720)

	renderer := sandbox.NewRenderer(nil)
	s, err := session.New(session.Options{
		Config:   config.Default(),
		Tracker:  sandbox.NewTracker(),
		Renderer: renderer,
	})
	if err != nil {
		panic(err)
	}
	debugui.Attach(s, renderer)

	if err := ebiten.RunGame(&Game{session: s, backend: backend}); err != nil {
		panic(err)
	}
}
