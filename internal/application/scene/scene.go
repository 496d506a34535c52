// Package scene defines the screens the game loop switches between.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the game. The loop hands it every frame and swaps
// it out when Update returns a successor.
type Scene interface {
	// Update advances the scene by dt seconds (one rendered frame).
	// A non-nil next replaces this scene; an error stops the game.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter runs each time the scene becomes active.
	OnEnter()

	// OnExit runs when the scene is replaced or the game closes. Scenes
	// flush recordings here.
	OnExit()
}
