// pkg/engine/win_condition_test.go
package engine

import (
	"testing"

	"github.com/opd-ai/asteroid-belt/pkg/event"
	"github.com/opd-ai/asteroid-belt/pkg/physics"
)

// TestWinCondition_ReachPlanet verifies the game ends when the player enters
// the win box
func TestWinCondition_ReachPlanet(t *testing.T) {
	game, space := newTestGame(t)
	won := 0
	game.EventBus.Subscribe(event.PlayerWon, func(event.Event) { won++ })

	game.Update(1.0 / 60)
	if game.Status != GameStatusPlaying {
		t.Fatal("player spawned inside the win box")
	}

	game.Player.Body().SetPosition(game.Planet.Add(physics.Vector2D{X: 150, Y: 150}))
	game.Update(1.0 / 60)
	if game.Status != GameStatusWon || won != 1 {
		t.Fatalf("status %s, won events %d", game.Status, won)
	}

	steps := space.Steps
	game.Update(1.0 / 60)
	if space.Steps != steps || won != 1 {
		t.Error("a won game should not keep simulating")
	}
}

// TestWinCondition_EdgeOfBox verifies the far edges of the box do not count
func TestWinCondition_EdgeOfBox(t *testing.T) {
	game, _ := newTestGame(t)
	game.Player.Body().SetPosition(game.Planet.Add(physics.Vector2D{X: 200, Y: 0}))
	game.Update(1.0 / 60)
	if game.Status != GameStatusPlaying {
		t.Error("the right edge of the win box is outside it")
	}
}

type afterTicks struct{ ticks uint64 }

func (w afterTicks) CheckWinner(g *Game) bool { return g.CurrentTick >= w.ticks }

// TestWinCondition_Custom verifies a custom condition replaces the win box
func TestWinCondition_Custom(t *testing.T) {
	game, _ := newTestGame(t)
	game.CustomWinCondition = afterTicks{ticks: 3}
	game.Player.Body().SetPosition(game.Planet)

	for i := 0; i < 2; i++ {
		game.Update(1.0 / 60)
	}
	if game.Status != GameStatusPlaying {
		t.Fatal("custom condition should override the win box")
	}
	game.Update(1.0 / 60)
	if game.Status != GameStatusWon {
		t.Errorf("status = %s after 3 ticks", game.Status)
	}
	if game.ElapsedTime <= 0 {
		t.Error("elapsed time should advance with the fixed step")
	}
}
