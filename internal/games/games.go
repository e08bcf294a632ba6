// Package games registers every arcade game.
package games

import (
	"github.com/vovakirdan/window-arcade/internal/config"
	"github.com/vovakirdan/window-arcade/internal/games/asteroids"
	"github.com/vovakirdan/window-arcade/internal/games/breakout"
	"github.com/vovakirdan/window-arcade/internal/games/ghosts"
	"github.com/vovakirdan/window-arcade/internal/games/pong"
	"github.com/vovakirdan/window-arcade/internal/registry"
)

// RegisterAll adds every game to reg, configured from set.
func RegisterAll(reg *registry.Registry, set config.Set) {
	asteroids.Register(reg, set.Asteroids)
	breakout.Register(reg, set.Breakout)
	ghosts.Register(reg, set.Ghosts)
	pong.Register(reg, set.Pong)
}
