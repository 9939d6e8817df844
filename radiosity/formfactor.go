package radiosity

import (
	"sync"
)

// FormFactor estimates the fraction of light leaving the hemicube's shooter that reaches receiver.
//
// Receivers whose center is on or behind the shooter's plane get 0 without being projected.
// Receivers whose normal points away from the shooter's center also get 0 without being
// projected. That second cull goes beyond a plain hemicube, which would credit a back-facing
// receiver with whatever it covers; one-sided patches cannot receive light from behind.
// A degenerate receiver gets 0 and a logged diagnostic. Errors are internal geometry failures.
func (h *Hemicube) FormFactor(receiver *Patch) (float64, error) {
	if !receiver.valid() {
		h.cfg.logger().Printf("form factor: skipping degenerate receiver %v", receiver)
		return 0, nil
	}
	toReceiver := receiver.Center().Sub(h.origin)
	if toReceiver.Dot(h.Z) <= 0 {
		return 0, nil
	}
	if toReceiver.Dot(receiver.Normal()) >= 0 {
		return 0, nil
	}

	cov := make(Coverage)
	if err := h.Project(receiver, cov); err != nil {
		return 0, err
	}
	return h.CoveredWeight(cov, receiver.ID), nil
}

// FormFactor builds a hemicube at shooter, computes the form factor to receiver and discards the hemicube.
func FormFactor(shooter, receiver *Patch, cfg Config) (float64, error) {
	if shooter == receiver {
		return 0, nil
	}
	if !shooter.valid() {
		cfg.logger().Printf("form factor: skipping degenerate shooter %v", shooter)
		return 0, nil
	}
	h, err := NewHemicube(shooter.Center(), shooter.Normal(), cfg)
	if err != nil {
		return 0, err
	}
	return h.FormFactor(receiver)
}

// Engine computes form factors and reuses the hemicube of the most recent shooter.
//
// Safe for concurrent use; callers shooting from many patches at once should use one Engine
// per goroutine or ComputeMatrix to avoid rebuilding hemicubes.
type Engine struct {
	cfg Config

	mu      sync.Mutex
	shooter *Patch
	cube    *Hemicube
}

func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Hemicube returns the hemicube for shooter, building it unless it is the cached one.
func (e *Engine) Hemicube(shooter *Patch) (*Hemicube, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.shooter == shooter && e.cube != nil {
		return e.cube, nil
	}
	h, err := NewHemicube(shooter.Center(), shooter.Normal(), e.cfg)
	if err != nil {
		return nil, err
	}
	e.shooter, e.cube = shooter, h
	return h, nil
}

func (e *Engine) FormFactor(shooter, receiver *Patch) (float64, error) {
	if shooter == receiver {
		return 0, nil
	}
	if !shooter.valid() {
		e.cfg.logger().Printf("form factor: skipping degenerate shooter %v", shooter)
		return 0, nil
	}
	h, err := e.Hemicube(shooter)
	if err != nil {
		return 0, err
	}
	return h.FormFactor(receiver)
}
