package sim

import "errors"

// Command rejections. None of them change simulation state.
var (
	ErrUnknownTower      = errors.New("sim: unknown tower type")
	ErrCellUnavailable   = errors.New("sim: cell is out of bounds or occupied")
	ErrInsufficientFunds = errors.New("sim: insufficient funds")
	ErrNoTower           = errors.New("sim: no tower at cell")
	ErrAlreadyUpgraded   = errors.New("sim: tower already upgraded")
	ErrWaveInProgress    = errors.New("sim: wave already in progress")
	ErrGameOver          = errors.New("sim: game is over")
	ErrNotStarted        = errors.New("sim: game not started")
	ErrUnknownCommand    = errors.New("sim: unknown command")
	ErrQueueFull         = errors.New("sim: command queue is full")
)
