package tele

import (
	"context"

	"github.com/temoto/till/log2"
	tele_config "github.com/temoto/till/tele/config"
)

// CommandFunc executes remote sale command, result is sent back as Response.
type CommandFunc func(ctx context.Context, cmd *Command) *Response

// Teler is telemetry client, till side.
type Teler interface {
	Init(ctx context.Context, log *log2.Log, config tele_config.Config, onCommand CommandFunc) error
	Close()
	Sale(*Sale)
	Error(error)
}

type Noop struct{}

var _ Teler = Noop{} // compile-time interface test

func (Noop) Init(context.Context, *log2.Log, tele_config.Config, CommandFunc) error { return nil }
func (Noop) Close()                                                                {}
func (Noop) Sale(*Sale)                                                            {}
func (Noop) Error(error)                                                           {}
