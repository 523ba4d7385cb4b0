package tele

import (
	"context"

	"github.com/temoto/till/log2"
	tele_config "github.com/temoto/till/tele/config"
)

// Tele transport contract:
// - Init fails only with invalid config, ignores network errors
// - Send returns true when message is delivered or retry is pointless;
//   false puts message back in queue
// - application may start without network available
type Transporter interface {
	Init(ctx context.Context, log *log2.Log, teleConfig tele_config.Config, onCommand CommandCallback) error
	Send(topicSuffix string, payload []byte) bool
	Close()
}

type CommandCallback func(context.Context, []byte) bool

const (
	topicSale     = "w/sale"
	topicError    = "w/error"
	topicResponse = "cr"
	topicCommand  = "r/c"
)
