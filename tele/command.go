package tele

import (
	"context"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/juju/errors"
)

var ErrDeadline = errors.New("command deadline exceeded")

func (self *tele) onCommandMessage(ctx context.Context, payload []byte) bool {
	cmd := new(Command)
	if err := proto.Unmarshal(payload, cmd); err != nil {
		self.log.Errorf("tele command parse raw=%x err=%v", payload, err)
		return true
	}
	self.log.Debugf("tele command raw=%x cmd=%s", payload, cmd.String())

	var r *Response
	switch {
	case cmd.Deadline != 0 && time.Now().UnixNano() > cmd.Deadline:
		r = &Response{Error: ErrDeadline.Error()}
	case self.onCommand == nil:
		r = &Response{Error: "commands not supported"}
	default:
		r = self.onCommand(ctx, cmd)
		if r == nil {
			r = &Response{}
		}
	}
	r.CommandId = cmd.Id
	if err := self.qpushTagProto(qResponse, r); err != nil {
		self.log.Errorf("CRITICAL tele command=%s response=%s err=%v", cmd.String(), r.String(), err)
	}
	return true
}
