package tele

import (
	"context"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/juju/errors"
	"github.com/temoto/alive/v2"
	"github.com/temoto/spq"
	"github.com/temoto/till/helpers"
	"github.com/temoto/till/log2"
	tele_config "github.com/temoto/till/tele/config"
)

const (
	DefaultNetworkTimeout = 30 * time.Second
	defaultRetryDelay     = 5 * time.Second
	defaultRetryMax       = 5 * time.Minute
)

// Tele contract:
// - Init() fails only with invalid config, network issues ignored
// - Sale/Error block at most for disk write,
//   network may be slow or absent, messages are delivered in background
// - Close() stops background delivery, undelivered messages stay on disk
// - messages delivered at least once
type tele struct {
	config    tele_config.Config
	log       *log2.Log
	transport Transporter
	q         *spq.Queue
	alive     *alive.Alive
	onCommand CommandFunc
	tillId    int32
	retry     helpers.Backoff // qworker only
}

func New() Teler { return &tele{} }

// NewWithTransporter is for tests.
func NewWithTransporter(trans Transporter) Teler { return &tele{transport: trans} }

func (self *tele) Init(ctx context.Context, log *log2.Log, teleConfig tele_config.Config, onCommand CommandFunc) error {
	self.config = teleConfig
	level := log2.LInfo
	if self.config.LogDebug {
		level = log2.LDebug
	}
	self.log = log.Clone(level)
	// own errors must not loop back into tele
	self.log.SetErrorFunc(nil)
	if !self.config.Enabled {
		return nil
	}
	if self.config.PersistPath == "" {
		return errors.NotValidf("tele persist_path empty")
	}
	self.tillId = int32(self.config.TillId)
	self.onCommand = onCommand
	self.retry = helpers.Backoff{
		Min: secondsDefault(self.config.RetryDelaySec, defaultRetryDelay),
		Max: secondsDefault(self.config.RetryMaxSec, defaultRetryMax),
		K:   2,
		Res: time.Second,
	}

	// queue first, transport may deliver persisted session commands during Init
	var err error
	self.q, err = spq.Open(self.config.PersistPath)
	if err != nil {
		return errors.Annotate(err, "tele queue")
	}

	if self.transport == nil { // production path
		self.transport = &transportMqtt{}
	}
	if err = self.transport.Init(ctx, self.log, teleConfig, self.onCommandMessage); err != nil {
		if errClose := self.q.Close(); errClose != nil {
			self.log.Errorf("tele queue close err=%v", errClose)
		}
		return errors.Annotate(err, "tele transport")
	}

	self.alive = alive.NewAlive()
	self.alive.Add(1)
	go self.qworker()
	return nil
}

func (self *tele) Close() {
	if !self.config.Enabled || self.alive == nil {
		return
	}
	self.alive.Stop()
	if err := self.q.Close(); err != nil {
		self.log.Errorf("tele queue close err=%v", err)
	}
	self.alive.Wait()
	self.transport.Close()
}

func (self *tele) Sale(s *Sale) {
	if !self.config.Enabled {
		return
	}
	if s.TillId == 0 {
		s.TillId = self.tillId
	}
	if s.Time == 0 {
		s.Time = time.Now().UnixNano()
	}
	if err := self.qpushTagProto(qSale, s); err != nil {
		self.log.Errorf("CRITICAL tele sale=%s err=%v", s.String(), err)
	}
}

func (self *tele) Error(e error) {
	if !self.config.Enabled || e == nil {
		return
	}
	tm := &Error{
		TillId:  self.tillId,
		Time:    time.Now().UnixNano(),
		Message: e.Error(),
	}
	if err := self.qpushTagProto(qError, tm); err != nil {
		self.log.Errorf("CRITICAL tele error=%s err=%v", e.Error(), err)
	}
}

// denote value type in persistent queue bytes form
const (
	qResponse byte = 1
	qSale     byte = 2
	qError    byte = 3
)

func (self *tele) qworker() {
	defer self.alive.Done()
	for {
		box, err := self.q.Peek()
		switch err {
		case nil:
			b := box.Bytes()
			del, err := self.qhandle(b)
			if err != nil {
				self.log.Errorf("tele qhandle b=%x err=%v", b, err)
			}
			if del {
				err = self.q.Delete(box)
			} else {
				err = self.q.DeletePush(box)
			}
			if err != nil && err != spq.ErrClosed {
				self.log.Errorf("tele queue update b=%x err=%v", b, err)
			}
			if delay := self.retry.Update(del); delay != 0 {
				self.log.Debugf("tele retry delay=%v", delay)
				select {
				case <-time.After(delay):
				case <-self.alive.StopChan():
					return
				}
			}

		case spq.ErrClosed:
			if !self.alive.IsRunning() { // success path
				return
			}
			self.log.Errorf("CRITICAL tele spq closed unexpectedly")
			return

		default:
			self.log.Errorf("CRITICAL tele spq err=%v", err)
			select {
			case <-time.After(self.retry.Failure()):
			case <-self.alive.StopChan():
				return
			}
		}
	}
}

// qhandle returns true when message should be removed from queue.
func (self *tele) qhandle(b []byte) (bool, error) {
	if len(b) == 0 {
		return true, errors.Errorf("tele spq peek=empty")
	}
	// payload is sent as stored, decoding only validates it
	var pb proto.Message
	var topic string
	switch b[0] {
	case qResponse:
		pb, topic = new(Response), topicResponse
	case qSale:
		pb, topic = new(Sale), topicSale
	case qError:
		pb, topic = new(Error), topicError
	default:
		return true, errors.Errorf("unknown kind=%d", b[0])
	}
	payload := b[1:]
	if err := proto.Unmarshal(payload, pb); err != nil {
		return true, errors.Annotatef(err, "kind=%d", b[0])
	}
	return self.transport.Send(topic, payload), nil
}

func (self *tele) qpushTagProto(tag byte, pb proto.Message) error {
	b, err := proto.Marshal(pb)
	if err != nil {
		return errors.Annotate(err, "tele marshal")
	}
	buf := make([]byte, 0, len(b)+1)
	buf = append(buf, tag)
	buf = append(buf, b...)
	return self.q.Push(buf)
}

func secondsDefault(x int, def time.Duration) time.Duration {
	if x == 0 {
		return def
	}
	return time.Duration(x) * time.Second
}
