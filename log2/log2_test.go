package log2

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"log"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog2(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		fun  func(t testing.TB, l *Log) string
	}{
		{"caller/debug", func(t testing.TB, l *Log) string {
			l.SetFlags(log.Lshortfile)
			l.Debugf("drawer total=%d", 42)
			return formatCallerShort(1) + "debug: drawer total=42\n"
		}},
		{"caller/info", func(t testing.TB, l *Log) string {
			l.SetFlags(log.Lshortfile)
			l.Infof("sale status=%s", "OPEN")
			return formatCallerShort(1) + "sale status=OPEN\n"
		}},
		{"caller/printf", func(t testing.TB, l *Log) string {
			l.SetFlags(log.Lshortfile)
			l.Printf("mqtt %s", "connect")
			return formatCallerShort(1) + "mqtt connect\n"
		}},
		{"caller/error", func(t testing.TB, l *Log) string {
			l.SetFlags(log.Lshortfile)
			l.Errorf("problem")
			return formatCallerShort(1) + "error: problem\n"
		}},
		{"prefix", func(t testing.TB, l *Log) string {
			l.SetFlags(0)
			l.SetPrefix("till ")
			l.Info("ready")
			return "till ready\n"
		}},
		{"error-func/error", func(t testing.TB, l *Log) string {
			ech := make(chan error, 1)
			l.SetErrorFunc(func(e error) { ech <- e })
			l.SetFlags(0)
			exactError := fmt.Errorf("one particular issue")
			l.Error(exactError)
			close(ech)
			e := <-ech
			if l == nil {
				assert.Nil(t, e)
			} else {
				assert.Equal(t, exactError, e)
			}
			return "error: one particular issue\n"
		}},
		{"error-func/string", func(t testing.TB, l *Log) string {
			ech := make(chan error, 1)
			l.SetErrorFunc(func(e error) { ech <- e })
			l.SetFlags(0)
			l.Errorf("trouble var=%.1f", 3.4)
			close(ech)
			e := <-ech
			if l == nil {
				assert.Nil(t, e)
			} else {
				assert.Equal(t, "trouble var=3.4", e.Error())
			}
			return "error: trouble var=3.4\n"
		}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name+"/logger=nil", func(t *testing.T) {
			c.fun(t, nil)
		})
		t.Run(c.name, func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			l := NewWriter(buf, LAll)
			expect := c.fun(t, l)
			assert.Equal(t, expect, buf.String())
		})
	}
}

func TestLevel(t *testing.T) {
	t.Parallel()
	buf := bytes.NewBuffer(nil)
	l := NewWriter(buf, LInfo)
	l.SetFlags(0)
	l.Debug("hidden")
	l.Info("shown")
	l.SetLevel(LDebug)
	l.Debug("now shown")
	l.SetLevel(LError)
	l.Info("hidden again")
	assert.Equal(t, "shown\ndebug: now shown\n", buf.String())

	c := l.Clone(LDebug)
	assert.True(t, c.Enabled(LDebug))
	assert.False(t, l.Enabled(LInfo))

	assert.Nil(t, NewWriter(ioutil.Discard, LAll))
	var nilLog *Log
	assert.Nil(t, nilLog.Clone(LAll))
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	for s, expect := range map[string]Level{"": LInfo, "info": LInfo, "error": LError, "debug": LDebug, "all": LAll} {
		level, err := ParseLevel(s)
		require.NoError(t, err)
		assert.Equal(t, expect, level)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestContext(t *testing.T) {
	t.Parallel()
	assert.Nil(t, FromContext(context.Background()))
	l := NewTest(t, LDebug)
	ctx := ContextWith(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
	FromContext(ctx).Debugf("via context")
}

func callerShort(depth int) (file string, line int) {
	var ok bool
	_, file, line, ok = runtime.Caller(depth)
	if !ok {
		file = "???"
		line = 0
	}

	short := file
	for i := len(file) - 1; i > 0; i-- {
		if file[i] == '/' {
			short = file[i+1:]
			break
		}
	}
	file = short

	return
}

func formatCallerShort(depth int) string {
	file, line := callerShort(depth + 1)
	return fmt.Sprintf("%s:%d: ", file, line-1)
}
