// tilld is headless till: rings sales received as MQTT commands.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/daemon"
	"github.com/juju/errors"
	"github.com/temoto/alive/v2"
	"github.com/temoto/till/config"
	"github.com/temoto/till/log2"
	"github.com/temoto/till/register"
	"github.com/temoto/till/tele"
)

var log = log2.NewStderr(log2.LDebug)

func main() {
	flagConfig := flag.String("config", "till.hcl", "")
	flag.Parse()

	if sdnotify("start") {
		// we're under systemd, assume systemd journal logging, remove timestamp
		log.SetFlags(log2.LServiceFlags)
	} else {
		log.SetFlags(log2.LInteractiveFlags)
	}

	c := config.MustReadConfig(log, config.NewOsFullReader(), *flagConfig)
	if err := run(context.Background(), log, c, tele.New(), alive.NewAlive()); err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
}

func run(ctx context.Context, log *log2.Log, c *config.Config, teler tele.Teler, a *alive.Alive) error {
	level, err := c.LogLevel()
	if err != nil {
		return err
	}
	log.SetLevel(level)
	if !c.Tele.Enabled {
		return errors.NotValidf("tilld requires tele, config tele.enable=false")
	}

	ctx = log2.ContextWith(ctx, log)
	r, err := register.FromConfig(log, teler, c)
	if err != nil {
		return errors.Annotate(err, "register")
	}
	if err := teler.Init(ctx, log, c.Tele, r.HandleCommand); err != nil {
		return errors.Annotate(err, "tele")
	}
	log.SetErrorFunc(teler.Error)

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		select {
		case sig := <-sigch:
			log.Infof("tilld signal=%v stopping", sig)
			a.Stop()
		case <-a.StopChan():
		}
	}()

	sdnotify(daemon.SdNotifyReady)
	log.Infof("tilld ready till_id=%d drawer=%s", c.Tele.TillId, r.Drawer().String())
	<-a.StopChan()

	sdnotify(daemon.SdNotifyStopping)
	log.SetErrorFunc(nil)
	teler.Close()
	log.Infof("tilld stopped drawer=%s", r.Drawer().String())
	return nil
}

func sdnotify(s string) bool {
	ok, err := daemon.SdNotify(false, s)
	if err != nil {
		log.Fatal("sdnotify: ", errors.ErrorStack(err))
	}
	return ok
}
