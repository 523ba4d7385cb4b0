package main

import (
	"context"
	"flag"
	"os"
	"strings"

	prompt "github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"github.com/skip2/go-qrcode"
	"github.com/temoto/till/config"
	"github.com/temoto/till/currency"
	"github.com/temoto/till/helpers/cli"
	"github.com/temoto/till/log2"
	"github.com/temoto/till/register"
)

const usage = `syntax: commands separated by whitespace
(main)
- price=X  set price for following sales, e.g. price=19.50
- cash=X   ring sale with cash tendered, bare number works too: 20
- drawer   show drawer inventory
- reload   read config again, resets drawer and price

(meta)
- log=yes  enable debug logging
- log=no   disable debug logging
- qr=FILE  write last receipt as QR code PNG
`

var log = log2.NewStderr(log2.LInfo)

func main() {
	cmdline := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	configPath := cmdline.String("config", "till.hcl", "")
	_ = cmdline.Parse(os.Args[1:])

	log.SetFlags(log2.LInteractiveFlags)

	load := func() (*config.Config, error) {
		return config.ReadConfig(log, config.NewOsFullReader(), *configPath)
	}
	self, err := newTillCli(log, load)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	cli.MainLoop("till-cli", log, self.newExecutor(context.Background()), newCompleter())
}

type tillCli struct {
	log     *log2.Log
	load    func() (*config.Config, error)
	reg     *register.Register
	receipt *register.Receipt
}

func newTillCli(log *log2.Log, load func() (*config.Config, error)) (*tillCli, error) {
	self := &tillCli{log: log, load: load}
	return self, self.reload()
}

func (self *tillCli) reload() error {
	c, err := self.load()
	if err != nil {
		return err
	}
	level, err := c.LogLevel()
	if err != nil {
		return err
	}
	self.log.SetLevel(level)
	r, err := register.FromConfig(self.log, nil, c)
	if err != nil {
		return err
	}
	self.reg = r
	self.receipt = nil
	self.log.Infof("drawer=%s price=%s", r.Drawer().String(), r.Price().Format100I())
	return nil
}

func newCompleter() func(d prompt.Document) []prompt.Suggest {
	suggests := []prompt.Suggest{
		{Text: "price=", Description: "set price"},
		{Text: "cash=", Description: "ring sale with cash tendered"},
		{Text: "drawer", Description: "show drawer"},
		{Text: "reload", Description: "read config again"},
		{Text: "log=yes", Description: "enable debug logging"},
		{Text: "log=no", Description: "disable debug logging"},
		{Text: "qr=", Description: "write last receipt as QR PNG"},
		{Text: "help"},
	}

	return func(d prompt.Document) []prompt.Suggest {
		return prompt.FilterHasPrefix(suggests, d.GetWordBeforeCursor(), true)
	}
}

func (self *tillCli) newExecutor(ctx context.Context) func(string) {
	return func(line string) {
		if err := self.execLine(ctx, line); err != nil {
			self.log.Error(err)
		}
	}
}

func (self *tillCli) execLine(ctx context.Context, line string) error {
	ds, err := self.parseLine(ctx, line)
	if err != nil {
		return err
	}
	for _, d := range ds {
		if err := d(); err != nil {
			return err
		}
	}
	return nil
}

func (self *tillCli) parseLine(ctx context.Context, line string) ([]func() error, error) {
	words := strings.Fields(line)
	ds := make([]func() error, 0, len(words))
	for _, word := range words {
		d, err := self.parseCommand(ctx, word)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	return ds, nil
}

func (self *tillCli) parseCommand(ctx context.Context, word string) (func() error, error) {
	switch {
	case word == "help":
		return func() error { self.log.Infof(usage); return nil }, nil
	case word == "log=yes":
		return func() error { self.log.SetLevel(log2.LDebug); return nil }, nil
	case word == "log=no":
		return func() error { self.log.SetLevel(log2.LInfo); return nil }, nil
	case word == "drawer":
		return func() error {
			self.log.Infof("drawer=%s", self.reg.Drawer().String())
			return nil
		}, nil
	case word == "reload":
		return self.reload, nil
	case strings.HasPrefix(word, "price="):
		p, err := currency.ParseDecimal(word[6:])
		if err != nil {
			return nil, errors.Annotatef(err, "word=%s", word)
		}
		return func() error {
			self.reg.SetPrice(p)
			return nil
		}, nil
	case strings.HasPrefix(word, "qr="):
		path := word[3:]
		if path == "" {
			return nil, errors.NotValidf("word=%s empty file", word)
		}
		return func() error { return self.writeQR(path) }, nil
	case strings.HasPrefix(word, "cash="):
		return self.sale(ctx, word[5:]), nil
	case word[0] >= '0' && word[0] <= '9', word[0] == '$', word[0] == '.':
		return self.sale(ctx, word), nil
	default:
		return nil, errors.Errorf("invalid command: '%s'", word)
	}
}

func (self *tillCli) sale(ctx context.Context, cash string) func() error {
	return func() error {
		receipt, err := self.reg.SaleText(ctx, self.reg.Price(), cash)
		if err != nil {
			return err
		}
		self.receipt = &receipt
		self.log.Infof("%s", receipt.String())
		return nil
	}
}

func (self *tillCli) writeQR(path string) error {
	if self.receipt == nil {
		return errors.NotFoundf("receipt")
	}
	text := "price=" + self.receipt.Price.FormatDollar() +
		" cash=" + self.receipt.Tendered.FormatDollar() +
		" " + self.receipt.String()
	if err := qrcode.WriteFile(text, qrcode.Medium, 256, path); err != nil {
		return errors.Annotatef(err, "qr path=%s", path)
	}
	self.log.Infof("receipt QR written to %s", path)
	return nil
}
