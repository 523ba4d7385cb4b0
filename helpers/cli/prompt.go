package cli

import (
	"bufio"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/c-bata/go-prompt"
	"github.com/mattn/go-isatty"
	"github.com/temoto/till/log2"
)

// MainLoop runs exec for every input line.
// Interactive terminal gets go-prompt with completion, otherwise stdin is read line by line
// so scripts can pipe commands: `echo "price=3.26 cash=100" | till-cli`.
func MainLoop(tag string, log *log2.Log, exec func(line string), complete func(d prompt.Document) []prompt.Suggest) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	go func() {
		s := <-signalCh
		log.Infof("%s signal=%v exit", tag, s)
		os.Exit(1)
	}()

	if isatty.IsTerminal(os.Stdin.Fd()) {
		prompt.New(exec, complete,
			prompt.OptionTitle(tag),
			prompt.OptionPrefix("> "),
		).Run()
		return
	}
	if err := ReadLines(os.Stdin, exec); err != nil {
		log.Fatal(err)
	}
}

func ReadLines(r io.Reader, exec func(line string)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		exec(strings.TrimSpace(scanner.Text()))
	}
	return scanner.Err()
}
