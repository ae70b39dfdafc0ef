// Command h5c drives the h5core container-file operations from the
// command line: create, open, close, flush, is-container, get-params,
// debug.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/h5lib/h5core"
)

var debug = flag.Bool("debug", false, "enable debug mode: format error messages with additional detail")

// interruptibleContext returns a context canceled on SIGINT/SIGTERM, so a
// verb mid-flight can be asked to stop rather than leaving a container
// file half written.
func interruptibleContext() (context.Context, context.CancelFunc) {
	ctx, canc := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		// Subsequent signals result in immediate termination, useful in
		// case cleanup hangs.
		signal.Stop(sig)
		canc()
	}()
	return ctx, canc
}

func funcmain() error {
	flag.Parse()

	type cmd struct {
		fn func(ctx context.Context, args []string) error
	}
	verbs := map[string]cmd{
		"create":       {cmdCreate},
		"open":         {cmdOpen},
		"close":        {cmdClose},
		"flush":        {cmdFlush},
		"is-container": {cmdIsContainer},
		"get-params":   {cmdGetParams},
		"debug":        {cmdDebug},
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "h5c [-flags] <command> [-flags] <args>\n")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "\tcreate       - create a container file\n")
		fmt.Fprintf(os.Stderr, "\topen         - open a container file, exercising the open engine\n")
		fmt.Fprintf(os.Stderr, "\tclose        - open then close a container file, exercising the close engine\n")
		fmt.Fprintf(os.Stderr, "\tflush        - open, flush, then close a container file, exercising the flush engine\n")
		fmt.Fprintf(os.Stderr, "\tis-container - test whether a file looks like a container\n")
		fmt.Fprintf(os.Stderr, "\tget-params   - print a container's creation parameters\n")
		fmt.Fprintf(os.Stderr, "\tdebug        - dump a container's boot-block fields\n")
		os.Exit(2)
	}
	verb, rest := args[0], args[1:]

	ctx, canc := interruptibleContext()
	defer canc()

	v, ok := verbs[verb]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", verb)
		fmt.Fprintf(os.Stderr, "syntax: h5c <command> [options]\n")
		os.Exit(2)
	}
	if err := v.fn(ctx, rest); err != nil {
		if *debug {
			return fmt.Errorf("%s: %+v", verb, err)
		}
		return fmt.Errorf("%s: %v", verb, err)
	}

	return nil
}

func main() {
	if err := funcmain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
