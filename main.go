package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aryanA101a/lulu/translate"
	"github.com/aryanA101a/lulu/vm"
)

var f = translate.From

const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

func main() {
	os.Exit(run())
}

func run() int {
	var tracePath string
	var verbose bool
	var raw bool

	flag.StringVar(&tracePath, "trace", "", "Write an instruction trace to this file")
	flag.BoolVar(&verbose, "v", false, "Print a summary when the machine stops")
	flag.BoolVar(&raw, "raw", true, "Put the terminal in raw mode while running")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), f("usage: lulu [flags] image-file1 ..."))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		return exitUsage
	}

	log.SetOutput(io.Discard)
	if verbose {
		log.SetOutput(os.Stderr)
	}

	console := vm.NewTerminalConsole(os.Stdin, os.Stdout)
	machine := vm.NewVM(console)

	for _, path := range flag.Args() {
		img, err := vm.ReadImageFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, f("failed to load image: %v", err))
			return exitFailure
		}
		machine.LoadImage(img)
	}

	if len(tracePath) != 0 {
		tf, err := os.Create(tracePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, f("lulu: %v", err))
			return exitFailure
		}
		defer tf.Close()
		machine.SetTrace(log.New(tf, "", log.Lmicroseconds))
	}

	if raw {
		if err := console.EnableRawMode(); err != nil {
			fmt.Fprintln(os.Stderr, f("lulu: raw mode: %v", err))
			return exitFailure
		}
		defer console.DisableRawMode()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-done:
			return
		case <-ctx.Done():
		}
		select {
		case <-done:
			return
		default:
		}
		// GETC and IN block in a read that cannot be cancelled, so leave from here.
		console.Flush()
		console.DisableRawMode()
		os.Exit(exitInterrupted)
	}()

	err := machine.Run()
	console.Flush()

	if verbose {
		fmt.Fprintln(os.Stderr, f("executed %d instructions", machine.Instructions()))
		fmt.Fprintln(os.Stderr, machine.DumpRegisters())
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, f("lulu: %v", err))
		return exitFailure
	}
	return exitOK
}
