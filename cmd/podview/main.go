package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/podwire/podcodec/dump"
	"github.com/podwire/podcodec/pod"
)

func main() {
	var (
		podFile     = flag.String("file", "", "Path to encoded pod file")
		hexInput    = flag.Bool("hex", false, "Treat the file as hex text instead of raw bytes")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	if *podFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: podview -file <pod.bin> [-hex] [-v]")
		fmt.Fprintln(os.Stderr, "       podview -file <pod.bin> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		pod.SetLogger(logger)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*podFile, *hexInput); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*podFile, *hexInput); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func readPod(podFile string, hexInput bool) (pod.View, error) {
	data, err := os.ReadFile(podFile)
	if err != nil {
		return pod.View{}, fmt.Errorf("read file: %w", err)
	}

	if hexInput {
		text := strings.Join(strings.Fields(string(data)), "")
		data, err = hex.DecodeString(text)
		if err != nil {
			return pod.View{}, fmt.Errorf("decode hex: %w", err)
		}
	}

	view, err := pod.Decode(data)
	if err != nil {
		return pod.View{}, fmt.Errorf("decode: %w", err)
	}
	return view, nil
}

func run(podFile string, hexInput bool) error {
	view, err := readPod(podFile, hexInput)
	if err != nil {
		return err
	}

	fmt.Printf("Pod: %s\n", podFile)
	fmt.Printf("Type: %s\n", view.Tag())
	fmt.Printf("Body: %d bytes (%d on the wire)\n", view.Size(), view.WireSize())
	fmt.Println()

	var out io.Writer = os.Stdout
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
			out = &truncWriter{w: os.Stdout, width: width}
		}
	}
	return dump.New(out).Dump(view)
}

// truncWriter clips each line to the terminal width so deep trees with
// long blobs stay one line per node. Expects whole lines per Write, which
// is how the dump package emits them.
type truncWriter struct {
	w     io.Writer
	width int
}

func (t *truncWriter) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	if len(line) > t.width {
		// Back up to a rune boundary so the clip never splits a
		// multibyte character.
		cut := t.width - 1
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		line = line[:cut] + "…"
	}
	if _, err := fmt.Fprintln(t.w, line); err != nil {
		return 0, err
	}
	return len(p), nil
}
