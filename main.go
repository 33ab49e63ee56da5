package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/schemers/littlescheme/reader"
)

var tokensOnly = flag.Bool("tokens", false, "print the token stream instead of parsed forms")

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) > 0 {
		script := args[0]
		var err error
		if script == "-" {
			err = printFrom(os.Stdin)
		} else {
			err = printFile(script)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "littlescheme: %v\n", err)
			os.Exit(1)
		}
		return
	}
	runREPL()
}

func printFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return printFrom(f)
}

func printFrom(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return printSource(os.Stdout, string(data))
}

// printSource runs one lex (and, unless -tokens is set, parse) over src and
// writes one line per token or top-level form.
func printSource(w io.Writer, src string) error {
	if *tokensOnly {
		tokens, err := reader.Lex(src)
		if err != nil {
			return err
		}
		for _, tok := range tokens {
			fmt.Fprintln(w, tok)
		}
		return nil
	}
	forms, err := reader.ReadString(src)
	if err != nil {
		return err
	}
	for _, form := range forms {
		fmt.Fprintln(w, form)
	}
	return nil
}

func runREPL() {
	if !isInteractive() {
		runBufferedREPL(bufio.NewReader(os.Stdin))
		return
	}
	runInteractiveREPL()
}

func runBufferedREPL(rd *bufio.Reader) {
	var buffer strings.Builder

	for {
		line, err := rd.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				if buffer.Len() == 0 && line == "" {
					return
				}
			} else {
				fmt.Fprintf(os.Stderr, "read error: %v\n", err)
				return
			}
		}
		buffer.WriteString(line)
		src := buffer.String()
		if readErr := printSource(os.Stdout, src); readErr != nil {
			if reader.IsIncomplete(readErr) && !errors.Is(err, io.EOF) {
				continue
			}
			fmt.Fprintf(os.Stderr, "read error: %v\n", readErr)
		}
		buffer.Reset()
		if errors.Is(err, io.EOF) {
			return
		}
	}
}

func runInteractiveREPL() {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	historyPath := replHistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	var buffer strings.Builder

	for {
		prompt := "ls> "
		if buffer.Len() > 0 {
			prompt = ".... "
		}
		input, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Println()
				buffer.Reset()
				continue
			case errors.Is(err, io.EOF):
				fmt.Println()
				return
			default:
				fmt.Fprintf(os.Stderr, "read error: %v\n", err)
				return
			}
		}
		buffer.WriteString(input)
		buffer.WriteString("\n")

		src := buffer.String()
		if readErr := printSource(os.Stdout, src); readErr != nil {
			if reader.IsIncomplete(readErr) {
				continue
			}
			fmt.Fprintf(os.Stderr, "read error: %v\n", readErr)
		}
		buffer.Reset()
		if trimmed := strings.TrimSpace(src); trimmed != "" {
			state.AppendHistory(trimmed)
		}
	}
}

func replHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".littlescheme_history")
}

func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
