package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/wordwrap"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/docstrfmt"
	"pkt.systems/version"
)

const defaultWidth = 80

const description = "Reformats docstrings in Python source files to the PEP 257 " +
	"summary/description convention: a one-line summary, a blank line, then a " +
	"re-indented description. By default no file is modified and a unified diff " +
	"between the original and the formatted content is printed to stdout."

func init() {
	version.SetDefaultModule("pkt.systems/docstrfmt")
}

func main() {
	var (
		inPlace     bool
		noBackup    bool
		showVersion bool
	)

	flags := pflag.NewFlagSet("docstrfmt", pflag.ExitOnError)
	flags.BoolVarP(&inPlace, "in-place", "i", false, "Rewrite files instead of printing a diff")
	flags.BoolVar(&noBackup, "no-backup", false, "Skip the <file>.backup copy when rewriting in place")
	flags.BoolVarP(&showVersion, "version", "V", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: docstrfmt [flags] <file>...\n\n")
		fmt.Fprintln(os.Stderr, wordwrap.String(description, terminalWidth(defaultWidth)))
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if showVersion {
		fmt.Println(version.Module(), version.Current())
		return
	}

	files := flags.Args()
	if len(files) == 0 {
		flags.Usage()
		os.Exit(2)
	}

	// A bad file does not stop the remaining ones; the exit status
	// still reports the failure.
	failed := false
	for _, path := range files {
		if err := processFile(os.Stdout, path, inPlace, !noBackup); err != nil {
			fmt.Fprintf(os.Stderr, "docstrfmt: %s: %v\n", path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// processFile runs the transform over one file. In diff mode the
// unified diff goes to w and the file is untouched. In in-place mode
// the backup is written and closed before the original is overwritten,
// so a failed overwrite still leaves a valid backup behind.
func processFile(w io.Writer, path string, inPlace, backup bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := docstrfmt.ValidateInput(src); err != nil {
		return err
	}
	formatted, err := docstrfmt.Format(string(src))
	if err != nil {
		return err
	}

	if !inPlace {
		return printDiff(w, path, string(src), formatted)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if backup {
		if err := os.WriteFile(path+".backup", src, mode); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(formatted), mode); err != nil {
		return fmt.Errorf("rewrite: %w", err)
	}
	return nil
}

func printDiff(w io.Writer, path, before, after string) error {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "before/" + path,
		ToFile:   "after/" + path,
		Context:  3,
	})
	if err != nil {
		return err
	}
	writeDiff(w, text)
	return nil
}

var (
	diffAdd  = color.New(color.FgGreen)
	diffDel  = color.New(color.FgRed)
	diffHunk = color.New(color.FgCyan)
)

// writeDiff colorizes diff lines; color is disabled automatically on
// non-terminal writers.
func writeDiff(w io.Writer, diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "@@"):
			_, _ = diffHunk.Fprint(w, line)
		case strings.HasPrefix(line, "+"):
			_, _ = diffAdd.Fprint(w, line)
		case strings.HasPrefix(line, "-"):
			_, _ = diffDel.Fprint(w, line)
		default:
			fmt.Fprint(w, line)
		}
	}
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}
