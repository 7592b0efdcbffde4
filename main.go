//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Command yal drives the lexer, parser, and evaluator over standard
// input in one of three mutually exclusive modes.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pborman/getopt"
	"github.com/steel-sword/yal/yal"
)

func main() {
	os.Exit(run())
}

func run() int {
	var lexemesFlag, treeFlag, execFlag, help bool
	getopt.BoolVarLong(&lexemesFlag, "lexemes", 0, "lex standard input and print each lexeme")
	getopt.BoolVarLong(&treeFlag, "tree", 0, "lex and parse standard input and print each top-level value")
	getopt.BoolVarLong(&execFlag, "exec", 0, "lex, parse, and evaluate standard input")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("")

	if err := getopt.Getopt(nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		return 1
	}
	if help {
		getopt.PrintUsage(os.Stdout)
		return 0
	}

	modes := 0
	for _, f := range []bool{lexemesFlag, treeFlag, execFlag} {
		if f {
			modes++
		}
	}
	if modes != 1 {
		fmt.Fprintln(os.Stderr, "exactly one of --lexemes, --tree, --exec is required")
		getopt.PrintUsage(os.Stderr)
		return 1
	}

	input, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	switch {
	case lexemesFlag:
		return runLexemes(out, string(input))
	case treeFlag:
		return runTree(out, string(input))
	default:
		return runExec(out, string(input))
	}
}

func runLexemes(out *bufio.Writer, input string) int {
	lexemes, lerr := yal.Lex(input)
	if lerr != nil {
		fmt.Fprintln(os.Stderr, lerr.Error())
		return 1
	}
	for i, lx := range lexemes {
		fmt.Fprintf(out, "%d: %s\n", i, lx)
	}
	return 0
}

func runTree(out *bufio.Writer, input string) int {
	forms, lerr := yal.Parse(input)
	if lerr != nil {
		fmt.Fprintln(os.Stderr, lerr.Error())
		return 1
	}
	for _, form := range forms {
		fmt.Fprintln(out, yal.Stringify(form))
	}
	return 0
}

func runExec(out *bufio.Writer, input string) int {
	forms, lerr := yal.Parse(input)
	if lerr != nil {
		fmt.Fprintln(os.Stderr, lerr.Error())
		return 1
	}
	scope := yal.NewGlobalScope()
	lines := strings.Split(input, "\n")
	for _, form := range forms {
		_, exc := yal.Eval(scope, yal.ScopeGlobal, form)
		if exc != nil {
			printTraceback(os.Stderr, lines, exc)
			return 1
		}
	}
	return 0
}

// printTraceback renders, for each recorded position (most-recent
// first), the offending source line followed by a caret at the
// column, finishing with the stringified thrown value.
func printTraceback(w io.Writer, lines []string, exc *yal.Exception) {
	for _, pos := range exc.Traceback {
		if pos == nil {
			continue
		}
		lineIdx := pos.Line - 1
		if lineIdx >= 0 && lineIdx < len(lines) {
			fmt.Fprintln(w, lines[lineIdx])
		}
		fmt.Fprintln(w, strings.Repeat(" ", max(pos.Col-1, 0))+"^")
	}
	fmt.Fprintln(w, yal.Stringify(exc.Thrown))
}
