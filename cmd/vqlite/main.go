// Command vqlite is the line-oriented front end for the vqlite storage
// core: it reads commands, classifies them as meta-commands or
// insert/select statements, and drives the vtable engine.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"vqlite/pager"
	"vqlite/vtable"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Must supply a database filename.")
		os.Exit(1)
	}

	tbl, err := vtable.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}

	if err := repl(os.Stdin, os.Stdout, tbl); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// repl drives the interactive loop until ".exit" or EOF. It returns a
// non-nil error only for fatal conditions; user and capacity errors are
// printed and the loop continues.
func repl(in io.Reader, out io.Writer, tbl *vtable.Table) error {
	reader := bufio.NewReader(in)

	for {
		printPrompt(out)
		line, err := readInput(reader)
		if err != nil {
			if err == io.EOF {
				return closeOrFatal(tbl)
			}
			return err
		}

		if len(line) > 0 && line[0] == '.' {
			if handleMetaCommand(line) {
				return closeOrFatal(tbl)
			}
			fmt.Fprintf(out, "Unrecognized command %q\n", line)
			continue
		}

		stmt, err := prepareStatement(line)
		if err != nil {
			fmt.Fprintf(out, "%v\n", err)
			continue
		}

		if err := execute(stmt, tbl, out); err != nil {
			var fatal *pager.FatalError
			if errors.As(err, &fatal) {
				return err
			}
			fmt.Fprintf(out, "%v\n", err)
		}
	}
}

func execute(stmt statement, tbl *vtable.Table, out io.Writer) error {
	switch stmt.kind {
	case statementInsert:
		if err := tbl.Insert(stmt.row); err != nil {
			return err
		}
		fmt.Fprintln(out, "Executed.")
		return nil
	case statementSelect:
		if err := tbl.SelectAll(func(r vtable.Row) error {
			fmt.Fprintf(out, "(%d, %s, %s)\n", r.ID, r.Username, r.Email)
			return nil
		}); err != nil {
			return err
		}
		fmt.Fprintln(out, "Executed.")
		return nil
	default:
		return fmt.Errorf("execute: unhandled statement kind %v", stmt.kind)
	}
}

func closeOrFatal(tbl *vtable.Table) error {
	if err := tbl.Close(); err != nil {
		return err
	}
	os.Exit(0)
	return nil
}
