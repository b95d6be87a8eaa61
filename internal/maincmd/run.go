package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/lico-lang/lico/lang/compiler"
	"github.com/lico-lang/lico/lang/ir"
	"github.com/lico-lang/lico/lang/token"
	"github.com/lico-lang/lico/lang/vm"
)

// Run implements the `run <path>` subcommand (spec §6): read the script,
// lex/parse/lower it to IR, compile to bytecode, and execute it. Exit
// code (via the returned error) is non-zero on either a compile-time
// diagnostic or an unhandled runtime exception.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stdout, "Error: %s\n", err)
		return err
	}

	lines := token.NewLineIndex(src)

	m, diags := ir.Lower(string(src))
	if len(diags) > 0 {
		for _, d := range diags {
			printDiagnostic(stdio, lines, d.Message, d.Range)
		}
		return fmt.Errorf("%s: %d compile error(s)", path, len(diags))
	}

	compiled := compiler.Compile(m)
	machine := vm.New()
	machine.Stdout = stdio.Stdout
	machine.Stderr = stdio.Stderr

	_, exc := machine.Run(compiled)
	if exc != nil {
		if exc.HasSpan {
			printDiagnostic(stdio, lines, exc.Message, exc.Range)
		} else {
			fmt.Fprintf(stdio.Stdout, "Error: %s\n", exc.Message)
		}
		return exc
	}
	return nil
}

func printDiagnostic(stdio mainer.Stdio, lines *token.LineIndex, message string, r token.TextRange) {
	fmt.Fprintf(stdio.Stdout, "Error: %s\n", message)
	startLine, startCol := lines.LineCol(r.Start)
	endLine, endCol := lines.LineCol(r.End)
	fmt.Fprintf(stdio.Stdout, "Position: %d:%d ~ %d:%d\n", startLine, startCol, endLine, endCol)
}
