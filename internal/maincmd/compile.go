package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/vuurlang/vuur/internal/config"
	"github.com/vuurlang/vuur/lang/compiler"
	"github.com/vuurlang/vuur/lang/parser"
)

func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return CompileFiles(ctx, stdio, args...)
}

// CompileFiles parses and compiles each file, printing a disassembly of
// the resulting chunk: its header, its function table, and its
// instruction vector, one word per line.
func CompileFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	var lastErr error
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			lastErr = err
			continue
		}

		mod, perr := parser.ParseWithMaxInterpDepth(file, string(src), cfg.MaxInterpDepth)
		if perr != nil {
			fmt.Fprintln(stdio.Stderr, perr)
			lastErr = perr
			continue
		}

		chunk, cerr := compiler.Compile(mod)
		if cerr != nil {
			fmt.Fprintln(stdio.Stderr, cerr)
			lastErr = cerr
			continue
		}

		fmt.Fprintf(stdio.Stdout, "%s\n", chunk.Header)
		for id, fn := range chunk.Functions {
			if id == 0 {
				continue // reserved stub
			}
			mark := ""
			if compiler.FuncID(id) == chunk.Entrypoint {
				mark = " (entrypoint)"
			}
			fmt.Fprintf(stdio.Stdout, "func %d %q arity=%d locals=%d [%d,%d)%s\n",
				id, fn.Name, fn.Arity, fn.LocalCount, fn.BytecodeStart, fn.BytecodeEnd, mark)
		}
		for pc, instr := range chunk.Code {
			fmt.Fprintf(stdio.Stdout, "%6d  %s\n", pc, instr)
		}
	}
	return lastErr
}
