package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/vuurlang/vuur/internal/config"
	"github.com/vuurlang/vuur/lang/ast"
	"github.com/vuurlang/vuur/lang/parser"
)

func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFiles(ctx, stdio, args...)
}

func ParseFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	printer := ast.Printer{Output: stdio.Stdout}

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
		if err := printer.Print(mod); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			lastErr = err
		}
	}
	return lastErr
}
