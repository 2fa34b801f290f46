package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/vuurlang/vuur/internal/config"
	"github.com/vuurlang/vuur/lang/scanner"
	"github.com/vuurlang/vuur/lang/token"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(ctx, stdio, args...)
}

func TokenizeFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
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

		toks, errs := scanner.AllWithMaxInterpDepth(file, string(src), cfg.MaxInterpDepth)
		for _, tv := range toks {
			pos := token.PosAt(file, string(src), tv.Span.ByteIndex)
			fmt.Fprintf(stdio.Stdout, "%s: %s", pos, tv.Token)
			if lit := tv.Token.Literal(tv.Value); lit != "" {
				fmt.Fprintf(stdio.Stdout, " %s", lit)
			}
			fmt.Fprintln(stdio.Stdout)
		}
		if err := errs.Err(); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			lastErr = err
		}
	}
	return lastErr
}
