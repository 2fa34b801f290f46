package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/vuurlang/vuur/internal/config"
	"github.com/vuurlang/vuur/lang/compiler"
	"github.com/vuurlang/vuur/lang/machine"
	"github.com/vuurlang/vuur/lang/parser"
)

func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return RunFiles(ctx, stdio, args...)
}

// RunFiles compiles each file independently and runs its Main function on
// a fresh fiber, printing the returned value. Every file gets its own
// Thread and Fiber; spec's Non-goals rule out any notion of linking or
// importing between files.
func RunFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	th := &machine.Thread{
		MaxSteps:          cfg.MaxSteps,
		MaxCallStackDepth: cfg.MaxCallStackDepth,
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

		f, rerr := th.Run(chunk)
		if rerr != nil {
			fmt.Fprintln(stdio.Stderr, rerr)
			lastErr = rerr
			continue
		}

		ret, terr := f.TakeReturn()
		if terr != nil {
			fmt.Fprintln(stdio.Stderr, terr)
			lastErr = terr
			continue
		}
		fmt.Fprintf(stdio.Stdout, "%d\n", int32(ret))
	}

	return lastErr
}
