package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer pretty-prints a tree of nodes, one indented line per node, for
// debugging and golden-file tests.
type Printer struct {
	Output io.Writer

	// NodeFmt is the fmt verb used to render each node; defaults to "%v".
	NodeFmt string

	// WithSpans includes each node's byte span in the output.
	WithSpans bool
}

// Print walks n and writes one line per visited node.
func (p *Printer) Print(n Node) error {
	nodeFmt := p.NodeFmt
	if nodeFmt == "" {
		nodeFmt = "%v"
	}
	pp := &printer{w: p.Output, nodeFmt: nodeFmt, withSpans: p.WithSpans}
	Walk(pp, n)
	return pp.err
}

type printer struct {
	w         io.Writer
	nodeFmt   string
	withSpans bool
	depth     int
	err       error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit {
		p.depth--
		return nil
	}
	if p.err != nil {
		return nil
	}
	p.printNode(n, p.depth)
	p.depth++
	return p
}

func (p *printer) printNode(n Node, indent int) {
	if p.err != nil {
		return
	}
	format := "%s"
	args := []any{strings.Repeat(". ", indent)}
	if p.withSpans {
		sp := n.Span()
		format += "[%d:%d] "
		args = append(args, sp.ByteIndex, sp.End())
	}
	format += p.nodeFmt + "\n"
	args = append(args, n)
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
