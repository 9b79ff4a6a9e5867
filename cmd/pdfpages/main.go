// Command pdfpages drives the page-range operations from scripts: it checks
// range expressions and extracts, removes or splits pages via pdfcpu.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"pdf_exporter/pagerange"
	"pdf_exporter/pdf"
)

type checkCmd struct {
	Expr  string `arg:"" help:"Page range expression, e.g. '1,3-5,-2'."`
	Pages int    `short:"p" required:"" help:"Page count to validate against."`
}

func (cmd *checkCmd) Run() error {
	sel, err := pagerange.Parse(cmd.Expr, cmd.Pages)
	if err != nil {
		return err
	}
	for _, e := range sel {
		fmt.Printf("pages %d-%d (indices %d-%d)\n", e.First+1, e.Last+1, e.First, e.Last)
	}
	fmt.Printf("%d page(s) selected\n", sel.PageCount())
	return nil
}

type extractCmd struct {
	In       string `arg:"" type:"existingfile" help:"Input PDF."`
	Out      string `arg:"" help:"Output PDF."`
	Ranges   string `short:"r" required:"" help:"Page ranges to extract."`
	Optimize bool   `help:"Optimize the output PDF."`
}

func (cmd *extractCmd) Run() error {
	return pdf.ExtractPagesFromPDF(cmd.In, cmd.Out, cmd.Ranges, cmd.Optimize)
}

type removeCmd struct {
	In     string `arg:"" type:"existingfile" help:"Input PDF."`
	Out    string `arg:"" help:"Output PDF."`
	Ranges string `short:"r" required:"" help:"Page ranges to remove."`
}

func (cmd *removeCmd) Run() error {
	return pdf.RemovePagesFromPDF(cmd.In, cmd.Out, cmd.Ranges)
}

type splitCmd struct {
	In     string `arg:"" type:"existingfile" help:"Input PDF."`
	Ranges string `short:"r" required:"" help:"One output PDF per range."`
	OutDir string `short:"d" default:"." help:"Directory for the output PDFs."`
}

func (cmd *splitCmd) Run() error {
	parts, err := pdf.SplitPDFByRanges(cmd.In, cmd.OutDir, cmd.Ranges)
	if err != nil {
		return err
	}
	for _, part := range parts {
		fmt.Printf("pages %d-%d -> %s\n", part.Entry.First+1, part.Entry.Last+1, part.File)
	}
	return nil
}

type cli struct {
	Check   checkCmd   `cmd:"" help:"Parse a page range expression and print the selected intervals."`
	Extract extractCmd `cmd:"" help:"Extract the selected pages into a new PDF."`
	Remove  removeCmd  `cmd:"" help:"Remove the selected pages from a PDF."`
	Split   splitCmd   `cmd:"" help:"Write one PDF per range entry."`
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("pdfpages"),
		kong.Description("Select, extract and remove PDF pages by page range expressions."),
		kong.UsageOnError(),
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "pdfpages: %v\n", err)
		var perr *pagerange.ParseError
		if errors.As(err, &perr) {
			// Bad user input, not an operational failure
			os.Exit(2)
		}
		os.Exit(1)
	}
}
