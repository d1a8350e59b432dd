// Command taml is a small utility for working with TAML files:
// grammar validation, canonical reformatting, and JSON conversion.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	taml "github.com/taml-dev/go-taml"
)

var cli struct {
	Version kong.VersionFlag `help:"Show version information." short:"v"`

	Validate validateCmd `cmd:"" help:"Check a TAML file against the grammar."`
	Fmt      fmtCmd      `cmd:"" help:"Reformat TAML into canonical form."`
	ToJSON   toJSONCmd   `cmd:"" name:"to-json" help:"Convert TAML to JSON."`
	FromJSON fromJSONCmd `cmd:"" name:"from-json" help:"Convert JSON to TAML."`
}

type validateCmd struct {
	Path string `arg:"" optional:"" type:"path" help:"TAML file. Reads stdin if omitted."`
	All  bool   `short:"a" help:"Report every violation instead of stopping at the first."`
}

func (c *validateCmd) Run() error {
	data, err := readInput(c.Path)
	if err != nil {
		return err
	}
	if c.All {
		errs := taml.ValidateAll(data)
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		if len(errs) > 0 {
			return fmt.Errorf("%d violation(s) found", len(errs))
		}
	} else if err := taml.Validate(data); err != nil {
		return err
	}
	fmt.Println("valid")
	return nil
}

type fmtCmd struct {
	Path  string `arg:"" optional:"" type:"path" help:"TAML file. Reads stdin if omitted."`
	Write bool   `short:"w" help:"Rewrite the file in place instead of printing to stdout."`
}

func (c *fmtCmd) Run() error {
	data, err := readInput(c.Path)
	if err != nil {
		return err
	}
	doc, err := taml.Parse(data, taml.Strict())
	if err != nil {
		return err
	}
	if doc.Err() != nil {
		return doc.Err()
	}
	out, err := doc.Serialize()
	if err != nil {
		return err
	}
	if c.Write && c.Path != "" {
		return os.WriteFile(c.Path, out, 0o644)
	}
	_, err = os.Stdout.Write(out)
	return err
}

type toJSONCmd struct {
	Path string `arg:"" optional:"" type:"path" help:"TAML file. Reads stdin if omitted."`
}

func (c *toJSONCmd) Run() error {
	data, err := readInput(c.Path)
	if err != nil {
		return err
	}
	doc, err := taml.Parse(data, taml.Strict())
	if err != nil {
		return err
	}
	if doc.Err() != nil {
		return doc.Err()
	}
	out, err := doc.ToJSON()
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

type fromJSONCmd struct {
	Path string `arg:"" optional:"" type:"path" help:"JSON file. Reads stdin if omitted."`
}

func (c *fromJSONCmd) Run() error {
	data, err := readInput(c.Path)
	if err != nil {
		return err
	}
	doc, err := taml.FromJSON(data)
	if err != nil {
		return err
	}
	out, err := doc.Serialize()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("taml"),
		kong.Description("Validate, format and convert TAML files."),
		kong.UsageOnError(),
		kong.Vars{"version": "taml " + taml.Version},
	)
	ctx.FatalIfErrorf(ctx.Run())
}
