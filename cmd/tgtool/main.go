// Command tgtool inspects and transforms Praat TextGrid files from the
// command line: format conversion, validation, cropping, tier merging,
// and quick summaries.
package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/katalvlaran/timegrid/core"
	"github.com/katalvlaran/timegrid/tgio"
	"github.com/katalvlaran/timegrid/tier"
)

const version = "0.1.0"

// CLI defines the command-line interface for tgtool.
var CLI struct {
	Convert  ConvertCmd  `cmd:"" help:"Convert a TextGrid between the short, long, and json formats"`
	Validate ValidateCmd `cmd:"" help:"Check a TextGrid's structural invariants"`
	Info     InfoCmd     `cmd:"" help:"Summarize a TextGrid's tiers and entries"`
	Crop     CropCmd     `cmd:"" help:"Crop a TextGrid to a time window"`
	Merge    MergeCmd    `cmd:"" help:"Merge tiers of a TextGrid into one per kind"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// ConvertCmd rewrites a TextGrid in another wire format.
type ConvertCmd struct {
	In     string `arg:"" help:"Input TextGrid file" type:"existingfile"`
	Out    string `arg:"" help:"Output file" type:"path"`
	Format string `name:"format" short:"f" default:"short_textgrid" help:"Output format: short_textgrid, long_textgrid, or json"`
	Raw    bool   `name:"raw" help:"Keep blank-labeled entries instead of dropping and refilling them"`
}

func (c *ConvertCmd) Run() error {
	format, err := tgio.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	tg, err := tgio.Open(c.In, tgio.ParseOptions{IncludeEmptyIntervals: c.Raw})
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.In, err)
	}
	opts := tgio.DefaultWriteOptions()
	opts.Format = format
	opts.IncludeBlankSpaces = !c.Raw
	if err := tgio.Save(tg, c.Out, opts); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Out, err)
	}
	fmt.Printf("Wrote %s (%s)\n", c.Out, format)
	return nil
}

// ValidateCmd reports invariant violations in a TextGrid.
type ValidateCmd struct {
	In string `arg:"" help:"Input TextGrid file" type:"existingfile"`
}

func (c *ValidateCmd) Run() error {
	tg, err := tgio.Open(c.In, tgio.DefaultParseOptions())
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.In, err)
	}
	ok, err := tg.Validate(core.ReportWarning)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s is not a valid textgrid", c.In)
	}
	fmt.Printf("%s is valid\n", c.In)
	return nil
}

// InfoCmd prints a per-tier summary.
type InfoCmd struct {
	In string `arg:"" help:"Input TextGrid file" type:"existingfile"`
}

func (c *InfoCmd) Run() error {
	tg, err := tgio.Open(c.In, tgio.DefaultParseOptions())
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.In, err)
	}
	fmt.Printf("%s: %s to %s, %d tier(s)\n",
		c.In, core.FormatNum(tg.MinTime()), core.FormatNum(tg.MaxTime()), tg.Len())
	for _, t := range tg.Tiers() {
		kind := "interval"
		if _, ok := t.(*tier.PointTier); ok {
			kind = "point"
		}
		fmt.Printf("  %-20s %s tier, %d entries, %s to %s\n",
			t.Name(), kind, t.Len(), core.FormatNum(t.MinTime()), core.FormatNum(t.MaxTime()))
	}
	return nil
}

// CropCmd writes a cropped copy of the input.
type CropCmd struct {
	In    string  `arg:"" help:"Input TextGrid file" type:"existingfile"`
	Out   string  `arg:"" help:"Output file" type:"path"`
	Start float64 `name:"start" short:"s" required:"" help:"Window start, in seconds"`
	End   float64 `name:"end" short:"e" required:"" help:"Window end, in seconds"`
	Mode  string  `name:"mode" default:"truncated" help:"Partial-overlap policy: strict, lax, or truncated"`
	Zero  bool    `name:"rebase-to-zero" help:"Shift the result to start at time zero"`
}

func (c *CropCmd) Run() error {
	mode, err := parseCropMode(c.Mode)
	if err != nil {
		return err
	}
	tg, err := tgio.Open(c.In, tgio.DefaultParseOptions())
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.In, err)
	}
	cropped, err := tg.Crop(c.Start, c.End, mode, c.Zero)
	if err != nil {
		return err
	}
	if err := tgio.Save(cropped, c.Out, tgio.DefaultWriteOptions()); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Out, err)
	}
	fmt.Printf("Wrote %s (%s to %s)\n", c.Out,
		core.FormatNum(cropped.MinTime()), core.FormatNum(cropped.MaxTime()))
	return nil
}

func parseCropMode(name string) (tier.CropMode, error) {
	for _, mode := range []tier.CropMode{tier.CropStrict, tier.CropLax, tier.CropTruncated} {
		if mode.String() == name {
			return mode, nil
		}
	}
	return 0, &core.WrongOptionError{
		Argument: "mode",
		Value:    name,
		Valid:    []string{"strict", "lax", "truncated"},
	}
}

// MergeCmd folds tiers into one merged tier per kind.
type MergeCmd struct {
	In    string   `arg:"" help:"Input TextGrid file" type:"existingfile"`
	Out   string   `arg:"" help:"Output file" type:"path"`
	Tiers []string `name:"tiers" short:"t" help:"Tier names to merge (default: all)"`
	Drop  bool     `name:"drop-others" help:"Drop unmerged tiers instead of preserving them"`
}

func (c *MergeCmd) Run() error {
	tg, err := tgio.Open(c.In, tgio.DefaultParseOptions())
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.In, err)
	}
	var names []string
	if len(c.Tiers) > 0 {
		names = c.Tiers
	}
	merged, err := tg.MergeTiers(names, !c.Drop)
	if err != nil {
		return err
	}
	if err := tgio.Save(merged, c.Out, tgio.DefaultWriteOptions()); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Out, err)
	}
	fmt.Printf("Wrote %s with tier(s): %s\n", c.Out, strings.Join(merged.TierNames(), ", "))
	return nil
}

// VersionCmd prints the tool version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("tgtool %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("tgtool"),
		kong.Description("Praat TextGrid toolbox - convert, validate, crop, and merge annotation files"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
