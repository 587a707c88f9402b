package textgrid_test

import (
	"fmt"

	"github.com/katalvlaran/timegrid/core"
	"github.com/katalvlaran/timegrid/textgrid"
	"github.com/katalvlaran/timegrid/tier"
)

// ExampleTextgrid_Crop trims an annotated recording to one utterance,
// rebasing the result so it starts at zero.
func ExampleTextgrid_Crop() {
	words, _ := tier.NewIntervalTier("words", []core.Interval{
		{Start: 1.0, End: 1.5, Label: "once"},
		{Start: 1.5, End: 2.0, Label: "upon"},
		{Start: 2.5, End: 3.0, Label: "a"},
	}, tier.WithMinTime(0), tier.WithMaxTime(4))

	tg := textgrid.New()
	_ = tg.AddTier(words, core.ReportSilence)

	utterance, _ := tg.Crop(1.0, 2.0, tier.CropStrict, true)
	cropped, _ := utterance.IntervalTier("words")
	for _, entry := range cropped.Entries() {
		fmt.Println(entry)
	}
	fmt.Println("range:", core.FormatNum(utterance.MinTime()), "to", core.FormatNum(utterance.MaxTime()))
	// Output:
	// (0, 0.5, "once")
	// (0.5, 1, "upon")
	// range: 0 to 1
}
