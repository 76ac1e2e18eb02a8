package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// FetchProgress renders a progress bar while a dashboard fetches its
// result files.
type FetchProgress struct {
	bar *progressbar.ProgressBar
}

// NewFetchProgress creates a progress bar for count files
func NewFetchProgress(count int) *FetchProgress {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(color.CyanString("Fetching result files")),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &FetchProgress{bar: bar}
}

// Update advances the bar to done of total fetches
func (p *FetchProgress) Update(done, total int) {
	_ = p.bar.Set(done)
	p.bar.Describe(color.CyanString("Fetching result files ") +
		fmt.Sprintf("[%d/%d]", done, total))
}

// Finish completes the bar
func (p *FetchProgress) Finish() {
	_ = p.bar.Finish()
}
