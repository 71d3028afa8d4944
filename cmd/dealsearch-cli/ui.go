package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// UI provides the CLI's user-facing output: colored status lines, tables,
// and progress indicators. Adapted from the teacher CLI's UI helper: an
// mpb-backed bar for per-term ranking progress, a briandowns/spinner for
// indeterminate work, and a schollz/progressbar helper, matching the
// orchestrator subcommand's progress idiom.
type UI struct {
	jsonMode bool
	noColor  bool
}

// NewUI creates a UI instance. jsonMode suppresses all decorative output
// so stdout carries only the JSON payload a caller asked for.
func NewUI(jsonMode, noColor bool) *UI {
	return &UI{jsonMode: jsonMode, noColor: noColor}
}

func (ui *UI) Success(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	if ui.noColor {
		fmt.Printf("✓ %s\n", fmt.Sprintf(format, args...))
		return
	}
	color.New(color.FgGreen).Printf("✓ %s\n", fmt.Sprintf(format, args...))
}

func (ui *UI) Error(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	if ui.noColor {
		fmt.Fprintf(os.Stderr, "✗ %s\n", fmt.Sprintf(format, args...))
		return
	}
	color.New(color.FgRed).Fprintf(os.Stderr, "✗ %s\n", fmt.Sprintf(format, args...))
}

func (ui *UI) Warning(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	if ui.noColor {
		fmt.Printf("⚠ %s\n", fmt.Sprintf(format, args...))
		return
	}
	color.New(color.FgYellow).Printf("⚠ %s\n", fmt.Sprintf(format, args...))
}

func (ui *UI) Info(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	if ui.noColor {
		fmt.Printf("ℹ %s\n", fmt.Sprintf(format, args...))
		return
	}
	color.New(color.FgCyan).Printf("ℹ %s\n", fmt.Sprintf(format, args...))
}

func (ui *UI) Section(title string) {
	if ui.jsonMode {
		return
	}
	fmt.Println()
	if ui.noColor {
		fmt.Printf("━━━ %s ━━━\n", strings.ToUpper(title))
		return
	}
	color.New(color.FgMagenta, color.Bold).Printf("━━━ %s ━━━\n", strings.ToUpper(title))
}

func (ui *UI) KeyValue(key string, value interface{}) {
	if ui.jsonMode {
		return
	}
	if ui.noColor {
		fmt.Printf("  %s: %v\n", key, value)
		return
	}
	color.New(color.FgYellow).Printf("  %s: ", key)
	fmt.Printf("%v\n", value)
}

func (ui *UI) Newline() {
	if !ui.jsonMode {
		fmt.Println()
	}
}

// Table prints a simple box-drawing table. No-op in JSON mode.
func (ui *UI) Table(headers []string, rows [][]string) {
	if ui.jsonMode || len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printLine := func(left, mid, right string) {
		fmt.Print(left)
		for i, w := range widths {
			fmt.Print(strings.Repeat("─", w+2))
			if i < len(widths)-1 {
				fmt.Print(mid)
			}
		}
		fmt.Print(right + "\n")
	}
	printRow := func(cells []string) {
		fmt.Print("│")
		for i, w := range widths {
			if i < len(cells) {
				fmt.Printf(" %-*s ", w, cells[i])
			} else {
				fmt.Printf(" %-*s ", w, "")
			}
			fmt.Print("│")
		}
		fmt.Println()
	}

	printLine("┌", "┬", "┐")
	printRow(headers)
	printLine("├", "┼", "┤")
	for _, row := range rows {
		printRow(row)
	}
	printLine("└", "┴", "┘")
}

// NewSpinner starts an indeterminate spinner with the given message; the
// caller must call Stop() when the work completes. No-op in JSON mode.
func (ui *UI) NewSpinner(message string) *spinner.Spinner {
	if ui.jsonMode {
		return nil
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Writer = os.Stderr
	s.Start()
	return s
}

// NewProgressBar creates a deterministic progress bar over total items.
// No-op in JSON mode.
func (ui *UI) NewProgressBar(total int64, description string) *progressbar.ProgressBar {
	if ui.jsonMode {
		return nil
	}
	return progressbar.NewOptions64(
		total,
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() { fmt.Fprint(os.Stderr, "\n") }),
		progressbar.OptionFullWidth(),
	)
}

// TermProgress tracks ranking progress across an expanded query's terms:
// a single mpb bar incremented once per term as it finishes ranking.
type TermProgress struct {
	progress *mpb.Progress
	bar      *mpb.Bar
}

// NewTermProgress creates a bar sized to termCount. No-op in JSON mode.
func (ui *UI) NewTermProgress(termCount int) *TermProgress {
	if ui.jsonMode || termCount <= 1 {
		return nil
	}
	progress := mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
	bar := progress.AddBar(int64(termCount),
		mpb.PrependDecorators(
			decor.Name("ranking expanded terms", decor.WC{W: 24, C: decor.DSyncSpaceR}),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WC{W: 5}),
			decor.OnComplete(decor.Elapsed(decor.ET_STYLE_GO, decor.WC{W: 8}), "done"),
		),
	)
	return &TermProgress{progress: progress, bar: bar}
}

// Done increments the bar by one term.
func (tp *TermProgress) Done() {
	if tp == nil {
		return
	}
	tp.bar.Increment()
}

// Wait blocks until the bar has finished rendering.
func (tp *TermProgress) Wait() {
	if tp == nil {
		return
	}
	tp.progress.Wait()
}

// FormatDuration formats a duration the way the engine's status lines do.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%.1fm", d.Minutes())
}
