// Package display renders TMDB data for the terminal.
package display

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/s0up4200/tmdbctl/tmdb"
)

// FormatOptions controls movie list output
type FormatOptions struct {
	// ShowDetails adds the release date and poster path columns
	ShowDetails bool
	// Color enables ANSI colors
	Color bool
}

// ConsoleFormatter provides console output formatting for TMDB data
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// ShouldColorize reports whether writer is a terminal that can show colors
func ShouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// FormatMovieList formats a list of movies as a table under a heading
func (f *ConsoleFormatter) FormatMovieList(heading string, movies []tmdb.MovieSummary, opts FormatOptions) string {
	if len(movies) == 0 {
		return fmt.Sprintf("%s: no movies found\n", heading)
	}

	headers := []string{"#", "ID", "Title", "Year", "Poster"}
	if opts.ShowDetails {
		headers = append(headers, "Released", "Poster Path")
	}

	rows := make([][]string, 0, len(movies))
	for i, movie := range movies {
		year := "-"
		if y := movie.Year(); y > 0 {
			year = strconv.Itoa(y)
		}
		poster := colorize("no", text.FgRed, opts.Color)
		if movie.HasPoster() {
			poster = colorize("yes", text.FgGreen, opts.Color)
		}

		row := []string{strconv.Itoa(i + 1), strconv.Itoa(movie.ID), movie.Title, year, poster}
		if opts.ShowDetails {
			row = append(row, valueOrDash(movie.ReleaseDate), valueOrDash(movie.PosterPath))
		}
		rows = append(rows, row)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%d):\n", colorize(heading, text.Bold, opts.Color), len(movies))
	sb.WriteString(renderTable(headers, rows, []int{0, 1, 3}))
	sb.WriteString("\n")
	return sb.String()
}

// FormatServiceConfig formats the cached image configuration
func (f *ConsoleFormatter) FormatServiceConfig(cfg tmdb.ServiceConfig) string {
	var sb strings.Builder
	sb.WriteString("\nImage configuration:\n")
	fmt.Fprintf(&sb, "├── Base URL: %s\n", cfg.ImageBaseURL)
	fmt.Fprintf(&sb, "╰── Poster sizes: %s\n", strings.Join(cfg.PosterSizes, ", "))
	return sb.String()
}

// FormatPosterResults summarizes a poster batch. paths holds the saved file
// for each fetched poster, in the same order as result.Fetched.
func (f *ConsoleFormatter) FormatPosterResults(result tmdb.PosterBatchResult, paths []string, color bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nPosters: %d requested, %d saved, %d without poster, %d failed\n",
		result.Requested, len(result.Fetched), len(result.Skipped), len(result.Failed))

	if len(result.Fetched) > 0 {
		rows := make([][]string, 0, len(result.Fetched))
		for i, poster := range result.Fetched {
			path := "-"
			if i < len(paths) {
				path = paths[i]
			}
			rows = append(rows, []string{poster.Movie.Title, poster.Size, strconv.Itoa(len(poster.Data)), path})
		}
		sb.WriteString(renderTable([]string{"Title", "Size", "Bytes", "File"}, rows, []int{2}))
		sb.WriteString("\n")
	}

	for _, movie := range result.Skipped {
		fmt.Fprintf(&sb, "%s %s (ID: %d) has no poster\n", colorize("-", text.FgYellow, color), movie.Title, movie.ID)
	}
	for _, failure := range result.Failed {
		fmt.Fprintf(&sb, "%s %s\n", colorize("✗", text.FgRed, color), failure.Error())
	}

	return sb.String()
}

func renderTable(headers []string, rows [][]string, rightAligned []int) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	right := make(map[int]bool, len(rightAligned))
	for _, i := range rightAligned {
		right[i] = true
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if right[i] {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func colorize(s string, color text.Color, enabled bool) string {
	if !enabled {
		return s
	}
	return color.Sprint(s)
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
