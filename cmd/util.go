package cmd

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog/log"

	"github.com/darmiel/voxauth/pkg/client"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()

	greenCheck = color.GreenString("✔")
	redCross   = color.RedString("✘")
)

// BeQuietError signals that the error was already reported to the user.
type BeQuietError struct{}

func (BeQuietError) Error() string {
	return "command failed"
}

// logError reports err with its correlation id and returns a BeQuietError.
func logError(err error, correlationID, msg string) error {
	var apiErr client.APIError
	if errors.As(err, &apiErr) && apiErr.CorrelationID != "" {
		correlationID = apiErr.CorrelationID
	}
	log.Error().
		Err(err).
		Str("correlation_id", correlationID).
		Msgf("%s %s", redCross, msg)
	return BeQuietError{}
}

// newTable returns a rounded table writing to stdout with header as its first row.
func newTable(header ...any) table.Writer {
	style := table.StyleRounded
	style.Format.Header = text.FormatDefault

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(style)
	t.AppendHeader(table.Row(header))
	return t
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// orDash renders empty values in tables.
func orDash(s string) string {
	if s == "" {
		return faint("-")
	}
	return s
}
