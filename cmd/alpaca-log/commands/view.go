// Package commands implements the alpaca-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/alpaca-client/alpaca-go/pkg/log"
)

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Direction  *log.Direction
	Category   *log.Category
	DeviceType string
	Attribute  string
}

func (f ViewFilter) logFilter() log.Filter {
	return log.Filter{
		Direction:  f.Direction,
		Category:   f.Category,
		DeviceType: f.DeviceType,
		Attribute:  f.Attribute,
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session] DIRECTION CATEGORY type/number attribute #tx
	ts := event.Timestamp.UTC().Format(timestampLayout)
	fmt.Fprintf(w, "%s [%s] %-3s %-8s %s/%d %s #%d\n",
		ts, shortenSessionID(event.SessionID), event.Direction, event.Category,
		event.DeviceType, event.DeviceNumber, event.Attribute, event.TransactionID)

	switch {
	case event.Request != nil:
		formatRequestDetails(w, event.Request)
	case event.Response != nil:
		formatResponseDetails(w, event.Response)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatRequestDetails(w io.Writer, req *log.RequestEvent) {
	fmt.Fprintf(w, "  %s %s\n", req.Operation, req.URL)
	if len(req.Params) == 0 {
		return
	}
	names := make([]string, 0, len(req.Params))
	for name := range req.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	pairs := make([]string, len(names))
	for i, name := range names {
		pairs[i] = name + "=" + req.Params[name]
	}
	fmt.Fprintf(w, "  Params: %s\n", strings.Join(pairs, " "))
}

func formatResponseDetails(w io.Writer, resp *log.ResponseEvent) {
	fmt.Fprintf(w, "  Status: %d\n", resp.StatusCode)
	fmt.Fprintf(w, "  Duration: %s\n", formatDuration(resp.Duration))
	if resp.ErrorNumber != 0 {
		fmt.Fprintf(w, "  Error: %s (0x%X) %s\n", resp.Kind(), resp.ErrorNumber, resp.ErrorMessage)
	}
	if len(resp.Body) > 0 {
		fmt.Fprintf(w, "  Body: %s", resp.Body)
		if resp.Truncated {
			fmt.Fprint(w, " (truncated)")
		}
		fmt.Fprintln(w)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseDirectionFlag parses a direction string from command-line flag (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "request":
		return log.CategoryRequest, nil
	case "response":
		return log.CategoryResponse, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be request, response, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.logFilter())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
