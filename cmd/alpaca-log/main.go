// Command alpaca-log is a tool for viewing and analyzing Alpaca protocol capture files.
//
// Capture files are written by alpaca-client with the -protocol-log flag, or by
// any program that hands a log.FileLogger to its HTTP transport.
//
// Usage:
//
//	alpaca-log <command> [flags] <file.alog>
//
// Commands:
//
//	view     View capture file in human-readable format
//	export   Export capture file to JSONL or CSV format
//	filter   Filter capture file and write to new file
//	stats    Show statistics about the capture file
//
// Examples:
//
//	# View all events
//	alpaca-log view session.alog
//
//	# View only failed calls to one attribute
//	alpaca-log view -attribute slewtotarget -category response session.alog
//
//	# Export to JSONL
//	alpaca-log export -format jsonl session.alog
//
//	# Keep one device and save to new file
//	alpaca-log filter -device-type camera -o camera.alog session.alog
//
//	# Show statistics
//	alpaca-log stats session.alog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/alpaca-client/alpaca-go/cmd/alpaca-log/commands"
)

const usage = `alpaca-log - Alpaca Protocol Capture Analyzer

Usage:
  alpaca-log <command> [flags] <file.alog>

Commands:
  view     View capture file in human-readable format
  export   Export capture file to JSONL or CSV format
  filter   Filter capture file and write to new file
  stats    Show statistics about the capture file

Use "alpaca-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// pathArg returns the single file argument or exits with usage.
func pathArg(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `alpaca-log view - View capture file in human-readable format

Usage:
  alpaca-log view [flags] <file.alog>

Flags:
`)
		fs.PrintDefaults()
	}

	direction := fs.String("direction", "", "Filter by direction (in, out)")
	category := fs.String("category", "", "Filter by category (request, response, error)")
	deviceType := fs.String("device-type", "", "Filter by device type")
	attribute := fs.String("attribute", "", "Filter by attribute name")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	filter := commands.ViewFilter{
		DeviceType: *deviceType,
		Attribute:  *attribute,
	}

	if *direction != "" {
		d, err := commands.ParseDirectionFlag(*direction)
		if err != nil {
			fail(err)
		}
		filter.Direction = &d
	}

	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fail(err)
		}
		filter.Category = &c
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `alpaca-log export - Export capture file to JSONL or CSV format

Usage:
  alpaca-log export [flags] <file.alog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `alpaca-log filter - Filter capture file and write to new file

Usage:
  alpaca-log filter [flags] <file.alog>

Flags:
`)
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "Output file (required)")
	sessionID := fs.String("session", "", "Filter by transport session ID")
	deviceType := fs.String("device-type", "", "Filter by device type")
	attribute := fs.String("attribute", "", "Filter by attribute name")
	txID := fs.Uint("tx", 0, "Filter by client transaction ID")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	category := fs.String("category", "", "Filter by category (request, response, error)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	opts := commands.FilterOptions{
		Output:        *output,
		SessionID:     *sessionID,
		DeviceType:    *deviceType,
		Attribute:     *attribute,
		TransactionID: *txID,
		TimeStart:     *timeStart,
		TimeEnd:       *timeEnd,
		Direction:     *direction,
		Category:      *category,
	}

	count, err := commands.RunFilter(path, opts)
	if err != nil {
		fail(err)
	}
	fmt.Printf("Filtered %d events to %s\n", count, opts.Output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `alpaca-log stats - Show statistics about the capture file

Usage:
  alpaca-log stats <file.alog>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
