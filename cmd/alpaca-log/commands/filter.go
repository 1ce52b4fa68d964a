package commands

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/alpaca-client/alpaca-go/pkg/log"
)

// FilterOptions specifies filtering criteria for the filter command.
type FilterOptions struct {
	Output        string
	SessionID     string
	DeviceType    string
	Attribute     string
	TransactionID uint
	TimeStart     string
	TimeEnd       string
	Direction     string
	Category      string
}

// buildFilter converts the options into a reader filter.
func buildFilter(opts FilterOptions) (log.Filter, error) {
	if opts.TransactionID > math.MaxUint32 {
		return log.Filter{}, fmt.Errorf("invalid tx: %d exceeds %d", opts.TransactionID, uint32(math.MaxUint32))
	}

	filter := log.Filter{
		SessionID:     opts.SessionID,
		DeviceType:    opts.DeviceType,
		Attribute:     opts.Attribute,
		TransactionID: uint32(opts.TransactionID),
	}

	if opts.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeStart)
		if err != nil {
			return filter, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if opts.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeEnd)
		if err != nil {
			return filter, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	if opts.Direction != "" {
		d, err := ParseDirectionFlag(opts.Direction)
		if err != nil {
			return filter, err
		}
		filter.Direction = &d
	}

	if opts.Category != "" {
		c, err := ParseCategoryFlag(opts.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}

	return filter, nil
}

// RunFilter filters the log file and writes matching events to a new file.
// It returns the number of events written.
func RunFilter(path string, opts FilterOptions) (int, error) {
	filter, err := buildFilter(opts)
	if err != nil {
		return 0, err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}
	defer logger.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read event: %w", err)
		}

		logger.Log(event)
		count++
	}

	return count, nil
}
