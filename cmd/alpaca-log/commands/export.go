package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/alpaca-client/alpaca-go/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// exportRecord is the flat JSON shape of one event.
type exportRecord struct {
	Timestamp     string            `json:"timestamp"`
	SessionID     string            `json:"session_id"`
	Direction     string            `json:"direction"`
	Category      string            `json:"category"`
	ClientID      uint32            `json:"client_id"`
	TransactionID uint32            `json:"transaction_id"`
	Host          string            `json:"host,omitempty"`
	DeviceType    string            `json:"device_type,omitempty"`
	DeviceNumber  uint32            `json:"device_number"`
	Attribute     string            `json:"attribute,omitempty"`
	Method        string            `json:"method,omitempty"`
	URL           string            `json:"url,omitempty"`
	Params        map[string]string `json:"params,omitempty"`
	Status        int               `json:"status,omitempty"`
	ErrorNumber   int               `json:"error_number,omitempty"`
	ErrorKind     string            `json:"error_kind,omitempty"`
	ErrorMessage  string            `json:"error_message,omitempty"`
	DurationNanos int64             `json:"duration_ns,omitempty"`
	Body          string            `json:"body,omitempty"`
	Error         string            `json:"error,omitempty"`
}

func toRecord(event log.Event) exportRecord {
	rec := exportRecord{
		Timestamp:     event.Timestamp.UTC().Format(timestampLayout),
		SessionID:     event.SessionID,
		Direction:     event.Direction.String(),
		Category:      event.Category.String(),
		ClientID:      event.ClientID,
		TransactionID: event.TransactionID,
		Host:          event.Host,
		DeviceType:    event.DeviceType,
		DeviceNumber:  event.DeviceNumber,
		Attribute:     event.Attribute,
	}
	switch {
	case event.Request != nil:
		rec.Method = event.Request.Operation.String()
		rec.URL = event.Request.URL
		rec.Params = event.Request.Params
	case event.Response != nil:
		rec.Status = event.Response.StatusCode
		rec.ErrorNumber = event.Response.ErrorNumber
		rec.ErrorMessage = event.Response.ErrorMessage
		if event.Response.ErrorNumber != 0 {
			rec.ErrorKind = event.Response.Kind().String()
		}
		rec.DurationNanos = event.Response.Duration.Nanoseconds()
		rec.Body = string(event.Response.Body)
	case event.Error != nil:
		rec.Error = event.Error.Message
	}
	return rec
}

// RunExport exports the log file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(toRecord(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "session_id", "direction", "category", "client_id", "transaction_id",
		"device_type", "device_number", "attribute", "method", "status", "error_number", "error_kind"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		rec := toRecord(event)
		status, errNum := "", ""
		if rec.Status != 0 {
			status = strconv.Itoa(rec.Status)
		}
		if rec.ErrorNumber != 0 {
			errNum = strconv.Itoa(rec.ErrorNumber)
		}
		row := []string{
			rec.Timestamp,
			rec.SessionID,
			rec.Direction,
			rec.Category,
			strconv.FormatUint(uint64(rec.ClientID), 10),
			strconv.FormatUint(uint64(rec.TransactionID), 10),
			rec.DeviceType,
			strconv.FormatUint(uint64(rec.DeviceNumber), 10),
			rec.Attribute,
			rec.Method,
			status,
			errNum,
			rec.ErrorKind,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
