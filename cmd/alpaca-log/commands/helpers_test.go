package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/alpaca-client/alpaca-go/pkg/log"
	"github.com/alpaca-client/alpaca-go/pkg/wire"
)

var testTime = time.Date(2026, 3, 1, 21, 0, 0, 123456000, time.UTC)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.alog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("failed to close logger: %v", err)
	}
	return path
}

func baseEvent(tx uint32, attribute string, offset time.Duration) log.Event {
	return log.Event{
		Timestamp:     testTime.Add(offset),
		SessionID:     "5f0c6e2a-1111-2222-3333-444455556666",
		ClientID:      4321,
		TransactionID: tx,
		Host:          "localhost:11111",
		DeviceType:    "telescope",
		DeviceNumber:  0,
		Attribute:     attribute,
	}
}

func requestEvent(tx uint32, attribute string, op wire.Operation) log.Event {
	e := baseEvent(tx, attribute, time.Duration(tx)*time.Second)
	e.Direction = log.DirectionOut
	e.Category = log.CategoryRequest
	e.Request = &log.RequestEvent{
		Operation: op,
		URL:       "http://localhost:11111/api/v1/telescope/0/" + attribute,
		Params: map[string]string{
			"ClientID":            "4321",
			"ClientTransactionID": wire.FormatUint(tx),
		},
	}
	return e
}

func responseEvent(tx uint32, attribute string, status, errNum int, body string) log.Event {
	e := baseEvent(tx, attribute, time.Duration(tx)*time.Second+5*time.Millisecond)
	e.Direction = log.DirectionIn
	e.Category = log.CategoryResponse
	e.Response = &log.ResponseEvent{
		StatusCode:  status,
		ErrorNumber: errNum,
		Duration:    5 * time.Millisecond,
		Body:        []byte(body),
	}
	if errNum != 0 {
		e.Response.ErrorMessage = "parked"
	}
	return e
}

func errorEvent(tx uint32, attribute string) log.Event {
	e := baseEvent(tx, attribute, time.Duration(tx)*time.Second+time.Millisecond)
	e.Direction = log.DirectionIn
	e.Category = log.CategoryError
	e.Error = &log.ErrorEventData{
		Message: "connection refused",
		Context: "GET " + attribute,
	}
	return e
}

// sampleEvents is a short session: a successful read, a parked write,
// an HTTP failure and a network error.
func sampleEvents() []log.Event {
	return []log.Event{
		requestEvent(1, "connected", wire.OpGet),
		responseEvent(1, "connected", 200, 0, `{"Value":true,"ErrorNumber":0,"ErrorMessage":""}`),
		requestEvent(2, "slewtotarget", wire.OpPut),
		responseEvent(2, "slewtotarget", 200, 0x408, `{"Value":null,"ErrorNumber":1032,"ErrorMessage":"parked"}`),
		requestEvent(3, "tracking", wire.OpGet),
		responseEvent(3, "tracking", 500, 0, "internal error"),
		requestEvent(4, "name", wire.OpGet),
		errorEvent(4, "name"),
	}
}
