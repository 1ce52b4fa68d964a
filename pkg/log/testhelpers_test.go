package log

import (
	"time"

	"github.com/alpaca-client/alpaca-go/pkg/wire"
)

func requestEvent(tx uint32, attribute string) Event {
	return Event{
		Timestamp:     time.Date(2026, 3, 1, 21, 0, 0, int(tx), time.UTC),
		SessionID:     "session-1",
		Direction:     DirectionOut,
		Category:      CategoryRequest,
		ClientID:      4321,
		TransactionID: tx,
		Host:          "localhost:11111",
		DeviceType:    "telescope",
		DeviceNumber:  0,
		Attribute:     attribute,
		Request: &RequestEvent{
			Operation: wire.OpGet,
			URL:       "http://localhost:11111/api/v1/telescope/0/" + attribute,
			Params:    map[string]string{"ClientID": "4321", "ClientTransactionID": "1"},
		},
	}
}

func responseEvent(tx uint32, attribute string, errorNumber int) Event {
	return Event{
		Timestamp:     time.Date(2026, 3, 1, 21, 0, 1, int(tx), time.UTC),
		SessionID:     "session-1",
		Direction:     DirectionIn,
		Category:      CategoryResponse,
		ClientID:      4321,
		TransactionID: tx,
		Host:          "localhost:11111",
		DeviceType:    "telescope",
		Attribute:     attribute,
		Response: &ResponseEvent{
			StatusCode:   200,
			ErrorNumber:  errorNumber,
			ErrorMessage: "",
			Duration:     3 * time.Millisecond,
			Body:         []byte(`{"Value":true,"ErrorNumber":0,"ErrorMessage":""}`),
		},
	}
}
