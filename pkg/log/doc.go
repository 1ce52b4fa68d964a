// Package log provides protocol capture for Alpaca client traffic.
//
// This package defines the Logger interface and the Event type used to record
// every request a transport sends and every response it receives. It is
// separate from operational logging (slog): a capture is a complete,
// machine-readable trace for debugging misbehaving servers.
//
// # Basic Usage
//
// Set the ProtocolLogger field of the HTTP transport configuration:
//
//	cfg := transport.DefaultHTTPConfig()
//
//	// Development: protocol events on the console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// Production: binary capture file
//	fl, _ := log.NewFileLogger("/var/log/alpaca/session.alog")
//	defer fl.Close()
//	cfg.ProtocolLogger = fl
//
//	// Both
//	cfg.ProtocolLogger = log.NewMultiLogger(console, fl)
//
//	tr := transport.NewHTTP(cfg)
//
// # Events
//
// A request produces one outgoing REQUEST event. The matching response, or
// the network error that replaced it, produces one incoming RESPONSE or
// ERROR event carrying the same client and transaction ids.
//
// # File Format
//
// Capture files are a stream of CBOR encoded events with integer keys,
// conventionally named *.alog. The alpaca-log command views, filters and
// exports them.
package log
