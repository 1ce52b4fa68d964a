// Package transport moves Alpaca requests over HTTP.
//
// The transport layer handles:
//   - Encoding parameters (query string for GET, form body for PUT)
//   - Timeouts, TLS settings and the User-Agent header
//   - Optional protocol capture of every request and response
//
// It does not interpret responses. Every HTTP status, including 4xx and
// 5xx, is returned as a Response; only failures that produced no response
// at all (DNS, refused connections, timeouts, cancelled contexts) are
// returned as errors. Nothing is retried.
//
// # Protocol Stack
//
//	┌────────────────────────────────┐
//	│  JSON envelope (Value, Error)  │
//	├────────────────────────────────┤
//	│  GET query / PUT form body     │
//	├────────────────────────────────┤
//	│           HTTP/1.1             │
//	├────────────────────────────────┤
//	│       TCP (TLS optional)       │
//	└────────────────────────────────┘
package transport
