// Package wire defines the HTTP/JSON wire format types for the ASCOM Alpaca protocol.
//
// Every device attribute lives at a fixed address:
//
//	{scheme}://{host}/api/v{version}/{deviceType}/{deviceNumber}/{attribute}
//
// Reads are HTTP GET requests with the parameters in the query string. Writes
// are HTTP PUT requests with the parameters form-encoded in the body. Every
// request carries the ClientID and ClientTransactionID parameters.
//
// # Response Envelope
//
// Servers answer with a JSON object:
//
//	{
//	  "Value": ...,            // attribute dependent: string, number, bool, array
//	  "ErrorNumber": 0,        // 0 = success
//	  "ErrorMessage": "",
//	  "ClientTransactionID": 7,
//	  "ServerTransactionID": 812
//	}
//
// # Error Numbers
//
// Non-zero error numbers are classified into an ErrorKind by Classify. The
// reserved range 0x400-0x4FF carries protocol errors, 0x500-0xFFF is free for
// driver-specific errors.
package wire
