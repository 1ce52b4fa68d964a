// Package interaction implements the Alpaca device client.
//
// Every Alpaca device exposes its attributes and methods as HTTP resources
// under a common base address. Reads are GET requests carrying parameters in
// the query string, writes and method calls are PUT requests carrying a form
// body. Both answer with the same JSON envelope:
//
//	{"Value": ..., "ErrorNumber": 0, "ErrorMessage": ""}
//
// # Client Usage
//
// One identity is created per process and shared by every client, so that
// transaction ids are unique and increasing across all of them:
//
//	id := identity.New()
//	tr := transport.NewHTTP(transport.DefaultHTTPConfig())
//
//	ep, err := wire.NewEndpoint("http", "localhost:11111", "telescope", 0)
//	client := interaction.NewClient(ep, tr, id)
//
//	// Common attributes
//	name, err := client.Name(ctx)
//	err = client.SetConnected(ctx, true)
//
//	// Any attribute
//	v, err := client.GetAttribute(ctx, "rightascension", nil)
//	err = client.SetAttribute(ctx, "tracking", url.Values{"Tracking": {"True"}})
//
//	// Custom actions
//	result, err := client.InvokeAction(ctx, "Telescope:ClearFault")
//
// # Errors
//
// A server that answers with a non-zero error number yields a *DeviceError.
// Its Kind is the classification of the number and errors.Is matches the
// sentinel of that kind:
//
//	if errors.Is(err, interaction.ErrParked) { ... }
//
// A response with a status outside 200-203, or a body that is not an
// envelope, yields a *TransportError. Network failures are returned as the
// transport reported them. Nothing is retried.
package interaction
