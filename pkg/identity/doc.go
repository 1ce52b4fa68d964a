// Package identity manages the client identity that tags every Alpaca request.
//
// An Identity pairs a client id, fixed for its lifetime, with a transaction
// counter. Construct exactly one Identity at process start and hand it to
// every DeviceClient so that transaction ids are unique process-wide:
//
//	id := identity.New()
//	telescope := interaction.NewClient(scopeEndpoint, tr, id)
//	camera := interaction.NewClient(cameraEndpoint, tr, id)
//
// Nothing is persisted. A new process picks a new random client id and
// restarts its transaction ids at 1.
package identity
