package identity

import (
	"errors"
	"math/rand/v2"
	"sync"
)

// ErrExhausted is the panic value of NextTransactionID once all
// 2^32-1 transaction ids of an Identity have been assigned.
var ErrExhausted = errors.New("identity: transaction ids exhausted")

// MaxClientID is the largest randomly chosen client id.
const MaxClientID = 65535

// Identity owns a client id and a transaction counter.
// It is safe for concurrent use.
type Identity struct {
	clientID uint32

	mu     sync.Mutex
	nextTx uint32
}

// New creates an Identity with a random client id in [0, MaxClientID].
func New() *Identity {
	return NewWithClientID(uint32(rand.IntN(MaxClientID + 1)))
}

// NewWithClientID creates an Identity with a fixed client id.
func NewWithClientID(clientID uint32) *Identity {
	return &Identity{
		clientID: clientID,
		nextTx:   1,
	}
}

// ClientID returns the client id. It never changes.
func (i *Identity) ClientID() uint32 {
	return i.clientID
}

// NextTransactionID returns a transaction id greater than every id returned
// before. Ids start at 1 and are assigned without gaps up to math.MaxUint32;
// the call after that panics with ErrExhausted rather than reuse an id.
func (i *Identity) NextTransactionID() uint32 {
	i.mu.Lock()
	defer i.mu.Unlock()

	id := i.nextTx
	if id == 0 {
		panic(ErrExhausted)
	}
	i.nextTx++ // wraps to 0 after the last id
	return id
}

// Snapshot returns the client id together with a freshly assigned transaction id.
func (i *Identity) Snapshot() (clientID, transactionID uint32) {
	return i.clientID, i.NextTransactionID()
}

// Peek returns the transaction id the next call will assign, without consuming it.
// It returns 0 once the ids are exhausted.
func (i *Identity) Peek() uint32 {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.nextTx
}
