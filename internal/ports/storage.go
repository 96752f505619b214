package ports

import "context"

// Device-local snapshot keys. They match the browser localStorage keys the
// storefront has always used, so snapshots survive a transport swap.
const (
	SnapshotKeyCart     = "merkato_cart"
	SnapshotKeySession  = "merkato_auth"
	SnapshotKeyCheckout = "merkato_checkout"
)

// SnapshotStore persists JSON state snapshots in device-local key-value
// storage. Absence of a key is not an error; callers treat it as "no prior
// state". Delete removes the key entirely so a fresh load cannot resurrect
// stale data.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
}
