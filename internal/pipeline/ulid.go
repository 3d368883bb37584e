package pipeline

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid"
)

// Job ids are ULIDs: sortable by creation time and unique within one
// process. Monotonic entropy is not safe for concurrent use.
var (
	ulidMu      sync.Mutex
	ulidEntropy = ulid.Monotonic(rand.Reader, 0)
)

func generateULID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy).String()
}
