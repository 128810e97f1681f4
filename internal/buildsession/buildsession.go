// Package buildsession mints a unique identifier for one tarac
// invocation. A Session ID tags every row a compile writes into an
// inspection database, so two tarac processes writing to the same
// inspection directory (parallel CI jobs, say) never collide on
// session identity.
package buildsession

import (
	"time"

	"github.com/google/uuid"

	"github.com/tara-lang/tarac/internal/config"
)

// Session identifies one compiler invocation.
type Session struct {
	ID      uuid.UUID
	Started time.Time
}

// New mints a fresh Session, stamped with the current time. Under
// config.IsTestMode it mints the all-zero UUID instead of a random
// one, so every session in a test run carries the same ID.
func New() Session {
	id := uuid.New()
	if config.IsTestMode {
		id = uuid.Nil
	}
	return Session{ID: id, Started: time.Now()}
}

// String renders the session ID, the form written into inspection
// database rows.
func (s Session) String() string {
	return s.ID.String()
}
