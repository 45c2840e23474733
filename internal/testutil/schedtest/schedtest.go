// Package schedtest builds schedule services for handler tests.
package schedtest

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/codr1/turnero/internal/db"
	"github.com/codr1/turnero/internal/schedule"
	"github.com/codr1/turnero/internal/testutil"
)

// Location is a fixed UTC-3 zone so tests do not depend on tzdata.
var Location = time.FixedZone("ART", -3*60*60)

type Env struct {
	Service *schedule.Service
	DB      *db.DB
	Clock   clockwork.FakeClock
}

// New returns a service over a fresh database whose clock reads
// 2025-05-30 10:00 in Location.
func New(t *testing.T) Env {
	t.Helper()

	database := testutil.NewTestDB(t)
	clock := clockwork.NewFakeClockAt(time.Date(2025, 5, 30, 10, 0, 0, 0, Location))
	svc := schedule.NewService(database, schedule.Options{
		Clock:       clock,
		Location:    Location,
		PhoneRegion: "AR",
	})
	return Env{Service: svc, DB: database, Clock: clock}
}
