package deps

import (
	"time"

	"github.com/adbrdt/folio/internal/logger"
	"github.com/adbrdt/folio/internal/resource"
	"github.com/adbrdt/folio/internal/store"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	AdminSecret string      // shared secret for the write routes
	Store       store.Store // record store, for readiness checks

	// Per-resource clients; the handlers are the same four shapes for all
	// three, parametrized by client.
	Timeline *resource.Client
	Career   *resource.Client
	Posts    *resource.Client
}
