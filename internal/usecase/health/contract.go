package health

import (
	"context"

	"github.com/stylemart/stylemart/internal/usecase/modelinfo"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// ModelChecker reports the legacy model artifact status.
type ModelChecker interface {
	Status() modelinfo.Status
}
