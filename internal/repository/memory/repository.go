package memory

import (
	"sync"
	"time"

	"github.com/omarshaarawi/sleeperboard/internal/models"
)

type Repository struct {
	state models.LoadState
	mu    sync.RWMutex
	now   func() time.Time
}

func NewRepository() *Repository {
	return &Repository{
		state: models.LoadState{Status: models.StatusIdle},
		now:   time.Now,
	}
}

// BeginLoad marks a load as in flight. It returns false, changing nothing,
// when another load already is.
func (r *Repository) BeginLoad() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state.Status == models.StatusLoading {
		return false
	}
	r.state.Status = models.StatusLoading
	r.state.UpdatedAt = r.now()
	return true
}

func (r *Repository) Publish(snapshot *models.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = models.LoadState{
		Status:    models.StatusReady,
		Snapshot:  snapshot,
		UpdatedAt: r.now(),
	}
}

// Fail flags the load as failed; the previous snapshot stays readable.
func (r *Repository) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Status = models.StatusError
	r.state.Err = err
	r.state.UpdatedAt = r.now()
}

func (r *Repository) State() models.LoadState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

func (r *Repository) GetSnapshot() *models.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.Snapshot
}
