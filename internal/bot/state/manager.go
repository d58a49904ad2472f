package state

import (
	"context"
	"sync"

	"github.com/vladimiradmaev/health-advisor/internal/domain"
)

// User states
const (
	None             = "none"
	WaitingForWeight = "waiting_for_weight"
	WaitingForHeight = "waiting_for_height"
	WaitingForAge    = "waiting_for_age"
	WaitingForFood   = "waiting_for_food"
	ReadyToAnalyze   = "ready_to_analyze"
)

// StateManager keeps the in-progress form of each chat user.
type StateManager interface {
	GetUserState(ctx context.Context, userID int64) string
	SetUserState(ctx context.Context, userID int64, state string)
	SetInput(ctx context.Context, userID int64, field domain.Field, value string)
	GetInputs(ctx context.Context, userID int64) domain.Inputs
	Clear(ctx context.Context, userID int64)
}

// Manager is an in-memory StateManager
type Manager struct {
	userStates map[int64]string
	inputs     map[int64]domain.Inputs
	mu         sync.RWMutex
}

// NewManager creates a new state manager
func NewManager() *Manager {
	return &Manager{
		userStates: make(map[int64]string),
		inputs:     make(map[int64]domain.Inputs),
	}
}

// SetUserState sets the state for a user
func (m *Manager) SetUserState(_ context.Context, userID int64, state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userStates[userID] = state
}

// GetUserState gets the state for a user
func (m *Manager) GetUserState(_ context.Context, userID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, exists := m.userStates[userID]
	if !exists {
		return None
	}
	return state
}

// SetInput stores one raw form value
func (m *Manager) SetInput(_ context.Context, userID int64, field domain.Field, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	in := m.inputs[userID]
	switch field {
	case domain.FieldWeight:
		in.Weight = value
	case domain.FieldHeight:
		in.Height = value
	case domain.FieldAge:
		in.Age = value
	case domain.FieldFoodName:
		in.FoodName = value
	}
	m.inputs[userID] = in
}

// GetInputs returns the raw form values collected so far
func (m *Manager) GetInputs(_ context.Context, userID int64) domain.Inputs {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.inputs[userID]
}

// Clear drops state and inputs for a user
func (m *Manager) Clear(_ context.Context, userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.userStates, userID)
	delete(m.inputs, userID)
}
