package socket

import (
	"sync"

	"go.uber.org/zap"
)

// Dispatcher is the process-wide fan-out handle services emit through. It is
// constructed before the transport comes up and handed to the services by
// reference; until Bind is called every emit is a silent no-op. That startup
// window is tolerated: delivery is best-effort and a missed event is never
// an error.
type Dispatcher struct {
	mu     sync.RWMutex
	hub    *Hub // nil while uninitialized
	logger *zap.Logger
}

// NewDispatcher creates a Dispatcher in the uninitialized state
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

// Bind attaches the hub and moves the dispatcher to the ready state
func (d *Dispatcher) Bind(hub *Hub) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hub = hub
	d.logger.Info("notification dispatcher ready")
}

// IsReady reports whether the transport has been brought up
func (d *Dispatcher) IsReady() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.hub != nil
}

func (d *Dispatcher) current() *Hub {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.hub
}

// EmitToUser delivers an event to every connection of one user
func (d *Dispatcher) EmitToUser(userID, event string, data interface{}) {
	if hub := d.current(); hub != nil {
		hub.Emit(UserRoom(userID), event, data)
	}
}

// EmitToUsers delivers an event to each user in the list
func (d *Dispatcher) EmitToUsers(userIDs []string, event string, data interface{}) {
	hub := d.current()
	if hub == nil {
		return
	}
	for _, id := range userIDs {
		hub.Emit(UserRoom(id), event, data)
	}
}

// EmitToRole delivers an event to everyone holding a role
func (d *Dispatcher) EmitToRole(role, event string, data interface{}) {
	if hub := d.current(); hub != nil {
		hub.Emit(RoleRoom(role), event, data)
	}
}

// EmitToBusiness delivers an event to everyone watching a business room
func (d *Dispatcher) EmitToBusiness(businessID, event string, data interface{}) {
	if hub := d.current(); hub != nil {
		hub.Emit(BusinessRoom(businessID), event, data)
	}
}

// Broadcast delivers an event to all connected clients
func (d *Dispatcher) Broadcast(event string, data interface{}) {
	if hub := d.current(); hub != nil {
		hub.Broadcast(event, data)
	}
}
