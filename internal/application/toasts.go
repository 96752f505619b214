package application

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/merkato/storefront/internal/ports"
)

// maxToasts bounds the visible backlog; the oldest toast is dropped first.
const maxToasts = 3

// Toast is one queued UI notification.
type Toast struct {
	ID        string           `json:"id"`
	Level     ports.ToastLevel `json:"level"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}

// ToastCenter collects fire-and-forget notifications from the stores and
// hands them to the UI on demand. It implements ports.Notifier.
type ToastCenter struct {
	mu     sync.Mutex
	toasts []Toast
	nowFn  func() time.Time
}

func NewToastCenter() *ToastCenter {
	return &ToastCenter{nowFn: func() time.Time { return time.Now().UTC() }}
}

func (c *ToastCenter) Toast(level ports.ToastLevel, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toasts = append(c.toasts, Toast{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: c.nowFn(),
	})
	if len(c.toasts) > maxToasts {
		c.toasts = c.toasts[len(c.toasts)-maxToasts:]
	}
}

// List returns the pending toasts, newest last.
func (c *ToastCenter) List() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}

// Dismiss drops one toast by id; unknown ids are a no-op.
func (c *ToastCenter) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, t := range c.toasts {
		if t.ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			return
		}
	}
}

// Clear drops every pending toast.
func (c *ToastCenter) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toasts = nil
}
