package ports

// ToastLevel categorizes fire-and-forget UI notifications.
type ToastLevel string

const (
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
	ToastInfo    ToastLevel = "info"
)

// Notifier is the notification sink the stores publish into on every state
// transition of consequence. Implementations must never block or fail a
// store mutation.
type Notifier interface {
	Toast(level ToastLevel, message string)
}

// NopNotifier discards notifications; useful default for tests.
type NopNotifier struct{}

func (NopNotifier) Toast(ToastLevel, string) {}
