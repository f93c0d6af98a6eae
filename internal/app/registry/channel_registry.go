package registry

import (
	"fmt"
	"sync"

	"github.com/Cracken-1/pandamart-notifications/configs"
	"github.com/Cracken-1/pandamart-notifications/internal/domain"
	"github.com/Cracken-1/pandamart-notifications/internal/domain/port/channel"
)

// SenderFactory builds a channel.Sender from configuration. A factory error
// means the channel is unconfigured and stays disabled for the process
// lifetime; it is not a per-send error.
type SenderFactory func(cfg *configs.Config) (channel.Sender, error)

var (
	senderRegistry = make(map[domain.Channel]SenderFactory)
	registryMutex  sync.RWMutex
)

// RegisterSenderFactory registers a new sender factory. It should be called
// during initialization (e.g., in an init() block).
func RegisterSenderFactory(name domain.Channel, factory SenderFactory) error {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	if _, exists := senderRegistry[name]; exists {
		return fmt.Errorf("sender factory already registered: %s", name)
	}
	senderRegistry[name] = factory
	return nil
}

// GetSenderFactory retrieves a sender factory by channel name.
func GetSenderFactory(name domain.Channel) (SenderFactory, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	factory, exists := senderRegistry[name]
	if !exists {
		return nil, fmt.Errorf("no sender factory registered for channel: %s", name)
	}
	return factory, nil
}
