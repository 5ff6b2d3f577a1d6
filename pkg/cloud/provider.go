package cloud

import (
	"context"
	"sync"
)

// Provider resolves the identity facts of the running instance for one
// cloud environment. Every method returns a usable, non-empty value;
// failures degrade to provider specific defaults. ScalingGroup is the only
// method that may return an error, and only when the configuration marks the
// lookup as required.
type Provider interface {
	Kind() Kind
	InstanceID(ctx context.Context) string
	InstanceIP(ctx context.Context) string
	InstanceType(ctx context.Context) string
	Region(ctx context.Context) string
	ScalingGroup(ctx context.Context) (string, error)
}

// ProviderFactory creates a new Provider instance.
type ProviderFactory func(opts Options) Provider

var (
	registryMu       sync.RWMutex
	providerRegistry = map[Kind]ProviderFactory{}
)

// RegisterProvider registers a provider factory under the given kind.
// It is typically called from init() functions in provider-specific files.
func RegisterProvider(kind Kind, factory ProviderFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	providerRegistry[kind] = factory
}

// LookupProvider returns a Provider implementation for the given kind.
// Kinds without a registered factory get the local provider, which never
// touches the network and always produces values.
func LookupProvider(kind Kind, opts Options) Provider {
	registryMu.RLock()
	factory, ok := providerRegistry[kind]
	registryMu.RUnlock()
	if !ok {
		return newLocalProvider(opts)
	}
	return factory(opts)
}
