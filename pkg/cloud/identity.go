package cloud

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Identity is the process-wide entry point for instance facts. The Kind is
// fixed at construction; the matching Provider is built on first use and
// shared by every caller afterwards.
type Identity struct {
	kind     Kind
	opts     Options
	detector *Detector

	once     sync.Once
	provider Provider
}

// New returns an Identity bound to kind. The provider is not built until a
// fact is first requested.
func New(kind Kind, opts Options) *Identity {
	return &Identity{
		kind:     kind,
		opts:     opts.withDefaults(),
		detector: NewDetector(),
	}
}

// Detect classifies the host with d and returns an Identity bound to the
// result. Containerization is checked against the same detector.
func Detect(d *Detector, opts Options) *Identity {
	kind := d.Detect()
	log.WithField("provider", kind).Info("cloud provider detected")
	ident := New(kind, opts)
	ident.detector = d
	return ident
}

var defaultIdentity = sync.OnceValue(func() *Identity {
	return Detect(NewDetector(), LoadOptions())
})

// Default returns the Identity for the current host, detecting the cloud
// environment on the first call.
func Default() *Identity {
	return defaultIdentity()
}

// Kind returns the detected cloud environment.
func (i *Identity) Kind() Kind {
	return i.kind
}

// Provider returns the provider bound to the identity's kind, building it
// on the first call. Concurrent first callers wait for the single build.
func (i *Identity) Provider() Provider {
	i.once.Do(func() {
		i.provider = LookupProvider(i.kind, i.opts)
		log.WithField("provider", i.provider.Kind()).Debug("identity resolvers bound")
	})
	return i.provider
}

// InstanceID returns the instance identifier.
func (i *Identity) InstanceID(ctx context.Context) string {
	return i.Provider().InstanceID(ctx)
}

// InstanceIP returns the private IPv4 address.
func (i *Identity) InstanceIP(ctx context.Context) string {
	return i.Provider().InstanceIP(ctx)
}

// InstanceType returns the machine type or size.
func (i *Identity) InstanceType(ctx context.Context) string {
	return i.Provider().InstanceType(ctx)
}

// Region returns the provider-qualified region, e.g. "amazon/us-east-1".
func (i *Identity) Region(ctx context.Context) string {
	return i.Provider().Region(ctx)
}

// ScalingGroup returns the scaling group the instance belongs to.
func (i *Identity) ScalingGroup(ctx context.Context) (string, error) {
	return i.Provider().ScalingGroup(ctx)
}

// Fact resolves a single fact by name.
func (i *Identity) Fact(ctx context.Context, f Fact) (string, error) {
	switch f {
	case FactID:
		return i.InstanceID(ctx), nil
	case FactIP:
		return i.InstanceIP(ctx), nil
	case FactType:
		return i.InstanceType(ctx), nil
	case FactRegion:
		return i.Region(ctx), nil
	case FactScalingGroup:
		return i.ScalingGroup(ctx)
	default:
		return "", fmt.Errorf("unknown fact %q", f)
	}
}

// IsContainerized reports whether the process runs inside a container.
func (i *Identity) IsContainerized() bool {
	return i.detector.IsContainerized()
}
