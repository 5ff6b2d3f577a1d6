package cloud

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// localProvider serves hosts outside a recognised cloud. It only touches
// the network for the DNS lookup of its own host name.
type localProvider struct {
	opts Options
}

func newLocalProvider(opts Options) Provider {
	return &localProvider{opts: opts.withDefaults()}
}

func (p *localProvider) Kind() Kind { return KindUnknown }

func (p *localProvider) InstanceID(context.Context) string {
	return p.opts.hostInstanceID()
}

// InstanceIP resolves the host's own name to an IPv4 address.
func (p *localProvider) InstanceIP(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	host := p.opts.hostname()
	ips, err := p.opts.Resolver.LookupIP(ctx, "ip4", host)
	if err != nil || len(ips) == 0 {
		log.WithFields(log.Fields{
			"host":  host,
			"error": err,
		}).Debug("cannot resolve own host name, using loopback")
		return defaultIP
	}
	return ips[0].String()
}

func (p *localProvider) InstanceType(context.Context) string {
	return defaultType
}

func (p *localProvider) Region(context.Context) string {
	if p.opts.LocalRegion != "" {
		return p.opts.LocalRegion
	}
	return "local/unknown"
}

func (p *localProvider) ScalingGroup(context.Context) (string, error) {
	return defaultScalingGroup, nil
}

// nolint:gochecknoinits // registration-style init keeps provider wiring local to this file.
func init() {
	RegisterProvider(KindUnknown, newLocalProvider)
}
