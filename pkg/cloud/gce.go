package cloud

import (
	"context"

	"gitlab.com/davidxarnold/hostid/pkg/util"
)

// gceProvider resolves facts from the GCE metadata server.
// ref: https://cloud.google.com/compute/docs/metadata/overview
type gceProvider struct {
	opts  Options
	fetch *Fetcher
}

func newGCEProvider(opts Options) Provider {
	return &gceProvider{
		opts:  opts,
		fetch: NewFetcher(opts.Timeout),
	}
}

func (p *gceProvider) Kind() Kind { return KindGoogle }

func (p *gceProvider) metadata(ctx context.Context, path string, def DefaultFunc) string {
	return p.fetch.Fetch(ctx, &Request{
		URL:     p.opts.GoogleEndpoint + "instance/" + path,
		Headers: map[string]string{"Metadata-Flavor": "Google"},
		Default: def,
	})
}

func (p *gceProvider) InstanceID(ctx context.Context) string {
	return p.metadata(ctx, "id", p.opts.hostInstanceID)
}

func (p *gceProvider) InstanceIP(ctx context.Context) string {
	return p.metadata(ctx, "network-interfaces/0/ip", Value(defaultIP))
}

// InstanceType returns the machine type name. The metadata server reports
// a resource path ("projects/123/machineTypes/n1-standard-1"); only its last
// segment is returned, not the raw body.
func (p *gceProvider) InstanceType(ctx context.Context) string {
	return util.LastSegment(p.metadata(ctx, "machine-type", Value(defaultType)))
}

func (p *gceProvider) Region(ctx context.Context) string {
	zone := p.metadata(ctx, "zone", Value(defaultRegion))
	return qualifiedRegion(KindGoogle, util.RegionFromZone(zone))
}

func (p *gceProvider) ScalingGroup(context.Context) (string, error) {
	return defaultScalingGroup, nil
}

// nolint:gochecknoinits // registration-style init keeps provider wiring local to this file.
func init() {
	RegisterProvider(KindGoogle, newGCEProvider)
}
