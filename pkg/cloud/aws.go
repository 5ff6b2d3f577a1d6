package cloud

import (
	"context"
	"encoding/json"

	log "github.com/sirupsen/logrus"
)

// awsProvider resolves facts from the EC2 instance metadata service.
// ref: https://docs.aws.amazon.com/AWSEC2/latest/UserGuide/ec2-instance-metadata.html
type awsProvider struct {
	opts  Options
	fetch *Fetcher
	tags  TagLookup
}

// awsIdentityDocument is the subset of the instance identity document we read.
type awsIdentityDocument struct {
	InstanceID string `json:"instanceId"`
	Region     string `json:"region"`
}

func newAWSProvider(opts Options) Provider {
	return &awsProvider{
		opts:  opts,
		fetch: NewFetcher(opts.Timeout),
		tags:  newTagLookup(opts),
	}
}

func (p *awsProvider) Kind() Kind { return KindAmazon }

func (p *awsProvider) metadata(ctx context.Context, path string, def DefaultFunc) string {
	return p.fetch.Fetch(ctx, &Request{
		URL:     p.opts.AWSEndpoint + "meta-data/" + path,
		Default: def,
	})
}

func (p *awsProvider) InstanceID(ctx context.Context) string {
	return p.metadata(ctx, "instance-id", p.opts.hostInstanceID)
}

func (p *awsProvider) InstanceIP(ctx context.Context) string {
	return p.metadata(ctx, "local-ipv4", Value(defaultIP))
}

func (p *awsProvider) InstanceType(ctx context.Context) string {
	return p.metadata(ctx, "instance-type", Value(defaultType))
}

func (p *awsProvider) Region(ctx context.Context) string {
	return qualifiedRegion(KindAmazon, p.region(ctx))
}

// region returns the bare region name from the identity document.
func (p *awsProvider) region(ctx context.Context) string {
	doc, err := p.fetch.Get(ctx, &Request{
		URL: p.opts.AWSEndpoint + "dynamic/instance-identity/document",
	})
	if err != nil {
		log.Debugf("instance identity document unavailable: %v", err)
		return defaultRegion
	}
	var id awsIdentityDocument
	if err := json.Unmarshal([]byte(doc), &id); err != nil || id.Region == "" {
		log.Debugf("invalid instance identity document: %v", err)
		return defaultRegion
	}
	return id.Region
}

func (p *awsProvider) ScalingGroup(ctx context.Context) (string, error) {
	sg, err := p.tags.Lookup(ctx, TagTarget{InstanceID: p.InstanceID, Region: p.region}, scalingGroupTag)
	if err != nil {
		if p.opts.StrictScalingGroup {
			return "", &FatalError{Fact: FactScalingGroup, Err: err}
		}
		log.WithError(err).Error("cannot find the instance's scaling group, using default")
		return defaultScalingGroup, nil
	}
	if sg == "" {
		return defaultScalingGroup, nil
	}
	return sg, nil
}

// nolint:gochecknoinits // registration-style init keeps provider wiring local to this file.
func init() {
	RegisterProvider(KindAmazon, newAWSProvider)
}
