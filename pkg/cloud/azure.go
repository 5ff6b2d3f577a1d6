package cloud

import (
	"context"
	"encoding/json"
	"net/url"

	log "github.com/sirupsen/logrus"
)

// azureAPIVersion is the instance metadata API version we parse.
const azureAPIVersion = "2017-03-01"

// azureProvider resolves facts from the Azure instance metadata service.
// Every fact fetches the instance document on its own.
// ref: https://learn.microsoft.com/azure/virtual-machines/instance-metadata-service
type azureProvider struct {
	opts  Options
	fetch *Fetcher
}

type azureInstanceDocument struct {
	Compute struct {
		VMID     string `json:"vmId"`
		VMSize   string `json:"vmSize"`
		Location string `json:"location"`
	} `json:"compute"`
	Network struct {
		Interface []struct {
			IPv4 struct {
				IPAddress []struct {
					PrivateIPAddress string `json:"ipaddress"`
				} `json:"ipaddress"`
			} `json:"ipv4"`
		} `json:"interface"`
	} `json:"network"`
}

func newAzureProvider(opts Options) Provider {
	return &azureProvider{
		opts:  opts,
		fetch: NewFetcher(opts.Timeout),
	}
}

func (p *azureProvider) Kind() Kind { return KindAzure }

// document fetches and decodes the instance document. ok is false when the
// service is unreachable or the document cannot be decoded.
func (p *azureProvider) document(ctx context.Context) (doc *azureInstanceDocument, ok bool) {
	body, err := p.fetch.Get(ctx, &Request{
		URL:     p.opts.AzureEndpoint,
		Params:  url.Values{"version": []string{azureAPIVersion}},
		Headers: map[string]string{"Metadata": "true"},
	})
	if err != nil {
		log.Debugf("azure instance document unavailable: %v", err)
		return nil, false
	}
	doc = &azureInstanceDocument{}
	if err := json.Unmarshal([]byte(body), doc); err != nil {
		log.Debugf("invalid azure instance document: %v", err)
		return nil, false
	}
	return doc, true
}

func (p *azureProvider) InstanceID(ctx context.Context) string {
	if doc, ok := p.document(ctx); ok && doc.Compute.VMID != "" {
		return doc.Compute.VMID
	}
	return p.opts.hostInstanceID()
}

func (p *azureProvider) InstanceIP(ctx context.Context) string {
	doc, ok := p.document(ctx)
	if !ok || len(doc.Network.Interface) == 0 {
		return defaultIP
	}
	addrs := doc.Network.Interface[0].IPv4.IPAddress
	if len(addrs) == 0 || addrs[0].PrivateIPAddress == "" {
		return defaultIP
	}
	return addrs[0].PrivateIPAddress
}

func (p *azureProvider) InstanceType(ctx context.Context) string {
	if doc, ok := p.document(ctx); ok && doc.Compute.VMSize != "" {
		return doc.Compute.VMSize
	}
	return defaultType
}

func (p *azureProvider) Region(ctx context.Context) string {
	if doc, ok := p.document(ctx); ok {
		return qualifiedRegion(KindAzure, doc.Compute.Location)
	}
	return qualifiedRegion(KindAzure, defaultRegion)
}

func (p *azureProvider) ScalingGroup(context.Context) (string, error) {
	return defaultScalingGroup, nil
}

// nolint:gochecknoinits // registration-style init keeps provider wiring local to this file.
func init() {
	RegisterProvider(KindAzure, newAzureProvider)
}
