package cloud

import "fmt"

// Kind identifies the cloud environment the host is running in. It is
// computed once per process and never changes afterwards.
type Kind string

// Kinds returned by Detector.Detect.
const (
	KindAmazon  Kind = "amazon"
	KindAzure   Kind = "azure"
	KindGoogle  Kind = "google"
	KindUnknown Kind = "unknown"
)

// Fact names one of the identity facts a Provider resolves.
type Fact string

// Facts exposed by every Provider.
const (
	FactID           Fact = "id"
	FactIP           Fact = "ip"
	FactType         Fact = "type"
	FactRegion       Fact = "region"
	FactScalingGroup Fact = "scaling-group"
)

// Facts lists every fact in display order.
var Facts = []Fact{FactID, FactIP, FactType, FactRegion, FactScalingGroup}

// ParseFact converts a user supplied name into a Fact.
func ParseFact(s string) (Fact, error) {
	for _, f := range Facts {
		if string(f) == s {
			return f, nil
		}
	}
	switch s {
	case "instance-id":
		return FactID, nil
	case "private-ip":
		return FactIP, nil
	case "instance-type":
		return FactType, nil
	case "scalinggroup", "scaling_group":
		return FactScalingGroup, nil
	}
	return "", fmt.Errorf("unknown fact %q", s)
}

// Defaults used when a fact cannot be resolved.
const (
	defaultIP           = "127.0.0.1"
	defaultType         = "unknown"
	defaultRegion       = "unknown"
	defaultScalingGroup = "default"
)

// qualifiedRegion prefixes a region with the provider name, e.g. "azure/eastus".
func qualifiedRegion(k Kind, region string) string {
	if region == "" {
		region = defaultRegion
	}
	return string(k) + "/" + region
}
