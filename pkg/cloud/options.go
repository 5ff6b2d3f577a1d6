package cloud

import (
	"context"
	"net"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Configuration keys read by LoadOptions.
const (
	KeyMetadataTimeout    = "metadata-timeout"
	KeyLocalRegion        = "local.region"
	KeyTagLookup          = "aws.tag-lookup"
	KeyTagTimeout         = "aws.tag-timeout"
	KeyStrictScalingGroup = "aws.strict-scaling-group"
	KeyAWSEndpoint        = "aws.endpoint"
	KeyAzureEndpoint      = "azure.endpoint"
	KeyGoogleEndpoint     = "google.endpoint"

	// EnvRegion overrides the region reported on hosts outside a known cloud.
	EnvRegion = "BACKEND_REGION"
)

// Tag lookup backends for the Amazon scaling group.
const (
	TagLookupCLI = "cli"
	TagLookupSDK = "sdk"
)

const (
	defaultMetadataTimeout = 200 * time.Millisecond
	defaultTagTimeout      = 10 * time.Second

	awsEndpoint    = "http://169.254.169.254/latest/"
	azureEndpoint  = "http://169.254.169.254/metadata/instance"
	googleEndpoint = "http://metadata.google.internal/computeMetadata/v1/"
)

// HostResolver resolves host names to addresses. *net.Resolver satisfies it.
type HostResolver interface {
	LookupIP(ctx context.Context, network, host string) ([]net.IP, error)
}

// Options carries everything a ProviderFactory needs to build a Provider.
// Zero values are replaced with defaults by withDefaults.
type Options struct {
	Timeout            time.Duration
	LocalRegion        string
	TagLookup          string
	TagTimeout         time.Duration
	StrictScalingGroup bool

	AWSEndpoint    string
	AzureEndpoint  string
	GoogleEndpoint string

	Hostname func() (string, error)
	Resolver HostResolver
	Runner   CommandRunner
	Tags     TagLookup
}

func init() {
	viper.SetDefault(KeyMetadataTimeout, defaultMetadataTimeout)
	viper.SetDefault(KeyTagLookup, TagLookupCLI)
	viper.SetDefault(KeyTagTimeout, defaultTagTimeout)
	viper.SetDefault(KeyStrictScalingGroup, false)
	_ = viper.BindEnv(KeyLocalRegion, EnvRegion)
}

// LoadOptions builds Options from the global viper configuration.
func LoadOptions() Options {
	return Options{
		Timeout:            viper.GetDuration(KeyMetadataTimeout),
		LocalRegion:        viper.GetString(KeyLocalRegion),
		TagLookup:          viper.GetString(KeyTagLookup),
		TagTimeout:         viper.GetDuration(KeyTagTimeout),
		StrictScalingGroup: viper.GetBool(KeyStrictScalingGroup),
		AWSEndpoint:        viper.GetString(KeyAWSEndpoint),
		AzureEndpoint:      viper.GetString(KeyAzureEndpoint),
		GoogleEndpoint:     viper.GetString(KeyGoogleEndpoint),
	}.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = defaultMetadataTimeout
	}
	if o.TagLookup == "" {
		o.TagLookup = TagLookupCLI
	}
	if o.TagTimeout <= 0 {
		o.TagTimeout = defaultTagTimeout
	}
	if o.AWSEndpoint == "" {
		o.AWSEndpoint = awsEndpoint
	}
	if o.AzureEndpoint == "" {
		o.AzureEndpoint = azureEndpoint
	}
	if o.GoogleEndpoint == "" {
		o.GoogleEndpoint = googleEndpoint
	}
	if o.Hostname == nil {
		o.Hostname = os.Hostname
	}
	if o.Resolver == nil {
		o.Resolver = net.DefaultResolver
	}
	if o.Runner == nil {
		o.Runner = ExecRunner{}
	}
	return o
}

// hostname returns the local host name, or "localhost" when it cannot be read.
func (o Options) hostname() string {
	if o.Hostname != nil {
		if h, err := o.Hostname(); err == nil && h != "" {
			return h
		}
	}
	return "localhost"
}

// hostInstanceID is the id reported when no metadata service answers.
func (o Options) hostInstanceID() string {
	return "i-" + o.hostname()
}
