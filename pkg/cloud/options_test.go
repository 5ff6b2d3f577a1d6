package cloud

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadOptions(t *testing.T) {
	tests := []struct {
		name       string
		env        string
		wantRegion string
	}{
		{"region from environment", "office/seoul", "office/seoul"},
		{"region unset", "", "local/unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvRegion, tt.env)

			opts := LoadOptions()
			assert.Equal(t, tt.env, opts.LocalRegion)
			assert.Equal(t, tt.wantRegion, New(KindUnknown, LoadOptions()).Region(context.Background()))
		})
	}
}

func TestLoadOptionsDefaults(t *testing.T) {
	opts := LoadOptions()

	assert.Equal(t, 200*time.Millisecond, opts.Timeout)
	assert.Equal(t, 10*time.Second, opts.TagTimeout)
	assert.Equal(t, TagLookupCLI, opts.TagLookup)
	assert.False(t, opts.StrictScalingGroup)
	assert.Equal(t, awsEndpoint, opts.AWSEndpoint)
	assert.Equal(t, azureEndpoint, opts.AzureEndpoint)
	assert.Equal(t, googleEndpoint, opts.GoogleEndpoint)
}
