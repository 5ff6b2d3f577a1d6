package cloud

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testProvider is a fixed Provider used to observe registry behaviour.
type testProvider struct {
	kind Kind
	sg   string
	err  error
}

func (p *testProvider) Kind() Kind                                   { return p.kind }
func (p *testProvider) InstanceID(context.Context) string            { return "i-test" }
func (p *testProvider) InstanceIP(context.Context) string            { return "10.0.0.1" }
func (p *testProvider) InstanceType(context.Context) string          { return "t3.micro" }
func (p *testProvider) Region(context.Context) string                { return "test/region-1" }
func (p *testProvider) ScalingGroup(context.Context) (string, error) { return p.sg, p.err }

func registerCounting(t *testing.T, kind Kind, p Provider) *atomic.Int32 {
	t.Helper()
	var builds atomic.Int32
	RegisterProvider(kind, func(Options) Provider {
		builds.Add(1)
		return p
	})
	return &builds
}

func TestLookupProvider_UnknownKindFallsBackToLocal(t *testing.T) {
	p := LookupProvider(Kind("non-existent-provider"), Options{}.withDefaults())
	require.NotNil(t, p)
	assert.Equal(t, KindUnknown, p.Kind())
}

func TestLookupProvider_BuiltinKinds(t *testing.T) {
	for _, kind := range []Kind{KindAmazon, KindAzure, KindGoogle, KindUnknown} {
		t.Run(string(kind), func(t *testing.T) {
			p := LookupProvider(kind, Options{}.withDefaults())
			require.NotNil(t, p)
			assert.Equal(t, kind, p.Kind())
		})
	}
}

func TestIdentityBuildsProviderOnce(t *testing.T) {
	kind := Kind("test-sequential")
	builds := registerCounting(t, kind, &testProvider{kind: kind, sg: "blue"})

	ident := New(kind, Options{})
	assert.Equal(t, int32(0), builds.Load(), "provider must not be built before first use")

	ctx := context.Background()
	assert.Equal(t, "i-test", ident.InstanceID(ctx))
	assert.Equal(t, "10.0.0.1", ident.InstanceIP(ctx))
	assert.Same(t, ident.Provider(), ident.Provider())
	assert.Equal(t, int32(1), builds.Load())
}

func TestIdentityConcurrentFirstAccess(t *testing.T) {
	kind := Kind("test-concurrent")
	builds := registerCounting(t, kind, &testProvider{kind: kind, sg: "blue"})
	ident := New(kind, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "test/region-1", ident.Region(context.Background()))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
}

func TestIdentityFact(t *testing.T) {
	kind := Kind("test-facts")
	registerCounting(t, kind, &testProvider{kind: kind, sg: "blue"})
	ident := New(kind, Options{})
	ctx := context.Background()

	want := map[Fact]string{
		FactID:           "i-test",
		FactIP:           "10.0.0.1",
		FactType:         "t3.micro",
		FactRegion:       "test/region-1",
		FactScalingGroup: "blue",
	}
	for f, w := range want {
		got, err := ident.Fact(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, w, got, "fact %s", f)
	}

	_, err := ident.Fact(ctx, Fact("bogus"))
	assert.Error(t, err)
}

func TestIdentityFactPropagatesFatalError(t *testing.T) {
	kind := Kind("test-fatal")
	cause := errors.New("aws command not installed")
	registerCounting(t, kind, &testProvider{
		kind: kind,
		err:  &FatalError{Fact: FactScalingGroup, Err: cause},
	})

	_, err := New(kind, Options{}).Fact(context.Background(), FactScalingGroup)
	var fatal *FatalError
	require.ErrorAs(t, err, &fatal)
	assert.Equal(t, FactScalingGroup, fatal.Fact)
	assert.ErrorIs(t, err, cause)
}

func TestParseFact(t *testing.T) {
	tests := []struct {
		in      string
		want    Fact
		wantErr bool
	}{
		{"id", FactID, false},
		{"instance-id", FactID, false},
		{"ip", FactIP, false},
		{"private-ip", FactIP, false},
		{"type", FactType, false},
		{"region", FactRegion, false},
		{"scaling-group", FactScalingGroup, false},
		{"scaling_group", FactScalingGroup, false},
		{"zone", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFact(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
