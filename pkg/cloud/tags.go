package cloud

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	log "github.com/sirupsen/logrus"
)

// scalingGroupTag is the instance tag holding the scaling group name.
const scalingGroupTag = "Scaling_Group"

// TagTarget names the instance whose tags are read. Its fields are
// resolved lazily; backends that locate the instance themselves never call
// them.
type TagTarget struct {
	InstanceID func(ctx context.Context) string
	Region     func(ctx context.Context) string
}

// TagLookup retrieves the value of an instance tag.
type TagLookup interface {
	Lookup(ctx context.Context, target TagTarget, tag string) (string, error)
}

// tagScript resolves a tag through the aws and ec2-metadata command line
// tools. It prints the tag value on stdout; anything on stderr is an error.
const tagScript = `#!/bin/sh
if [ -z "$1" ]; then
    echo >&2 "usage: $(basename "$0") <tag_name>"
    exit 1
fi

command -v aws >/dev/null 2>&1 || { echo >&2 'aws command not installed.'; exit 2; }
command -v ec2-metadata >/dev/null 2>&1 || { echo >&2 'ec2-metadata command not installed.'; exit 3; }

instance_id=$(ec2-metadata -i | cut -d ' ' -f2)
zone=$(ec2-metadata --availability-zone | cut -d ' ' -f2)
region=${zone%?}

values=$(aws ec2 describe-tags --output text --region "$region" \
    --filters "Name=key,Values=$1" "Name=resource-type,Values=instance" "Name=resource-id,Values=$instance_id")
if [ $? -ne 0 ]; then
    echo >&2 "error retrieving tag value."
    exit 4
fi

echo "$values" | cut -f5
`

// scriptTagLookup runs tagScript from a temporary file. The file is removed
// on every return path.
type scriptTagLookup struct {
	runner  CommandRunner
	timeout time.Duration
	dir     string
}

func (l *scriptTagLookup) Lookup(ctx context.Context, _ TagTarget, tag string) (string, error) {
	f, err := os.CreateTemp(l.dir, "hostid-tag-*.sh")
	if err != nil {
		return "", fmt.Errorf("%w: create script: %v", ErrTagLookup, err)
	}
	path := f.Name()
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Debugf("failed to remove tag script %s: %v", path, err)
		}
	}()

	_, werr := f.WriteString(tagScript)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		return "", fmt.Errorf("%w: write script: %v", ErrTagLookup, err)
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	stdout, stderr, err := l.runner.Run(ctx, "sh", path, tag)
	if msg := strings.TrimSpace(string(stderr)); msg != "" {
		return "", fmt.Errorf("%w: %s", ErrTagLookup, msg)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTagLookup, err)
	}
	return strings.TrimSpace(string(stdout)), nil
}

// ec2TagLookup reads the tag with the EC2 DescribeTags API using the
// default credential chain (the instance role on EC2).
type ec2TagLookup struct {
	timeout time.Duration
}

func (l *ec2TagLookup) Lookup(ctx context.Context, target TagTarget, tag string) (string, error) {
	instanceID, region := target.InstanceID(ctx), target.Region(ctx)

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return "", fmt.Errorf("%w: load aws config: %v", ErrTagLookup, err)
	}

	svc := ec2.NewFromConfig(cfg)
	result, err := svc.DescribeTags(ctx, &ec2.DescribeTagsInput{
		Filters: []ec2types.Filter{
			{Name: aws.String("resource-id"), Values: []string{instanceID}},
			{Name: aws.String("resource-type"), Values: []string{"instance"}},
			{Name: aws.String("key"), Values: []string{tag}},
		},
	})
	if err != nil {
		var ae smithy.APIError
		if errors.As(err, &ae) {
			return "", fmt.Errorf("%w: describe tags for %s: %s", ErrTagLookup, instanceID, ae.ErrorCode())
		}
		return "", fmt.Errorf("%w: describe tags for %s: %v", ErrTagLookup, instanceID, err)
	}

	for _, t := range result.Tags {
		if t.Key != nil && *t.Key == tag && t.Value != nil {
			return *t.Value, nil
		}
	}
	return "", nil
}

// newTagLookup selects the tag lookup backend configured in opts.
func newTagLookup(opts Options) TagLookup {
	if opts.Tags != nil {
		return opts.Tags
	}
	if opts.TagLookup == TagLookupSDK {
		return &ec2TagLookup{timeout: opts.TagTimeout}
	}
	return &scriptTagLookup{runner: opts.Runner, timeout: opts.TagTimeout}
}
