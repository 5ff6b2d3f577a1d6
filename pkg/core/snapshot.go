/*
Copyright 2025 David Arnold
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at
    http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package core

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Collect resolves all facts of src in parallel. Each fact is resolved by
// its own call, so a slow or failing fact does not hold up the others. The
// only error returned is a required scaling group that could not be found.
func Collect(ctx context.Context, src Source) (*Snapshot, error) {
	s := &Snapshot{
		Provider:      src.Kind(),
		Containerized: src.IsContainerized(),
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.InstanceID = src.InstanceID(gCtx)
		return nil
	})
	g.Go(func() error {
		s.InstanceIP = src.InstanceIP(gCtx)
		return nil
	})
	g.Go(func() error {
		s.InstanceType = src.InstanceType(gCtx)
		return nil
	})
	g.Go(func() error {
		s.Region = src.Region(gCtx)
		return nil
	})
	g.Go(func() error {
		var err error
		s.ScalingGroup, err = src.ScalingGroup(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.ResolvedAt = time.Now().UTC()
	return s, nil
}
