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

// Package core contains domain types and aggregation logic for hostid
// that are independent of any particular CLI or UI.
package core

import (
	"context"
	"time"

	"gitlab.com/davidxarnold/hostid/pkg/cloud"
)

// Snapshot holds every identity fact of the host at one point in time.
type Snapshot struct {
	Provider      cloud.Kind `json:"provider"`
	InstanceID    string     `json:"instanceId"`
	InstanceIP    string     `json:"instanceIp"`
	InstanceType  string     `json:"instanceType"`
	Region        string     `json:"region"`
	ScalingGroup  string     `json:"scalingGroup"`
	Containerized bool       `json:"containerized"`
	ResolvedAt    time.Time  `json:"resolvedAt"`
}

// Source resolves identity facts. *cloud.Identity implements it.
type Source interface {
	Kind() cloud.Kind
	InstanceID(ctx context.Context) string
	InstanceIP(ctx context.Context) string
	InstanceType(ctx context.Context) string
	Region(ctx context.Context) string
	ScalingGroup(ctx context.Context) (string, error)
	IsContainerized() bool
}

// Value returns the snapshot's value for a fact.
func (s *Snapshot) Value(f cloud.Fact) string {
	switch f {
	case cloud.FactID:
		return s.InstanceID
	case cloud.FactIP:
		return s.InstanceIP
	case cloud.FactType:
		return s.InstanceType
	case cloud.FactRegion:
		return s.Region
	case cloud.FactScalingGroup:
		return s.ScalingGroup
	}
	return ""
}
