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

package util

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// SetupLogger sets configuration for the default logger
func SetupLogger() (err error) {
	var (
		lf = strings.ToLower(viper.GetString("output"))
		ll = viper.GetString("log-level")
	)

	// Set log format
	switch lf {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{
			DisableLevelTruncation: true,
		})
	}

	if ll == "" {
		return nil
	}
	lvl, err := log.ParseLevel(ll)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", ll, err)
	}
	log.SetLevel(lvl)
	return nil
}

// LastSegment returns the part of a resource path after the final slash,
// e.g. "projects/1/machineTypes/n1-standard-1" -> "n1-standard-1".
func LastSegment(p string) string {
	s := strings.Split(strings.TrimRight(p, "/"), "/")
	return s[len(s)-1]
}

// RegionFromZone returns the region a zone belongs to. Zones may be given
// bare ("us-central1-a") or as a resource path
// ("projects/123/zones/us-central1-a").
func RegionFromZone(zone string) string {
	zone = LastSegment(zone)
	if i := strings.LastIndex(zone, "-"); i > 0 {
		return zone[:i]
	}
	return zone
}
