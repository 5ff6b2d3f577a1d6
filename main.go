/*
Copyright 2020 David Arnold
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

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"gitlab.com/davidxarnold/hostid/pkg/cloud"
	"gitlab.com/davidxarnold/hostid/pkg/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.NewHostIDCmd().ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	var fatal *cloud.FatalError
	if errors.As(err, &fatal) {
		log.WithField("fact", fatal.Fact).Fatalf("Initialization error: %v", fatal.Err)
	}
	log.Error(err)
	os.Exit(1)
}
