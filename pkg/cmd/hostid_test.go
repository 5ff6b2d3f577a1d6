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

package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewHostIDCmdNotNil(t *testing.T) {
	cmd := NewHostIDCmd()

	if cmd.Use != "hostid" {
		t.Errorf("NewHostIDCmd() Use = %q, want %q", cmd.Use, "hostid")
	}

	if cmd.Short == "" {
		t.Errorf("NewHostIDCmd() Short is empty")
	}

	if cmd.Long == "" {
		t.Errorf("NewHostIDCmd() Long is empty")
	}
}

func TestNewHostIDCmdFlags(t *testing.T) {
	cmd := NewHostIDCmd()

	for _, name := range []string{"config", "output", "log-level", "timeout", "tag-lookup", "strict-scaling-group"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("%s flag not found", name)
		}
	}
}

func TestNewHostIDCmdSubcommands(t *testing.T) {
	cmd := NewHostIDCmd()

	for _, name := range []string{"get", "detect"} {
		sub, _, err := cmd.Find([]string{name})
		if err != nil || sub.Name() != name {
			t.Errorf("subcommand %q not found: %v", name, err)
		}
	}
}

func TestGetRejectsUnknownFact(t *testing.T) {
	cmd := NewHostIDCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"get", "zone"})

	err := cmd.Execute()
	if err == nil {
		t.Fatalf("expected error for unknown fact")
	}
	if !strings.Contains(err.Error(), "unknown fact") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGetRequiresOneArg(t *testing.T) {
	cmd := NewHostIDCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"get"})

	if err := cmd.Execute(); err == nil {
		t.Errorf("expected error when no fact is given")
	}
}
