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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	pt "github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"gitlab.com/davidxarnold/hostid/pkg/cloud"
	"gitlab.com/davidxarnold/hostid/pkg/core"
)

// detection is the JSON form of the detect command's output.
type detection struct {
	Provider      cloud.Kind `json:"provider"`
	Containerized bool       `json:"containerized"`
}

func render(w io.Writer, s *core.Snapshot) error {
	switch viper.GetString("output") {
	case "json":
		return renderJSON(w, s)
	case "pretty":
		renderTable(w, s, pt.StyleColoredBright)
	default:
		renderTable(w, s, tableStyle(w))
	}
	return nil
}

func renderJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func renderTable(w io.Writer, s *core.Snapshot, style pt.Style) {
	t := pt.NewWriter()
	t.SetStyle(style)
	t.SetOutputMirror(w)
	t.AppendHeader(pt.Row{"Fact", "Value"})
	t.AppendRow(pt.Row{"provider", s.Provider})
	for _, f := range cloud.Facts {
		t.AppendRow(pt.Row{f, s.Value(f)})
	}
	t.AppendSeparator()
	t.AppendRow(pt.Row{"containerized", strconv.FormatBool(s.Containerized)})
	t.Render()
}

func renderDetection(w io.Writer, kind cloud.Kind, containerized bool) error {
	if viper.GetString("output") == "json" {
		return renderJSON(w, detection{Provider: kind, Containerized: containerized})
	}
	_, err := fmt.Fprintf(w, "%s\tcontainerized=%t\n", kind, containerized)
	return err
}

// tableStyle uses box drawing only when writing to a terminal.
func tableStyle(w io.Writer) pt.Style {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return pt.StyleRounded
	}
	return pt.StyleLight
}
