//go:build linux

package cloud

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// writeSyntheticFile creates a file at the given path within root,
// creating parent directories as needed.
func writeSyntheticFile(t *testing.T, root, path, content string) {
	t.Helper()
	fullPath := filepath.Join(root, path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(fullPath), err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", fullPath, err)
	}
}

func syntheticDetector(root string) *Detector {
	return &Detector{
		SysRoot:    filepath.Join(root, "sys"),
		ProcRoot:   filepath.Join(root, "proc"),
		LeaseFiles: []string{filepath.Join(root, "var/lib/dhcp/dhclient.eth0.leases")},
	}
}

func TestDetect(t *testing.T) {
	const biosPath = "sys/devices/virtual/dmi/id/bios_version"
	const leasePath = "var/lib/dhcp/dhclient.eth0.leases"

	tests := []struct {
		name  string
		files map[string]string
		want  Kind
	}{
		{
			name: "no signal",
			want: KindUnknown,
		},
		{
			name:  "google bios",
			files: map[string]string{biosPath: "Google\n"},
			want:  KindGoogle,
		},
		{
			name:  "amazon bios mixed case",
			files: map[string]string{biosPath: "1.0 Amazon EC2\n"},
			want:  KindAmazon,
		},
		{
			name: "azure lease option",
			files: map[string]string{
				biosPath:  "090008\n",
				leasePath: "lease {\n  interface \"eth0\";\n  option unknown-245 a8:3f:81:10;\n}\n",
			},
			want: KindAzure,
		},
		{
			name:  "lease without azure option",
			files: map[string]string{leasePath: "lease {\n  interface \"eth0\";\n}\n"},
			want:  KindUnknown,
		},
		{
			name: "bios wins over lease",
			files: map[string]string{
				biosPath:  "Google",
				leasePath: "option unknown-245 a8:3f:81:10;",
			},
			want: KindGoogle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for path, content := range tt.files {
				writeSyntheticFile(t, root, path, content)
			}
			assert.Equal(t, tt.want, syntheticDetector(root).Detect())
		})
	}
}

func TestDetectUnreadableFiles(t *testing.T) {
	root := t.TempDir()
	// A directory where a file is expected cannot be read as a file.
	if err := os.MkdirAll(filepath.Join(root, "sys/devices/virtual/dmi/id/bios_version"), 0755); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, KindUnknown, syntheticDetector(root).Detect())
}

func TestIsContainerized(t *testing.T) {
	tests := []struct {
		name   string
		cgroup *string
		want   bool
	}{
		{"missing cgroup file", nil, false},
		{"docker", strPtr("12:pids:/docker/4f1c2b\n"), true},
		{"lxc", strPtr("1:name=systemd:/lxc/web01\n"), true},
		{"kubernetes", strPtr("0::/kubepods/besteffort/pod1234\n"), true},
		{"host", strPtr("0::/init.scope\n"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.cgroup != nil {
				writeSyntheticFile(t, root, "proc/self/cgroup", *tt.cgroup)
			}
			assert.Equal(t, tt.want, syntheticDetector(root).IsContainerized())
		})
	}
}

func TestDetectIdentitySharesDetector(t *testing.T) {
	root := t.TempDir()
	writeSyntheticFile(t, root, "sys/devices/virtual/dmi/id/bios_version", "Google")
	writeSyntheticFile(t, root, "proc/self/cgroup", "0::/kubepods/burstable/pod42\n")

	ident := Detect(syntheticDetector(root), Options{})
	assert.Equal(t, KindGoogle, ident.Kind())
	assert.True(t, ident.IsContainerized())

	host := t.TempDir()
	writeSyntheticFile(t, host, "proc/self/cgroup", "0::/init.scope\n")
	assert.False(t, Detect(syntheticDetector(host), Options{}).IsContainerized())
}

func strPtr(s string) *string { return &s }
