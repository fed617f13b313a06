package pager

import (
	"errors"
	"slices"
	"testing"
)

func fakeViewer(env map[string]string, installed ...string) *Viewer {
	return &Viewer{
		getenv: func(k string) string { return env[k] },
		lookPath: func(name string) (string, error) {
			if slices.Contains(installed, name) {
				return "/usr/bin/" + name, nil
			}
			return "", errors.New("not found")
		},
	}
}

func TestCommand(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		installed []string
		wantArgs  []string
		wantErr   bool
	}{
		{
			name:     "PAGER with flags",
			env:      map[string]string{"PAGER": "bat --plain"},
			wantArgs: []string{"bat", "--plain", "/saves/Kerbal X.craft"},
		},
		{
			name:      "falls back to less",
			installed: []string{"less", "more"},
			wantArgs:  []string{"/usr/bin/less", "-R", "/saves/Kerbal X.craft"},
		},
		{
			name:      "falls back to more",
			installed: []string{"more"},
			wantArgs:  []string{"/usr/bin/more", "/saves/Kerbal X.craft"},
		},
		{
			name:    "nothing available",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := fakeViewer(tt.env, tt.installed...).Command("/saves/Kerbal X.craft")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Command failed: %v", err)
			}
			if !slices.Equal(cmd.Args, tt.wantArgs) {
				t.Errorf("Args = %v, want %v", cmd.Args, tt.wantArgs)
			}
		})
	}
}
