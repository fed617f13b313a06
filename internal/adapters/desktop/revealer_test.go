package desktop

import (
	"slices"
	"testing"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		filePath string
		wantArgs []string
		wantErr  bool
	}{
		{
			name:     "linux opens folder",
			goos:     "linux",
			filePath: "/ksp/saves/career/Ships/VAB/Kerbal X.craft",
			wantArgs: []string{"xdg-open", "/ksp/saves/career/Ships/VAB"},
		},
		{
			name:     "darwin selects file",
			goos:     "darwin",
			filePath: "/ksp/saves/career/Ships/SPH/Aeris.craft",
			wantArgs: []string{"open", "-R", "/ksp/saves/career/Ships/SPH/Aeris.craft"},
		},
		{
			name:     "outside save directory",
			goos:     "linux",
			filePath: "/ksp/saves/sandbox/Ships/VAB/Other.craft",
			wantErr:  true,
		},
		{
			name:     "unsupported os",
			goos:     "plan9",
			filePath: "/ksp/saves/career/Ships/VAB/Kerbal X.craft",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Revealer{root: "/ksp/saves/career", goos: tt.goos}

			cmd, err := r.Command(tt.filePath)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Command() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !slices.Equal(cmd.Args, tt.wantArgs) {
				t.Errorf("Args = %v, want %v", cmd.Args, tt.wantArgs)
			}
		})
	}
}
