package application

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math"
	"testing"
	"time"

	"craftmanager/internal/domain"
	"craftmanager/internal/ports"
)

const kerbalX = `ship = Kerbal X
version = 1.12.5
description = Heavy lifter¨Three stages
type = VAB
PART
{
	part = mk1pod.v2_4294412345
	istg = 0
}
PART
{
	part = fuelTank.long_4294511720
	istg = 2
	RESOURCE
	{
		name = LiquidFuel
		amount = 300
	}
}
PART
{
	part = liquidEngine_4294500000
	istg = 1
}
`

func build(t *testing.T, parts *fakeParts, path, content string) *domain.Craft {
	t.Helper()
	b := NewCraftBuilder(NewPartResolver(parts, testLogger()), "career")
	craft, err := b.Build(&ports.CraftFile{
		Path:      path,
		Data:      []byte(content),
		CreatedAt: time.Unix(100, 0),
		UpdatedAt: time.Unix(200, 0),
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return craft
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuild_Identity(t *testing.T) {
	craft := build(t, standardParts(), "/saves/career/Ships/VAB/Kerbal X.craft", kerbalX)

	if craft.Name != "Kerbal X" {
		t.Errorf("Name = %q", craft.Name)
	}
	if craft.AltName != "Kerbal X" {
		t.Errorf("AltName = %q", craft.AltName)
	}
	if craft.Type != domain.ConstructionVAB {
		t.Errorf("Type = %v", craft.Type)
	}
	if craft.Description != "Heavy lifter\nThree stages" {
		t.Errorf("Description = %q", craft.Description)
	}
	if craft.Version != "1.12.5" {
		t.Errorf("Version = %q", craft.Version)
	}
	if craft.RefKey() != "career_VAB_Kerbal X" {
		t.Errorf("RefKey = %q", craft.RefKey())
	}
	if !craft.CreatedAt.Equal(time.Unix(100, 0)) || !craft.UpdatedAt.Equal(time.Unix(200, 0)) {
		t.Errorf("timestamps = %v, %v", craft.CreatedAt, craft.UpdatedAt)
	}

	sum := sha256.Sum256([]byte(kerbalX))
	if craft.Checksum != hex.EncodeToString(sum[:]) {
		t.Errorf("Checksum = %s", craft.Checksum)
	}
	if craft.Selected {
		t.Error("new craft should not be selected")
	}
}

func TestBuild_Metrics(t *testing.T) {
	craft := build(t, standardParts(), "/x/Kerbal X.craft", kerbalX)

	if craft.PartCount != 3 {
		t.Errorf("PartCount = %d, want 3", craft.PartCount)
	}
	if craft.StageCount != 3 {
		t.Errorf("StageCount = %d, want 3", craft.StageCount)
	}
	if craft.MissingParts || craft.LockedParts {
		t.Errorf("flags = missing %v, locked %v", craft.MissingParts, craft.LockedParts)
	}

	if !approx(craft.Cost.Dry, 2100) || !approx(craft.Cost.Fuel, 300) || !approx(craft.Cost.Total, 2400) {
		t.Errorf("Cost = %+v", craft.Cost)
	}
	if !approx(craft.Mass.Dry, 2.55) || !approx(craft.Mass.Fuel, 3) || !approx(craft.Mass.Total, 5.55) {
		t.Errorf("Mass = %+v", craft.Mass)
	}
}

func TestBuild_ZeroParts(t *testing.T) {
	craft := build(t, standardParts(), "/x/Empty.craft", "ship = Empty\ntype = SPH\n")

	if craft.PartCount != 0 || craft.StageCount != 1 {
		t.Errorf("PartCount = %d, StageCount = %d", craft.PartCount, craft.StageCount)
	}
	if craft.Cost != (domain.Totals{}) || craft.Mass != (domain.Totals{}) {
		t.Errorf("totals not zero: %+v %+v", craft.Cost, craft.Mass)
	}
	if craft.MissingParts || craft.LockedParts {
		t.Error("empty craft should carry no flags")
	}
}

func TestBuild_MissingPart(t *testing.T) {
	craft := build(t, standardParts(), "/x/Mod.craft", `ship = Mod
PART
{
	part = mk1pod.v2_1
}
PART
{
	part = modTank_2
	RESOURCE
	{
		amount = 500
	}
}
`)

	if !craft.MissingParts {
		t.Error("expected MissingParts")
	}
	if craft.PartCount != 2 {
		t.Errorf("PartCount = %d, want 2", craft.PartCount)
	}
	// The missing part contributes nothing
	if !approx(craft.Cost.Total, 600) || !approx(craft.Mass.Total, 0.8) {
		t.Errorf("Cost = %+v, Mass = %+v", craft.Cost, craft.Mass)
	}
}

func TestBuild_LockedPart(t *testing.T) {
	craft := build(t, standardParts(), "/x/Probe.craft", "PART\n{\npart = advancedProbe_9\n}\n")

	if !craft.LockedParts {
		t.Error("expected LockedParts")
	}
	if craft.MissingParts {
		t.Error("locked part is not missing")
	}
	if !approx(craft.Cost.Total, 3000) {
		t.Errorf("locked part still counts toward cost, got %+v", craft.Cost)
	}
}

func TestBuild_StageIndex(t *testing.T) {
	tests := []struct {
		name   string
		stages []string
		want   int
	}{
		{"no istg", nil, 1},
		{"single zero", []string{"0"}, 1},
		{"max wins", []string{"0", "4", "2"}, 5},
		{"malformed skipped", []string{"abc", "1"}, 2},
		{"negative skipped", []string{"-1", "-5"}, 1},
		{"only malformed", []string{"x"}, 1},
		{"padded", []string{" 3 "}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := ""
			if tt.stages == nil {
				content = "PART\n{\npart = mk1pod.v2_1\n}\n"
			}
			for _, s := range tt.stages {
				content += "PART\n{\npart = mk1pod.v2_1\nistg = " + s + "\n}\n"
			}

			craft := build(t, standardParts(), "/x/S.craft", content)
			if craft.StageCount != tt.want {
				t.Errorf("StageCount = %d, want %d", craft.StageCount, tt.want)
			}
		})
	}
}

func TestBuild_TypeCollapse(t *testing.T) {
	tests := []struct {
		value string
		want  domain.ConstructionType
	}{
		{"VAB", domain.ConstructionVAB},
		{"SPH", domain.ConstructionSPH},
		{"vab", domain.ConstructionSubassembly},
		{"None", domain.ConstructionSubassembly},
		{"", domain.ConstructionSubassembly},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			craft := build(t, standardParts(), "/x/T.craft", "type = "+tt.value+"\n")
			if craft.Type != tt.want {
				t.Errorf("Type = %v, want %v", craft.Type, tt.want)
			}
		})
	}

	craft := build(t, standardParts(), "/x/NoType.craft", "ship = x\n")
	if craft.Type != domain.ConstructionSubassembly {
		t.Errorf("missing type = %v, want Subassembly", craft.Type)
	}
}

func TestBuild_ParseError(t *testing.T) {
	b := NewCraftBuilder(NewPartResolver(standardParts(), testLogger()), "career")

	_, err := b.Build(&ports.CraftFile{
		Path: "/x/Broken.craft",
		Data: []byte("ship = Broken\nPART\n{\npart = mk1pod.v2_1\n"),
	})
	if err == nil {
		t.Fatal("expected error")
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Path != "/x/Broken.craft" || pe.Line != 2 {
		t.Errorf("ParseError = %+v", pe)
	}
	if !errors.Is(err, ErrParse) {
		t.Error("expected errors.Is(err, ErrParse)")
	}
}
