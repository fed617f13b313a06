package application

import (
	"context"
	"errors"
	"io"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"craftmanager/internal/confignode"
	"craftmanager/internal/domain"
	"craftmanager/internal/ports"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// fakeParts is an in-memory part catalog. Every part costs its Cost dry and
// weighs its Mass dry; each RESOURCE node adds amount to fuel cost and
// amount/100 to fuel mass.
type fakeParts struct {
	parts  []domain.PartInfo
	locked map[string]bool
	err    error
	calls  int
}

func (f *fakeParts) Parts() ([]domain.PartInfo, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.parts, nil
}

func (f *fakeParts) CostsAndMass(node *confignode.Node, info domain.PartInfo) domain.PartCost {
	pc := domain.PartCost{DryCost: info.Cost, DryMass: info.Mass}
	for _, res := range node.NodesNamed("RESOURCE") {
		amount := parseTestFloat(res.ValueOr("amount", "0"))
		pc.FuelCost += amount
		pc.FuelMass += amount / 100
	}
	return pc
}

func (f *fakeParts) Unlocked(info domain.PartInfo) bool {
	return !f.locked[info.Name]
}

func parseTestFloat(s string) float64 {
	var f float64
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		f = f*10 + float64(r-'0')
	}
	return f
}

func standardParts() *fakeParts {
	return &fakeParts{
		parts: []domain.PartInfo{
			{Name: "mk1pod.v2", Cost: 600, Mass: 0.8},
			{Name: "fuelTank.long", Cost: 500, Mass: 0.5},
			{Name: "liquidEngine", Cost: 1000, Mass: 1.25},
			{Name: "advancedProbe", Cost: 3000, Mass: 0.1},
		},
		locked: map[string]bool{"advancedProbe": true},
	}
}

// memSource is an in-memory craft source
type memSource struct {
	order []string
	files map[string]*ports.CraftFile
	err   error
}

func newMemSource() *memSource {
	return &memSource{files: make(map[string]*ports.CraftFile)}
}

func (s *memSource) add(path, content string, updated time.Time) {
	s.order = append(s.order, path)
	s.files[path] = &ports.CraftFile{
		Path:      path,
		Data:      []byte(content),
		CreatedAt: updated.Add(-time.Hour),
		UpdatedAt: updated,
	}
}

func (s *memSource) Root() string { return "/saves/test" }

func (s *memSource) Scan(ctx context.Context) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return slices.Clone(s.order), nil
}

func (s *memSource) Read(path string) (*ports.CraftFile, error) {
	f, ok := s.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return f, nil
}

// memTags is an in-memory tag store
type memTags struct {
	tags map[string][]string
	err  error
}

func newMemTags() *memTags {
	return &memTags{tags: make(map[string][]string)}
}

func (m *memTags) Open(string) error { return nil }
func (m *memTags) Close() error      { return nil }

func (m *memTags) Tags(_ context.Context, key string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tags[key], nil
}

func (m *memTags) AllTags(context.Context) ([]string, error) {
	var all []string
	for _, tags := range m.tags {
		for _, t := range tags {
			if !slices.Contains(all, t) {
				all = append(all, t)
			}
		}
	}
	slices.Sort(all)
	return all, nil
}

func (m *memTags) Keys(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	for k := range m.tags {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

func (m *memTags) AddTag(_ context.Context, key, tag string) error {
	if !slices.Contains(m.tags[key], tag) {
		m.tags[key] = append(m.tags[key], tag)
	}
	return nil
}

func (m *memTags) RemoveTag(_ context.Context, key, tag string) error {
	m.tags[key] = slices.DeleteFunc(m.tags[key], func(t string) bool { return t == tag })
	return nil
}

func (m *memTags) BeginTx(context.Context) (ports.TagTx, error) {
	return nil, errors.New("transactions not supported")
}
