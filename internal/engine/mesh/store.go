package mesh

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/logger"
)

// ErrDuplicateMesh is returned when a mesh name is already taken.
var ErrDuplicateMesh = errors.New("mesh already loaded")

// Store is the process-lifetime pool of parsed meshes.
// Meshes are never freed or mutated once added; the scene only holds references.
type Store struct {
	meshes   map[string]*Mesh
	order    []string
	vehicles []*Mesh
}

// Stats summarizes the store for startup diagnostics.
type Stats struct {
	Meshes           int
	Vehicles         int
	LargestTriangles int
	LargestVehicle   int
	TotalTriangles   int
}

// NewStore creates an empty mesh store.
func NewStore() *Store {
	return &Store{
		meshes: make(map[string]*Mesh),
	}
}

// Add registers a mesh under its name.
func (s *Store) Add(m *Mesh) error {
	if _, ok := s.meshes[m.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateMesh, m.Name)
	}
	s.meshes[m.Name] = m
	s.order = append(s.order, m.Name)
	return nil
}

// Load parses the model at path and registers it under name.
func (s *Store) Load(name, path string) (*Mesh, error) {
	m, err := LoadFile(name, path)
	if err != nil {
		return nil, err
	}
	if err := s.Add(m); err != nil {
		return nil, err
	}
	logger.Debug("mesh loaded",
		zap.String("name", name),
		zap.String("path", path),
		zap.Int("triangles", m.TriangleCount()),
	)
	return m, nil
}

// Get returns the mesh registered under name.
func (s *Store) Get(name string) (*Mesh, bool) {
	m, ok := s.meshes[name]
	return m, ok
}

// LoadVehicles loads count vehicle models named by pattern, numbered from 1.
// pattern is a fmt verb such as "carsHigh/%d.3Dobj", resolved relative to dir.
func (s *Store) LoadVehicles(dir, pattern string, count int) error {
	for i := 1; i <= count; i++ {
		rel := fmt.Sprintf(pattern, i)
		m, err := s.Load(fmt.Sprintf("vehicle-%d", i), filepath.Join(dir, rel))
		if err != nil {
			return fmt.Errorf("vehicle %d: %w", i, err)
		}
		s.vehicles = append(s.vehicles, m)
	}
	return nil
}

// AddVehicle registers m and appends it to the vehicle pool.
func (s *Store) AddVehicle(m *Mesh) error {
	if err := s.Add(m); err != nil {
		return err
	}
	s.vehicles = append(s.vehicles, m)
	return nil
}

// Vehicle returns the i-th vehicle of the pool.
func (s *Store) Vehicle(i int) *Mesh {
	return s.vehicles[i]
}

// VehicleCount returns the size of the vehicle pool.
func (s *Store) VehicleCount() int {
	return len(s.vehicles)
}

// Stats returns mesh and triangle counts over every stored mesh.
func (s *Store) Stats() Stats {
	st := Stats{
		Meshes:   len(s.order),
		Vehicles: len(s.vehicles),
	}
	for _, name := range s.order {
		n := s.meshes[name].TriangleCount()
		st.TotalTriangles += n
		if n > st.LargestTriangles {
			st.LargestTriangles = n
		}
	}
	for _, v := range s.vehicles {
		if n := v.TriangleCount(); n > st.LargestVehicle {
			st.LargestVehicle = n
		}
	}
	return st
}
