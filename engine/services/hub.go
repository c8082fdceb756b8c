package services

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/chest-sort/status"
)

// Hub brings the out-of-session subsystems up in dependency order and
// down in reverse; a failure part way through undoes what already ran
type Hub struct {
	mu      sync.Mutex
	byName  map[string]Service
	running []Service

	up *atomic.Int64
}

// NewHub creates an empty hub; reg may be nil
func NewHub(reg *status.Registry) *Hub {
	h := &Hub{byName: make(map[string]Service)}
	if reg != nil {
		h.up = reg.Ints.Get(status.KeyServicesUp)
	} else {
		h.up = new(atomic.Int64)
	}
	return h
}

// Register adds services; names must be unique
func (h *Hub) Register(svcs ...Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, svc := range svcs {
		name := svc.Name()
		if _, dup := h.byName[name]; dup {
			return fmt.Errorf("service already registered: %s", name)
		}
		h.byName[name] = svc
	}
	return nil
}

// Up initializes every service, then starts every service, each pass in dependency order
func (h *Hub) Up(env any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.running) > 0 {
		return errors.New("services already running")
	}
	order, err := h.resolve()
	if err != nil {
		return err
	}

	for i, svc := range order {
		if err := svc.Init(env); err != nil {
			h.unwind(order[:i])
			return fmt.Errorf("service %s init failed: %w", svc.Name(), err)
		}
	}
	for _, svc := range order {
		if err := svc.Start(); err != nil {
			h.unwind(h.running)
			h.running = nil
			h.up.Store(0)
			return fmt.Errorf("service %s start failed: %w", svc.Name(), err)
		}
		h.running = append(h.running, svc)
		h.up.Add(1)
	}
	return nil
}

// Down stops running services in reverse start order
// Every service is stopped even if an earlier one fails; errors are joined
func (h *Hub) Down() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	err := h.unwind(h.running)
	h.running = nil
	h.up.Store(0)
	return err
}

// Running returns the names of started services in start order
func (h *Hub) Running() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	names := make([]string, len(h.running))
	for i, svc := range h.running {
		names[i] = svc.Name()
	}
	return names
}

func (h *Hub) unwind(svcs []Service) error {
	var errs []error
	for i := len(svcs) - 1; i >= 0; i-- {
		if err := svcs[i].Stop(); err != nil {
			log.Printf("[services] %s stop: %v", svcs[i].Name(), err)
			errs = append(errs, fmt.Errorf("service %s stop: %w", svcs[i].Name(), err))
		}
	}
	return errors.Join(errs...)
}

// resolve orders services so dependencies come first, depth-first by name
func (h *Hub) resolve() ([]Service, error) {
	const (
		visiting = 1
		done     = 2
	)
	mark := make(map[string]int, len(h.byName))
	order := make([]Service, 0, len(h.byName))

	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		switch mark[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("circular dependency: %v -> %s", path, name)
		}
		mark[name] = visiting
		svc := h.byName[name]
		deps := slices.Clone(svc.Dependencies())
		slices.Sort(deps)
		for _, dep := range deps {
			if _, ok := h.byName[dep]; !ok {
				return fmt.Errorf("service %s depends on unregistered service: %s", name, dep)
			}
			if err := visit(dep, append(path, name)); err != nil {
				return err
			}
		}
		mark[name] = done
		order = append(order, svc)
		return nil
	}

	names := make([]string, 0, len(h.byName))
	for name := range h.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := visit(name, nil); err != nil {
			return nil, err
		}
	}
	return order, nil
}
