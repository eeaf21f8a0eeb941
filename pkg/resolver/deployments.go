package resolver

import (
	"context"
	"sync"

	"github.com/chainsafe/token-bridge-validator/pkg/token"
	"github.com/chainsafe/token-bridge-validator/pkg/tokenstore"
)

// memoryDeployments keeps pending deployments for the life of the process.
type memoryDeployments struct {
	mu sync.Mutex
	m  map[string]token.Deployment
}

func newMemoryDeployments() *memoryDeployments {
	return &memoryDeployments{m: make(map[string]token.Deployment)}
}

func (s *memoryDeployments) GetDeployment(_ context.Context, key string) (*token.Deployment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.m[key]
	if !ok {
		return nil, tokenstore.ErrDeploymentNotFound
	}
	return &d, nil
}

func (s *memoryDeployments) SaveDeployment(_ context.Context, d *token.Deployment) error {
	s.mu.Lock()
	s.m[d.Key] = *d
	s.mu.Unlock()
	return nil
}

func (s *memoryDeployments) DeleteDeployment(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
	return nil
}
