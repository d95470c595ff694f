package filesystem

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Memory keeps objects in process. It backs local runs without a bucket.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

func (m *Memory) ReadFile(_ context.Context, bucket, key string, outStream io.Writer) error {
	m.mu.RLock()
	body, ok := m.objects[bucket+"/"+key]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("failed to get object %s from bucket %s: not found", key, bucket)
	}
	_, err := outStream.Write(body)
	return err
}

func (m *Memory) WriteFile(_ context.Context, bucket, key string, body []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[bucket+"/"+key] = append([]byte(nil), body...)
	return nil
}

func (m *Memory) ListFiles(_ context.Context, bucket, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var keys []string
	for k := range m.objects {
		if key, ok := strings.CutPrefix(k, bucket+"/"); ok && strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
