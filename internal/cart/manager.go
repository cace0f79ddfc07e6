package cart

import "sync"

// PersisterFactory 按会话构造持久化层
type PersisterFactory func(sessionID string) Persister

// Manager 按会话 ID 管理购物车 Store。
// 同一会话始终拿到同一个 Store 实例；首次访问时从持久化层恢复。
type Manager struct {
	mu      sync.Mutex
	stores  map[string]*Store
	factory PersisterFactory
}

// NewManager 创建购物车管理器
func NewManager(factory PersisterFactory) *Manager {
	if factory == nil {
		factory = func(string) Persister { return NoopPersister{} }
	}
	return &Manager{
		stores:  make(map[string]*Store),
		factory: factory,
	}
}

// Get 获取会话对应的购物车，必要时创建并恢复
func (m *Manager) Get(sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if store, ok := m.stores[sessionID]; ok {
		return store
	}
	store := NewStore(m.factory(sessionID))
	m.stores[sessionID] = store
	return store
}
