package cart

import (
	"fmt"
	"sync"
	"time"
)

const defaultIdleTTL = 2 * time.Hour

// Manager 按用户维护购物车引擎。
// 引擎在首次访问时创建并从存储恢复，闲置超时后落盘回收。
type Manager struct {
	store   Store
	idleTTL time.Duration

	mu      sync.Mutex
	engines map[string]*managedEngine

	done      chan struct{}
	closeOnce sync.Once
}

type managedEngine struct {
	engine     *Engine
	lastAccess time.Time
}

// NewManager 创建购物车引擎管理器
func NewManager(store Store, idleTTL time.Duration) *Manager {
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}
	m := &Manager{
		store:   store,
		idleTTL: idleTTL,
		engines: make(map[string]*managedEngine),
		done:    make(chan struct{}),
	}
	go m.sweepLoop()
	return m
}

// ForUser 返回指定用户的购物车引擎
func (m *Manager) ForUser(userID uint) *Engine {
	key := UserKey(userID)

	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.engines[key]; ok {
		entry.lastAccess = time.Now()
		return entry.engine
	}
	engine := NewEngine(key, m.store)
	m.engines[key] = &managedEngine{
		engine:     engine,
		lastAccess: time.Now(),
	}
	return engine
}

// Close 落盘并回收所有引擎
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
		m.mu.Lock()
		defer m.mu.Unlock()
		for key, entry := range m.engines {
			entry.engine.Close()
			delete(m.engines, key)
		}
	})
}

// UserKey 返回用户购物车的存储键
func UserKey(userID uint) string {
	return fmt.Sprintf("cart:%d", userID)
}

func (m *Manager) sweepLoop() {
	interval := m.idleTTL / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.sweep(time.Now())
		}
	}
}

func (m *Manager) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, entry := range m.engines {
		if now.Sub(entry.lastAccess) < m.idleTTL {
			continue
		}
		entry.engine.Close()
		delete(m.engines, key)
	}
}
