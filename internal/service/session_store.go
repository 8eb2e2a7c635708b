package service

import (
	"context"
	"sync"
	"time"
)

type sessionEntry[T any] struct {
	value    T
	lastSeen time.Time
}

// SessionStore 进程内会话表，空闲超过 ttl 的会话由 janitor 清理
type SessionStore[T any] struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry[T]
	ttl     time.Duration
	now     func() time.Time
}

func NewSessionStore[T any](ttl time.Duration) *SessionStore[T] {
	return &SessionStore[T]{
		entries: make(map[string]*sessionEntry[T]),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *SessionStore[T]) Put(id string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = &sessionEntry[T]{value: value, lastSeen: s.now()}
}

// Get 命中时刷新最后访问时间
func (s *SessionStore[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	e, ok := s.entries[id]
	if !ok {
		return zero, false
	}
	if s.expired(e) {
		delete(s.entries, id)
		return zero, false
	}
	e.lastSeen = s.now()
	return e.value, true
}

func (s *SessionStore[T]) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

func (s *SessionStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *SessionStore[T]) expired(e *sessionEntry[T]) bool {
	return s.ttl > 0 && s.now().Sub(e.lastSeen) > s.ttl
}

// Sweep 删除所有过期会话，返回删除数量
func (s *SessionStore[T]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// RunJanitor 阻塞直到 ctx 结束
func (s *SessionStore[T]) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
