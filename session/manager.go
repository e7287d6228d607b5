package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"travel-map/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer 会话 Token 的签发者
const Issuer = "travel-map"

var (
	ErrInvalidToken    = errors.New("无效的 Token")
	ErrSessionNotFound = errors.New("会话不存在")
	ErrTooManySessions = errors.New("会话数量已达上限")
)

// Claims JWT 载荷
type Claims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Manager 管理全部会话
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	store  *store.Store
	cfg    Config
	secret []byte
	ttl    time.Duration

	// MaxSessions 同时存活的会话上限, 0 表示不限制
	MaxSessions int
}

// NewManager 创建会话管理器; ttl 同时是 Token 有效期和会话空闲上限
func NewManager(st *store.Store, cfg Config, secret []byte, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		sessions: make(map[string]*Session),
		store:    st,
		cfg:      cfg,
		secret:   secret,
		ttl:      ttl,
	}
}

// Create 创建会话并签发 Token
func (m *Manager) Create(ctx context.Context) (*Session, string, error) {
	id := uuid.NewString()

	now := time.Now()
	claims := &Claims{
		SessionID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    Issuer,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, "", fmt.Errorf("生成 Token 失败: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.MaxSessions > 0 && len(m.sessions) >= m.MaxSessions {
		m.pruneLocked(now)
		if len(m.sessions) >= m.MaxSessions {
			return nil, "", ErrTooManySessions
		}
	}

	s := New(ctx, id, m.store, m.cfg)
	m.sessions[id] = s
	return s, token, nil
}

// Resolve 校验 Token 并返回对应会话
func (m *Manager) Resolve(tokenString string) (*Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	s, ok := m.Get(claims.SessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, claims.SessionID)
	}
	return s, nil
}

// Get 按 ID 查找会话
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Len 当前会话数量
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Prune 删除空闲超过 ttl 的会话, 返回删除数量
func (m *Manager) Prune(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pruneLocked(now)
}

func (m *Manager) pruneLocked(now time.Time) int {
	n := 0
	for id, s := range m.sessions {
		if now.Sub(s.LastSeen()) > m.ttl {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// RunPruner 定期清理空闲会话, 直到 ctx 取消
func (m *Manager) RunPruner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.Prune(now)
		}
	}
}
