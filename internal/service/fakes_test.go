package service_test

import (
	"context"
	"sync"

	"github.com/smallbiznis/codegrant/internal/domain"
	"github.com/smallbiznis/codegrant/internal/domain/oauth"
)

type memoryDirectory struct {
	clients    map[string]domain.Client
	missing    map[string]bool
	resolveErr error
}

func (m *memoryDirectory) Resolve(ctx context.Context, clientID string) (*domain.Client, error) {
	if m.resolveErr != nil {
		return nil, m.resolveErr
	}
	if m.missing[clientID] {
		return nil, nil
	}
	c, ok := m.clients[clientID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memoryDirectory) Exists(ctx context.Context, clientID string) bool {
	_, ok := m.clients[clientID]
	return ok
}

type memoryPendingStore struct {
	mu      sync.Mutex
	entries map[string]domain.AuthorizationRequest
	getErr  error
	putErr  error
}

func newMemoryPendingStore() *memoryPendingStore {
	return &memoryPendingStore{entries: map[string]domain.AuthorizationRequest{}}
}

func (m *memoryPendingStore) Put(ctx context.Context, requestID string, req domain.AuthorizationRequest) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[requestID] = req
	return nil
}

func (m *memoryPendingStore) Get(ctx context.Context, requestID string) (*domain.AuthorizationRequest, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.entries[requestID]
	if !ok {
		return nil, nil
	}
	return &req, nil
}

func (m *memoryPendingStore) Delete(ctx context.Context, requestID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, requestID)
	return nil
}

type memoryCodeStore struct {
	mu      sync.Mutex
	userIDs map[string]string
	scopes  map[string]string
	saveErr error
}

func newMemoryCodeStore() *memoryCodeStore {
	return &memoryCodeStore{userIDs: map[string]string{}, scopes: map[string]string{}}
}

func codeKey(clientID, code string) string {
	return clientID + "/" + code
}

func (m *memoryCodeStore) Save(ctx context.Context, clientID, code string, grant domain.CodeGrant) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userIDs[codeKey(clientID, code)] = grant.UserID
	m.scopes[codeKey(clientID, code)] = grant.Scope
	return nil
}

func (m *memoryCodeStore) Consume(ctx context.Context, clientID, code string) (domain.CodeLookup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := codeKey(clientID, code)
	var lookup domain.CodeLookup
	if v, ok := m.userIDs[key]; ok {
		lookup.UserID = &v
		delete(m.userIDs, key)
	}
	if v, ok := m.scopes[key]; ok {
		lookup.Scope = &v
		delete(m.scopes, key)
	}
	return lookup, nil
}

type memoryUserRepo struct {
	users map[string]domain.User
	err   error
}

func (m *memoryUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.err != nil {
		return domain.User{}, m.err
	}
	u, ok := m.users[email]
	if !ok {
		return domain.User{}, oauth.ErrUserNotFound
	}
	return u, nil
}

func (m *memoryUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	m.users[user.Email] = user
	return user, nil
}
