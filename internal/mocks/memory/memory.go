// Package memory contains hand-written in-memory test doubles for the console's ports.
package memory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	domainauth "github.com/Rushil0704/auth-client-1/internal/domain/auth"
	"github.com/Rushil0704/auth-client-1/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore   = (*SessionStore)(nil)
	_ ports.TransientStore = (*TransientStore)(nil)
	_ ports.ObjectStore    = (*ObjectStore)(nil)
)

// ErrNotFound is returned when an entity is not present.
var ErrNotFound = ports.ErrNotFound

// SessionStore is an in-memory session store.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domainauth.Session)}
}

func (m *SessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *SessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok || id == "" {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *SessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len returns the number of stored sessions.
func (m *SessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// TransientStore is an in-memory transient store. TTLs are recorded, not enforced.
type TransientStore struct {
	mu    sync.Mutex
	data  map[string]map[string][]byte
	lists map[string]map[string][][]byte
	TTLs  map[string]time.Duration
}

// NewTransientStore creates an empty transient store.
func NewTransientStore() *TransientStore {
	return &TransientStore{
		data:  make(map[string]map[string][]byte),
		lists: make(map[string]map[string][][]byte),
		TTLs:  make(map[string]time.Duration),
	}
}

func (m *TransientStore) Put(_ context.Context, sid, key string, data []byte, ttl time.Duration) error {
	if sid == "" || key == "" {
		return errors.New("session id and key are required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[sid] == nil {
		m.data[sid] = make(map[string][]byte)
	}
	m.data[sid][key] = append([]byte(nil), data...)
	m.TTLs[sid+":"+key] = ttl
	return nil
}

func (m *TransientStore) Get(_ context.Context, sid, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[sid][key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (m *TransientStore) Delete(_ context.Context, sid, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[sid], key)
	delete(m.lists[sid], key)
	return nil
}

func (m *TransientStore) Append(_ context.Context, sid, key string, item []byte, ttl time.Duration) error {
	if sid == "" || key == "" {
		return errors.New("session id and key are required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lists[sid] == nil {
		m.lists[sid] = make(map[string][][]byte)
	}
	m.lists[sid][key] = append(m.lists[sid][key], bytes.Clone(item))
	m.TTLs[sid+":"+key] = ttl
	return nil
}

func (m *TransientStore) Drain(_ context.Context, sid, key string) ([][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.lists[sid][key]
	delete(m.lists[sid], key)
	return items, nil
}

func (m *TransientStore) Clear(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, sid)
	delete(m.lists, sid)
	return nil
}

// Keys returns how many keys, blobs and lists, are held for sid.
func (m *TransientStore) Keys(sid string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data[sid]) + len(m.lists[sid])
}

// StoredObject is an object captured by ObjectStore.
type StoredObject struct {
	ContentType string
	Data        []byte
}

// ObjectStore captures uploads in memory and returns fake signed URLs.
type ObjectStore struct {
	mu      sync.Mutex
	Objects map[string]StoredObject
	Puts    int

	// PutErr and PresignErr force failures when set.
	PutErr     error
	PresignErr error

	// ProgressSteps is the number of progress callbacks emitted per upload.
	ProgressSteps int
}

// NewObjectStore creates an empty object store.
func NewObjectStore() *ObjectStore {
	return &ObjectStore{Objects: make(map[string]StoredObject), ProgressSteps: 4}
}

func (m *ObjectStore) Put(
	_ context.Context,
	key, contentType string,
	body io.Reader,
	size int64,
	progress ports.ProgressFunc,
) error {
	m.mu.Lock()
	m.Puts++
	putErr := m.PutErr
	steps := m.ProgressSteps
	m.mu.Unlock()

	if putErr != nil {
		return putErr
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if progress != nil && steps > 0 {
		for i := 1; i <= steps; i++ {
			progress(size * int64(i) / int64(steps))
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = StoredObject{ContentType: contentType, Data: bytes.Clone(data)}
	return nil
}

func (m *ObjectStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PresignErr != nil {
		return "", m.PresignErr
	}
	return fmt.Sprintf("https://objects.test/%s?expires=%d", key, int(ttl.Seconds())), nil
}

// PutCount returns how many uploads were attempted.
func (m *ObjectStore) PutCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Puts
}
