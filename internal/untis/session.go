package untis

import "sync"

// Credentials данные для входа в WebUntis
type Credentials struct {
	Server   string
	School   string
	Username string
	Password string
}

// Session контекст одного входа в WebUntis. Каждая выборка работает со своей
// сессией, ID обновляется только из ответов на запросы этой сессии.
type Session struct {
	Server     string
	School     string
	PersonID   int64
	PersonType int
	KlasseID   int64

	mu sync.Mutex
	id string
}

// NewSession создаёт сессию с уже известным ID
func NewSession(server, school, id string) *Session {
	return &Session{Server: server, School: school, id: id}
}

// ID текущий JSESSIONID
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

func (s *Session) setID(id string) {
	s.mu.Lock()
	s.id = id
	s.mu.Unlock()
}
