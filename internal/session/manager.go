package session

// Manager owns the shared directory and storage and hands out one Store
// per client session.
type Manager struct {
	dir       *Directory
	storage   Storage
	keyPrefix string
	opts      Options
}

// NewManager constructs a manager. Records are stored under
// "<keyPrefix>:<sessionID>".
func NewManager(dir *Directory, storage Storage, keyPrefix string, opts Options) *Manager {
	return &Manager{dir: dir, storage: storage, keyPrefix: keyPrefix, opts: opts.withDefaults()}
}

// Session returns the store of one client session. The store starts signed
// out; call Restore to load a persisted record.
func (m *Manager) Session(sessionID string) *Store {
	key := m.keyPrefix
	if sessionID != "" {
		key = m.keyPrefix + ":" + sessionID
	}
	return NewStore(m.dir, m.storage, key, m.opts)
}

// NewSessionID returns a fresh session identifier.
func (m *Manager) NewSessionID() string {
	return m.opts.NewID()
}

// Directory exposes the shared account directory.
func (m *Manager) Directory() *Directory {
	return m.dir
}
