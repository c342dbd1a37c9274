package market

// AdminCapability is an unforgeable admin credential. It has no public
// constructor; tokens are only minted by a Market during construction,
// CreateAdminCapability or TransferAdminCapability. The market tracks which
// token ids are live, so a token that was transferred away is dead even if
// the old holder kept the pointer.
type AdminCapability struct {
	id uint64
}

// Capability ids start at 1 so a zero value token is never live.
func (m *Market) mintAdminCapability(holder string) *AdminCapability {
	cap := &AdminCapability{id: m.nextCapId}
	m.nextCapId++
	m.admins[cap.id] = holder

	return cap
}

func (m *Market) isAdmin(cap *AdminCapability) bool {
	if cap == nil {
		return false
	}

	_, live := m.admins[cap.id]

	return live
}

// AdminHolder returns the account currently holding the capability, or false
// for a dead or foreign token.
func (m *Market) AdminHolder(cap *AdminCapability) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if cap == nil {
		return "", false
	}
	holder, live := m.admins[cap.id]

	return holder, live
}
