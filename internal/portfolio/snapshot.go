package portfolio

import "sync"

// Snapshot holds the in-memory client/loan collections the insight panels
// read. Writers replace whole collections; readers get copies, so a render
// pass never observes a half-applied reload.
type Snapshot struct {
	mu      sync.RWMutex
	clients []Client
	loans   []Loan
	savings []SavingsAccount
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Replace swaps in fresh collections atomically.
func (s *Snapshot) Replace(clients []Client, loans []Loan, savings []SavingsAccount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = append([]Client(nil), clients...)
	s.loans = append([]Loan(nil), loans...)
	s.savings = append([]SavingsAccount(nil), savings...)
}

// Clients returns a copy of the client collection.
func (s *Snapshot) Clients() []Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Client(nil), s.clients...)
}

// Loans returns a copy of the loan collection.
func (s *Snapshot) Loans() []Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Loan(nil), s.loans...)
}

// Savings returns a copy of the savings collection.
func (s *Snapshot) Savings() []SavingsAccount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]SavingsAccount(nil), s.savings...)
}
