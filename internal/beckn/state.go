package beckn

import (
	"sync"
	"time"
)

// Transaction status progression on the BAP side. Each *_COMPLETED status is
// set by the matching on_* callback.
const (
	StatusSearchInitiated  = "SEARCH_INITIATED"
	StatusSearchCompleted  = "SEARCH_COMPLETED"
	StatusSelectInitiated  = "SELECT_INITIATED"
	StatusSelectCompleted  = "SELECT_COMPLETED"
	StatusConfirmInitiated = "CONFIRM_INITIATED"
	StatusConfirmCompleted = "CONFIRM_COMPLETED"
)

type Transaction struct {
	Status     string
	Catalog    *Catalog
	Quote      *Quote
	Order      *Order
	LastUpdate time.Time
}

// Store holds per-transaction BAP state in memory, keyed by transaction_id.
// Everything is run-scoped and discarded with the process.
type Store struct {
	mu  sync.Mutex
	txs map[string]*Transaction
}

func NewStore() *Store {
	return &Store{txs: make(map[string]*Transaction)}
}

func (s *Store) SetStatus(txnID, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := s.getLocked(txnID)
	tx.Status = status
	tx.LastUpdate = time.Now().UTC()
}

func (s *Store) SetCatalog(txnID string, catalog Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := s.getLocked(txnID)
	tx.Catalog = &catalog
	tx.Status = StatusSearchCompleted
	tx.LastUpdate = time.Now().UTC()
}

func (s *Store) SetQuote(txnID string, order Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := s.getLocked(txnID)
	tx.Quote = order.Quote
	tx.Status = StatusSelectCompleted
	tx.LastUpdate = time.Now().UTC()
}

func (s *Store) SetOrder(txnID string, order Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := s.getLocked(txnID)
	tx.Order = &order
	tx.Status = StatusConfirmCompleted
	tx.LastUpdate = time.Now().UTC()
}

// Get returns a copy of the transaction, or ok=false if unknown.
func (s *Store) Get(txnID string) (Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txs[txnID]
	if !ok {
		return Transaction{}, false
	}
	return *tx, true
}

func (s *Store) getLocked(txnID string) *Transaction {
	tx, ok := s.txs[txnID]
	if !ok {
		tx = &Transaction{}
		s.txs[txnID] = tx
	}
	return tx
}
