package store

import (
	"fmt"
	"slices"
	"sync"

	"github.com/kenzie-cloud/portal/internal/loyalty"
)

// LoginResult is the outcome of a customer login.
type LoginResult struct {
	Customer loyalty.Customer `json:"customer"`
	XP       loyalty.XPRecord `json:"xp"`
	// Created is true when the login registered a new customer.
	Created bool `json:"-"`
}

// MemoryStore holds all portal state in memory. A single RWMutex guards
// every collection so a sync is applied atomically with respect to logins
// and reads; concurrent syncs resolve as last writer wins.
type MemoryStore struct {
	Clock *Clock

	mu         sync.RWMutex
	customers  *Collection[loyalty.Customer]
	customerXP *Collection[loyalty.XPRecord]
	orders     []loyalty.Order
	ids        idSequence
	seed       *loyalty.SyncRequest
}

// New creates an empty MemoryStore following wall time.
func New() *MemoryStore {
	return NewWithClock(NewClock())
}

// NewWithClock creates an empty MemoryStore using clock.
func NewWithClock(clock *Clock) *MemoryStore {
	return &MemoryStore{
		Clock:      clock,
		customers:  NewCollection[loyalty.Customer](),
		customerXP: NewCollection[loyalty.XPRecord](),
		orders:     make([]loyalty.Order, 0),
	}
}

func customerKey(c loyalty.Customer) string {
	return string(c.ID)
}

func (s *MemoryStore) idTakenLocked(id loyalty.ID) bool {
	return s.customers.Has(string(id)) || s.customerXP.Has(string(id))
}

// Login finds the first customer with the given phone number. When there is
// none and name is not empty, a customer with a zeroed XP record is created.
// It returns loyalty.ErrCustomerNotFound otherwise.
func (s *MemoryStore) Login(phone, name string) (LoginResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers.Find(func(_ string, c loyalty.Customer) bool {
		return c.Phone == phone
	})
	if ok {
		return LoginResult{Customer: c, XP: s.xpLocked(c.ID)}, nil
	}
	if name == "" {
		return LoginResult{}, fmt.Errorf("phone %q: %w", phone, loyalty.ErrCustomerNotFound)
	}

	now := s.Clock.Now()
	c = loyalty.Customer{
		ID:        s.ids.next(now, s.idTakenLocked),
		Name:      name,
		Phone:     phone,
		Email:     "",
		CreatedAt: Timestamp(now),
	}
	s.customers.Set(customerKey(c), c)
	s.customerXP.Set(string(c.ID), loyalty.XPRecord{})
	return LoginResult{Customer: c, XP: loyalty.XPRecord{}, Created: true}, nil
}

// ApplySync replaces every collection present in req. Absent collections
// are left as they are.
func (s *MemoryStore) ApplySync(req loyalty.SyncRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyLocked(req)
}

func (s *MemoryStore) applyLocked(req loyalty.SyncRequest) {
	if req.Customers != nil {
		s.customers.Replace(req.Customers, customerKey)
	}
	if req.CustomerXP != nil {
		ids := make([]loyalty.ID, 0, len(req.CustomerXP))
		for id := range req.CustomerXP {
			ids = append(ids, id)
		}
		slices.SortFunc(ids, loyalty.CompareIDs)
		s.customerXP.Reset()
		for _, id := range ids {
			s.customerXP.Set(string(id), req.CustomerXP[id])
		}
	}
	if req.Orders != nil {
		s.orders = slices.Clone(req.Orders)
	}
}

// CustomerDetail assembles the portal view of one customer: the customer,
// their XP record (zero if missing), their orders and the leaderboard.
func (s *MemoryStore) CustomerDetail(id loyalty.ID) (loyalty.CustomerDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers.Get(string(id))
	if !ok {
		return loyalty.CustomerDetail{}, fmt.Errorf("customer %q: %w", id, loyalty.ErrCustomerNotFound)
	}

	orders := make([]loyalty.Order, 0)
	for _, o := range s.orders {
		if o.CustomerID == id {
			orders = append(orders, o)
		}
	}

	return loyalty.CustomerDetail{
		Customer:    c,
		XP:          s.xpLocked(id),
		Orders:      orders,
		Leaderboard: s.leaderboardLocked(),
	}, nil
}

// Leaderboard returns the top customers by total XP.
func (s *MemoryStore) Leaderboard() []loyalty.LeaderboardEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leaderboardLocked()
}

func (s *MemoryStore) leaderboardLocked() []loyalty.LeaderboardEntry {
	records := make(map[loyalty.ID]loyalty.XPRecord, s.customerXP.Len())
	for k, v := range s.customerXP.Snapshot() {
		records[loyalty.ID(k)] = v
	}
	return loyalty.Leaderboard(records, s.customers.List(), loyalty.LeaderboardSize)
}

func (s *MemoryStore) xpLocked(id loyalty.ID) loyalty.XPRecord {
	rec, _ := s.customerXP.Get(string(id))
	return rec
}

// Counts returns the number of stored customers and orders.
func (s *MemoryStore) Counts() (customers, orders int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customers.Len(), len(s.orders)
}

type stateSnapshot struct {
	Customers  []loyalty.Customer              `json:"customers"`
	CustomerXP map[loyalty.ID]loyalty.XPRecord `json:"customerXP"`
	Orders     []loyalty.Order                 `json:"orders"`
}

// Snapshot returns the full state in the same shape a sync accepts.
func (s *MemoryStore) Snapshot() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	xp := make(map[loyalty.ID]loyalty.XPRecord, s.customerXP.Len())
	for k, v := range s.customerXP.Snapshot() {
		xp[loyalty.ID(k)] = v
	}
	return stateSnapshot{
		Customers:  s.customers.List(),
		CustomerXP: xp,
		Orders:     slices.Clone(s.orders),
	}
}

// LoadState replaces the full state from a JSON body shaped like a sync
// request. Collections missing from the body are cleared.
func (s *MemoryStore) LoadState(data []byte) error {
	req, err := parseState(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyLocked(req)
	return nil
}

// Seed loads data as the initial state and remembers it so Reset can
// restore it.
func (s *MemoryStore) Seed(data []byte) error {
	req, err := parseState(data)
	if err != nil {
		return fmt.Errorf("loading seed: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyLocked(req)
	s.seed = &req
	return nil
}

// Reset clears all state and reapplies the seed, if any, in one step.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers.Reset()
	s.customerXP.Reset()
	s.orders = make([]loyalty.Order, 0)
	if s.seed != nil {
		s.applyLocked(*s.seed)
	}
}

// parseState parses a full state body. Missing collections come back
// empty rather than nil so applying the result replaces all three.
func parseState(data []byte) (loyalty.SyncRequest, error) {
	req, err := loyalty.ParseSync(data)
	if err != nil {
		return loyalty.SyncRequest{}, err
	}
	if req.Customers == nil {
		req.Customers = []loyalty.Customer{}
	}
	if req.CustomerXP == nil {
		req.CustomerXP = map[loyalty.ID]loyalty.XPRecord{}
	}
	if req.Orders == nil {
		req.Orders = []loyalty.Order{}
	}
	return req, nil
}
