package sales

import (
	"context"
	"fmt"
	"sync"
)

type stubBackend struct {
	mu        sync.Mutex
	rows      []Sale
	fetchErr  error
	deleteErr error
	saveErr   error
	queries   []SalesQuery
	deleted   [][]int64
	created   []SaleInput
	updated   []SaleInput
}

func (s *stubBackend) FetchSales(_ context.Context, query SalesQuery) ([]Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, query)
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return append([]Sale(nil), s.rows...), nil
}

func (s *stubBackend) DeleteSales(_ context.Context, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, append([]int64(nil), ids...))
	return s.deleteErr
}

func (s *stubBackend) CreateSale(_ context.Context, input SaleInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, input)
	return s.saveErr
}

func (s *stubBackend) UpdateSale(_ context.Context, input SaleInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updated = append(s.updated, input)
	return s.saveErr
}

func (s *stubBackend) setRows(rows []Sale) {
	s.mu.Lock()
	s.rows = rows
	s.mu.Unlock()
}

func (s *stubBackend) fetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queries)
}

func makeSales(n int) []Sale {
	rows := make([]Sale, n)
	for i := range rows {
		rows[i] = Sale{
			ID:    int64(i + 1),
			Name:  fmt.Sprintf("Passenger %02d", i+1),
			Age:   20 + i%50,
			Route: "Santa Cruz - Isabela",
			Time:  TimeMorning,
			Date:  "2024-05-01",
			Price: 30,
		}
	}
	return rows
}

var testSession = Session{Business: "Gaviota", Token: "tok", Email: "seller@example.com", Name: "Seller"}

type recordingTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

type recordingHook struct {
	mu     sync.Mutex
	events []GridEvent
}

func (r *recordingHook) GridChanged(_ context.Context, event GridEvent) error {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
	return nil
}
