package ferryapi

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-ferry-admin/components/sales"
)

// MockData seeds the in-memory backend for tests and local demos.
type MockData struct {
	Sales []sales.Sale
	// Users maps email to password; any listed user can log in.
	Users    map[string]string
	Business string
	Invites  map[string]string
}

// MockClient implements Client using in-memory fixtures. Create expands one
// row per passenger, the way the live backend stores multi-passenger bookings.
type MockClient struct {
	mu       sync.RWMutex
	rows     []sales.Sale
	nextID   int64
	users    map[string]string
	business string
	invites  map[string]string
	used     map[string]bool
	tokens   map[string]string
}

var _ Client = (*MockClient)(nil)

// NewMockClient builds a mock backend from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	c := &MockClient{
		rows:     cloneSales(data.Sales),
		users:    cloneStrings(data.Users),
		business: data.Business,
		invites:  cloneStrings(data.Invites),
		used:     map[string]bool{},
		tokens:   map[string]string{},
	}
	for _, row := range c.rows {
		c.nextID = max(c.nextID, row.ID)
	}
	return c
}

// FetchSales returns rows of query.Business dated within the range.
func (c *MockClient) FetchSales(_ context.Context, query sales.SalesQuery) ([]sales.Sale, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]sales.Sale, 0, len(c.rows))
	for _, row := range c.rows {
		if c.business != "" && query.Business != c.business {
			continue
		}
		if query.StartDate != "" && row.Date < query.StartDate {
			continue
		}
		if query.EndDate != "" && row.Date > query.EndDate {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// DeleteSales removes the given ids; unknown ids are ignored.
func (c *MockClient) DeleteSales(_ context.Context, ids []int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = slices.DeleteFunc(c.rows, func(row sales.Sale) bool {
		return slices.Contains(ids, row.ID)
	})
	return nil
}

// CreateSale appends one row per passenger.
func (c *MockClient) CreateSale(_ context.Context, input sales.SaleInput) error {
	if len(input.Passengers) == 0 {
		return &sales.RemoteError{Status: 400, Message: "passengers are required"}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, passenger := range input.Passengers {
		c.nextID++
		c.rows = append(c.rows, saleFromInput(c.nextID, input, passenger))
	}
	return nil
}

// UpdateSale replaces the row keyed by input.ID.
func (c *MockClient) UpdateSale(_ context.Context, input sales.SaleInput) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, row := range c.rows {
		if row.ID != input.ID {
			continue
		}
		passenger := sales.PassengerInput{Name: row.Name, Age: row.Age, Notes: row.Notes, Passport: row.Passport}
		if len(input.Passengers) > 0 {
			passenger = input.Passengers[0]
		}
		updated := saleFromInput(row.ID, input, passenger)
		updated.CreatedAt = row.CreatedAt
		c.rows[i] = updated
		return nil
	}
	return &sales.RemoteError{Status: 404, Message: fmt.Sprintf("sale %d not found", input.ID)}
}

// GenerateReport returns a CSV manifest of the departure.
func (c *MockClient) GenerateReport(_ context.Context, req sales.ReportRequest) (sales.File, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var b strings.Builder
	b.WriteString("id,name,age,passport,route,ferry\n")
	for _, row := range c.rows {
		if row.Date != req.Date || (req.Time != "" && row.Time != req.Time) {
			continue
		}
		fmt.Fprintf(&b, "%d,%s,%d,%s,%s,%s\n", row.ID, row.Name, row.Age, row.Passport, row.Route, row.Ferry)
	}
	return sales.File{
		Name:        fmt.Sprintf("reporte_%s_%s.csv", req.Business, req.Date),
		ContentType: "text/csv",
		Data:        []byte(b.String()),
	}, nil
}

// DownloadAllSales returns every row as CSV regardless of format.
func (c *MockClient) DownloadAllSales(_ context.Context, business, format string) (sales.File, error) {
	if format == "" {
		format = "csv"
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	var b strings.Builder
	b.WriteString("id,name,date,price,payed\n")
	for _, row := range c.rows {
		fmt.Fprintf(&b, "%d,%s,%s,%g,%t\n", row.ID, row.Name, row.Date, row.Price, row.Payed)
	}
	return sales.File{
		Name:        fmt.Sprintf("ventas_%s.%s", business, format),
		ContentType: "text/csv",
		Data:        []byte(b.String()),
	}, nil
}

// Login accepts any configured user and issues a random token.
func (c *MockClient) Login(_ context.Context, creds Credentials) (LoginResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	password, ok := c.users[strings.TrimSpace(creds.Email)]
	if !ok || password != creds.Password {
		return LoginResult{}, &sales.RemoteError{Status: 401, Message: "Credenciales inválidas"}
	}
	token := uuid.NewString()
	c.tokens[token] = creds.Email
	return LoginResult{Token: token, Email: creds.Email, Name: strings.Split(creds.Email, "@")[0], Business: c.business}, nil
}

// RefreshToken rotates a token issued by Login.
func (c *MockClient) RefreshToken(_ context.Context, token string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	email, ok := c.tokens[token]
	if !ok {
		return "", &sales.RemoteError{Status: 401, Message: "token expired"}
	}
	delete(c.tokens, token)
	next := uuid.NewString()
	c.tokens[next] = email
	return next, nil
}

// ValidateInvite reports whether token is a known, unused invite.
func (c *MockClient) ValidateInvite(_ context.Context, token string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.invites[token]
	return ok && !c.used[token], nil
}

// InviteEmail returns the address of an invite.
func (c *MockClient) InviteEmail(_ context.Context, token string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	email, ok := c.invites[token]
	if !ok {
		return "", &sales.RemoteError{Status: 404, Message: "invite not found"}
	}
	return email, nil
}

// UseInvite marks an invite as consumed.
func (c *MockClient) UseInvite(_ context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.invites[token]; !ok {
		return &sales.RemoteError{Status: 404, Message: "invite not found"}
	}
	c.used[token] = true
	return nil
}

// Register adds a user for an unused invite.
func (c *MockClient) Register(_ context.Context, reg Registration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.invites[reg.Token]; !ok || c.used[reg.Token] {
		return &sales.RemoteError{Status: 403, Message: "invite is not valid"}
	}
	c.users[reg.Email] = reg.Password
	return nil
}

// Snapshot returns a copy of every stored row.
func (c *MockClient) Snapshot() []sales.Sale {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneSales(c.rows)
}

func saleFromInput(id int64, input sales.SaleInput, passenger sales.PassengerInput) sales.Sale {
	input = input.Normalize()
	return sales.Sale{
		ID:           id,
		Name:         passenger.Name,
		Age:          passenger.Age,
		Route:        input.Route,
		Time:         input.Time,
		Ferry:        input.Ferry,
		Intermediary: input.Intermediary,
		Date:         input.Date,
		Seller:       input.SellerEmail,
		Passport:     passenger.Passport,
		Phone:        input.Phone,
		Status:       input.Status,
		Notes:        passenger.Notes,
		Payed:        input.Payed,
		Payment:      input.Payment,
		Price:        input.Price,
		Mail:         input.Mail,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
}

func cloneSales(rows []sales.Sale) []sales.Sale {
	return append([]sales.Sale(nil), rows...)
}

func cloneStrings(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// DemoData returns a small deterministic fixture around day.
func DemoData(business string, day time.Time) MockData {
	routes := []string{"Santa Cruz - Isabela", "Isabela - Santa Cruz", "Santa Cruz - San Cristóbal", "San Cristóbal - Santa Cruz"}
	ferries := []string{"Gaviota I", "Albatros", "Piquero"}
	names := []string{"Ana Torres", "Luis Paredes", "María Cevallos", "John Smith", "Sofía Andrade", "Pedro Mora", "Emma Brown", "Carlos Vera"}
	rows := make([]sales.Sale, 0, 40)
	for i := 0; i < 40; i++ {
		payed := i%3 != 0
		payment := sales.PaymentCash
		if !payed {
			payment = sales.PaymentCredit
		}
		timeOfDay := sales.TimeMorning
		if i%2 == 1 {
			timeOfDay = sales.TimeAfternoon
		}
		rows = append(rows, sales.Sale{
			ID:       int64(i + 1),
			Name:     names[i%len(names)],
			Age:      18 + (i*7)%60,
			Route:    routes[i%len(routes)],
			Time:     timeOfDay,
			Ferry:    ferries[i%len(ferries)],
			Date:     sales.FormatDate(day.AddDate(0, 0, i%11-5)),
			Seller:   "vendedor@" + strings.ToLower(business) + ".ec",
			Passport: fmt.Sprintf("P%07d", 1000+i*37),
			Phone:    fmt.Sprintf("09%08d", 12345678+i),
			Status:   "confirmado",
			Payed:    payed,
			Payment:  payment,
			Price:    float64(25 + (i%4)*5),
		})
	}
	return MockData{
		Sales:    rows,
		Users:    map[string]string{"owner@example.com": "secret"},
		Business: business,
		Invites:  map[string]string{"invite-demo": "seller@example.com"},
	}
}
