package sales

import (
	"context"
	"time"
)

// Sale is one passenger booking as returned by the backend. Only ID is
// guaranteed to be unique; every other field may be empty.
type Sale struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Age          int     `json:"age"`
	Route        string  `json:"route"`
	Time         string  `json:"time"`
	Ferry        string  `json:"ferry"`
	Intermediary string  `json:"intermediary"`
	Date         string  `json:"date"`
	Seller       string  `json:"seller"`
	Passport     string  `json:"passport"`
	Phone        string  `json:"phone"`
	Status       string  `json:"status"`
	Notes        string  `json:"notes"`
	Payed        bool    `json:"payed"`
	Payment      string  `json:"payment"`
	Price        float64 `json:"price"`
	Mail         string  `json:"mail,omitempty"`
	BusinessID   int64   `json:"business_id,omitempty"`
	CreatedAt    string  `json:"created_at,omitempty"`
}

// SalesQuery selects the sales of a business between two calendar dates,
// both formatted as YYYY-MM-DD.
type SalesQuery struct {
	Business  string
	StartDate string
	EndDate   string
}

// PassengerInput is one passenger on a create/edit form.
type PassengerInput struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Notes    string `json:"notes"`
	Passport string `json:"passport"`
}

// SaleInput is the create/edit form payload. ID is zero when creating.
type SaleInput struct {
	ID           int64            `json:"id,omitempty"`
	Business     string           `json:"business"`
	SellerEmail  string           `json:"seller_email"`
	Passengers   []PassengerInput `json:"passengers"`
	Price        float64          `json:"price"`
	Route        string           `json:"route"`
	Time         string           `json:"time"`
	Ferry        string           `json:"ferry"`
	Intermediary string           `json:"intermediary"`
	Date         string           `json:"date"`
	Phone        string           `json:"phone"`
	Status       string           `json:"status"`
	Mail         string           `json:"mail"`
	Payed        bool             `json:"payed"`
	Payment      string           `json:"payment"`
}

// Payment methods understood by the backend.
const (
	PaymentCash   = "efectivo"
	PaymentCredit = "credito"
)

// Departure time codes.
const (
	TimeMorning   = "7"
	TimeAfternoon = "15"
)

// InputFromSale pre-fills an edit form from an existing row.
func InputFromSale(s Sale) SaleInput {
	return SaleInput{
		ID: s.ID,
		Passengers: []PassengerInput{{
			Name:     s.Name,
			Age:      s.Age,
			Notes:    s.Notes,
			Passport: s.Passport,
		}},
		Price:        s.Price,
		Route:        s.Route,
		Time:         s.Time,
		Ferry:        s.Ferry,
		Intermediary: s.Intermediary,
		Date:         s.Date,
		Phone:        s.Phone,
		Status:       s.Status,
		Mail:         s.Mail,
		Payed:        s.Payed,
		Payment:      s.Payment,
	}
}

// Normalize applies the form rules: unpaid sales are always on credit and a
// paid sale without a method defaults to cash.
func (in SaleInput) Normalize() SaleInput {
	out := in
	out.Passengers = append([]PassengerInput(nil), in.Passengers...)
	switch {
	case !out.Payed:
		out.Payment = PaymentCredit
	case out.Payment == "":
		out.Payment = PaymentCash
	}
	return out
}

// File is a binary download (report or export) with its resolved file name.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReportRequest asks the backend to render the passenger manifest for one departure.
type ReportRequest struct {
	Business string `json:"business"`
	Time     string `json:"time"`
	Date     string `json:"date"`
}

// SalesFetcher loads rows for a date range.
type SalesFetcher interface {
	FetchSales(ctx context.Context, query SalesQuery) ([]Sale, error)
}

// SalesDeleter removes rows by id in one request.
type SalesDeleter interface {
	DeleteSales(ctx context.Context, ids []int64) error
}

// SaleWriter creates and updates sales.
type SaleWriter interface {
	CreateSale(ctx context.Context, input SaleInput) error
	UpdateSale(ctx context.Context, input SaleInput) error
}

// Backend is the full set of sales operations the grid needs.
type Backend interface {
	SalesFetcher
	SalesDeleter
	SaleWriter
}

// ReportBackend renders binary exports remotely.
type ReportBackend interface {
	GenerateReport(ctx context.Context, req ReportRequest) (File, error)
	DownloadAllSales(ctx context.Context, business, format string) (File, error)
}

// GridEvent describes a change in grid state pushed to refresh hooks.
type GridEvent struct {
	Type       string    `json:"type"`
	Business   string    `json:"business,omitempty"`
	IDs        []int64   `json:"ids,omitempty"`
	Count      int       `json:"count"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Grid event types.
const (
	EventLoaded   = "sales.loaded"
	EventDeleted  = "sales.deleted"
	EventSaved    = "sales.saved"
	EventSelected = "sales.selection"
)

// RefreshHook receives grid events (websocket/SSE broadcast, audit sinks).
type RefreshHook interface {
	GridChanged(ctx context.Context, event GridEvent) error
}

type noopRefreshHook struct{}

func (noopRefreshHook) GridChanged(context.Context, GridEvent) error { return nil }
