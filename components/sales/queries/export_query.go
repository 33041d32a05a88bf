package queries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-ferry-admin/components/sales"
)

// ReportInput asks for the manifest of one departure.
type ReportInput struct {
	Time string `json:"time"`
	Date string `json:"date"`
}

type reportService interface {
	GenerateReport(ctx context.Context, req sales.ReportRequest) (sales.File, error)
}

// ReportQuery renders a departure manifest for the session business.
type ReportQuery struct {
	service reportService
	session sales.SessionSource
}

// NewReportQuery builds the query.
func NewReportQuery(service reportService, session sales.SessionSource) *ReportQuery {
	return &ReportQuery{service: service, session: session}
}

var _ gocommand.Querier[ReportInput, sales.File] = (*ReportQuery)(nil)

// Query validates the departure and fetches the file.
func (q *ReportQuery) Query(ctx context.Context, input ReportInput) (sales.File, error) {
	if q.service == nil || q.session == nil {
		return sales.File{}, errors.New("report query requires service and session")
	}
	session := q.session.Current()
	if err := session.Require(); err != nil {
		return sales.File{}, err
	}
	if input.Time != sales.TimeMorning && input.Time != sales.TimeAfternoon {
		return sales.File{}, fmt.Errorf("%w: departure time must be %s or %s", sales.ErrInvalidInput, sales.TimeMorning, sales.TimeAfternoon)
	}
	if _, err := time.Parse(sales.DateLayout, input.Date); err != nil {
		return sales.File{}, fmt.Errorf("%w: report date %q", sales.ErrInvalidInput, input.Date)
	}
	return q.service.GenerateReport(ctx, sales.ReportRequest{
		Business: session.Business,
		Time:     input.Time,
		Date:     input.Date,
	})
}

// Download formats accepted by the backend.
var DownloadFormats = []string{"xlsx", "csv"}

// DownloadInput picks the export format.
type DownloadInput struct {
	Format string `json:"format"`
}

type downloadService interface {
	DownloadAllSales(ctx context.Context, business, format string) (sales.File, error)
}

// DownloadQuery exports every sale of the session business.
type DownloadQuery struct {
	service downloadService
	session sales.SessionSource
}

// NewDownloadQuery builds the query.
func NewDownloadQuery(service downloadService, session sales.SessionSource) *DownloadQuery {
	return &DownloadQuery{service: service, session: session}
}

var _ gocommand.Querier[DownloadInput, sales.File] = (*DownloadQuery)(nil)

// Query fetches the export.
func (q *DownloadQuery) Query(ctx context.Context, input DownloadInput) (sales.File, error) {
	if q.service == nil || q.session == nil {
		return sales.File{}, errors.New("download query requires service and session")
	}
	session := q.session.Current()
	if err := session.Require(); err != nil {
		return sales.File{}, err
	}
	format := strings.ToLower(strings.TrimSpace(input.Format))
	if format == "" {
		format = DownloadFormats[0]
	}
	known := false
	for _, candidate := range DownloadFormats {
		if candidate == format {
			known = true
			break
		}
	}
	if !known {
		return sales.File{}, fmt.Errorf("%w: unsupported format %q", sales.ErrInvalidInput, input.Format)
	}
	return q.service.DownloadAllSales(ctx, session.Business, format)
}
