package queries

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-ferry-admin/components/sales"
)

var session = sales.Session{Business: "Gaviota", Token: "tok"}

type stubViewService struct {
	calls int
}

func (s *stubViewService) View(context.Context) sales.GridView {
	s.calls++
	return sales.GridView{Total: 3}
}

type stubSummaryService struct {
	window sales.Window
}

func (s *stubSummaryService) Summary(_ context.Context, window sales.Window) (sales.DashboardSummary, error) {
	s.window = window
	return sales.DashboardSummary{Window: window}, nil
}

type stubExportService struct {
	report   sales.ReportRequest
	business string
	format   string
}

func (s *stubExportService) GenerateReport(_ context.Context, req sales.ReportRequest) (sales.File, error) {
	s.report = req
	return sales.File{Name: "r.xlsx"}, nil
}

func (s *stubExportService) DownloadAllSales(_ context.Context, business, format string) (sales.File, error) {
	s.business, s.format = business, format
	return sales.File{Name: "ventas." + format}, nil
}

func TestGridViewQuery(t *testing.T) {
	service := &stubViewService{}
	view, err := NewGridViewQuery(service).Query(context.Background(), GridViewInput{})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.calls != 1 || view.Total != 3 {
		t.Fatalf("unexpected view %+v", view)
	}
}

func TestSummaryQuery(t *testing.T) {
	service := &stubSummaryService{}
	if _, err := NewSummaryQuery(service).Query(context.Background(), SummaryInput{Window: sales.Window15d}); err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.window != sales.Window15d {
		t.Fatalf("expected window forwarded, got %q", service.window)
	}
}

func TestReportQuery(t *testing.T) {
	service := &stubExportService{}
	query := NewReportQuery(service, session)
	if _, err := query.Query(context.Background(), ReportInput{Time: "15", Date: "2024-05-01"}); err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.report != (sales.ReportRequest{Business: "Gaviota", Time: "15", Date: "2024-05-01"}) {
		t.Fatalf("unexpected report request %+v", service.report)
	}
	if _, err := query.Query(context.Background(), ReportInput{Time: "9", Date: "2024-05-01"}); !errors.Is(err, sales.ErrInvalidInput) {
		t.Fatalf("expected invalid input for time, got %v", err)
	}
	if _, err := query.Query(context.Background(), ReportInput{Time: "7", Date: "mañana"}); !errors.Is(err, sales.ErrInvalidInput) {
		t.Fatalf("expected invalid input for date, got %v", err)
	}
	if _, err := NewReportQuery(service, sales.Session{}).Query(context.Background(), ReportInput{Time: "7", Date: "2024-05-01"}); !errors.Is(err, sales.ErrMissingSession) {
		t.Fatalf("expected missing session, got %v", err)
	}
}

func TestDownloadQuery(t *testing.T) {
	service := &stubExportService{}
	query := NewDownloadQuery(service, session)
	file, err := query.Query(context.Background(), DownloadInput{})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if file.Name != "ventas.xlsx" || service.business != "Gaviota" {
		t.Fatalf("unexpected download %+v / %s", file, service.business)
	}
	if _, err := query.Query(context.Background(), DownloadInput{Format: "pdf"}); !errors.Is(err, sales.ErrInvalidInput) {
		t.Fatalf("expected invalid format, got %v", err)
	}
}
