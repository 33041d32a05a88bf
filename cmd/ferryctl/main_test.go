package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-ferry-admin/components/sales"
	"github.com/goliatone/go-ferry-admin/pkg/config"
	"github.com/goliatone/go-ferry-admin/pkg/ferryapi"
)

var testDay = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*app, *bytes.Buffer, *ferryapi.MockClient) {
	t.Helper()
	client := ferryapi.NewMockClient(ferryapi.DemoData(mockBusiness, testDay))
	store := sales.NewMemorySessionStore(sales.Session{
		Business: mockBusiness,
		Token:    "mock-token",
		Email:    "owner@example.com",
		Role:     "owner",
	})
	out := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &app{
		cfg:       config.Default(),
		logger:    logger,
		store:     store,
		session:   store,
		client:    client,
		telemetry: sales.NewSlogTelemetry(logger),
		out:       out,
		now:       func() time.Time { return testDay },
	}, out, client
}

func TestListPrintsJSON(t *testing.T) {
	a, out, _ := newTestApp(t)
	cmd := &listCmd{FilterColumn: "name", Filter: "Ana", Page: 1, All: true, JSON: true}
	require.NoError(t, cmd.Run(a))

	var rows []sales.Sale
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	assert.Len(t, rows, 5)
	for _, row := range rows {
		assert.Equal(t, "Ana Torres", row.Name)
	}
}

func TestListPrintsPageFooter(t *testing.T) {
	a, out, _ := newTestApp(t)
	cmd := &listCmd{FilterColumn: "name", Page: 2}
	require.NoError(t, cmd.Run(a))
	assert.Contains(t, out.String(), "Página 2 de 4 · 40 de 40 ventas")
}

func TestListRejectsUnknownFilterColumn(t *testing.T) {
	a, _, _ := newTestApp(t)
	cmd := &listCmd{FilterColumn: "nope", Filter: "x", Page: 1}
	assert.Error(t, cmd.Run(a))
}

func TestDeleteRemovesRows(t *testing.T) {
	a, out, client := newTestApp(t)
	cmd := &deleteCmd{IDs: []int64{2, 1}}
	require.NoError(t, cmd.Run(a))
	assert.Len(t, client.Snapshot(), 38)
	assert.Contains(t, out.String(), "✓")
}

func TestCreateExpandsPassengers(t *testing.T) {
	a, out, client := newTestApp(t)
	cmd := &createCmd{SaleFlags: SaleFlags{
		Passenger: []string{"Nueva Pasajera:30", "Otro"},
		Price:     "40",
		Route:     "Santa Cruz - Isabela",
		Time:      sales.TimeMorning,
		Ferry:     "Albatros",
		Date:      "2024-05-10",
	}}
	require.NoError(t, cmd.Run(a))

	rows := client.Snapshot()
	require.Len(t, rows, 42)
	assert.Equal(t, "Nueva Pasajera", rows[40].Name)
	assert.Equal(t, 30, rows[40].Age)
	assert.True(t, rows[41].Payed)
	assert.NotEmpty(t, out.String())
}

func TestCreateRejectsIncompleteForm(t *testing.T) {
	a, _, client := newTestApp(t)
	cmd := &createCmd{SaleFlags: SaleFlags{Passenger: []string{"Solo"}}}
	err := cmd.Run(a)
	require.Error(t, err)
	assert.ErrorIs(t, err, sales.ErrInvalidInput)
	assert.Len(t, client.Snapshot(), 40)
}

func TestEditOverlaysFlags(t *testing.T) {
	a, _, client := newTestApp(t)
	cmd := &editCmd{ID: 3, SaleFlags: SaleFlags{Price: "99", Payed: "no"}}
	require.NoError(t, cmd.Run(a))

	for _, row := range client.Snapshot() {
		if row.ID == 3 {
			assert.Equal(t, 99.0, row.Price)
			assert.False(t, row.Payed)
			assert.Equal(t, "María Cevallos", row.Name)
			return
		}
	}
	t.Fatalf("sale 3 missing after edit")
}

func TestEditUnknownSale(t *testing.T) {
	a, _, _ := newTestApp(t)
	cmd := &editCmd{ID: 999}
	err := cmd.Run(a)
	require.Error(t, err)
	assert.ErrorIs(t, err, sales.ErrRowNotFound)
	assert.True(t, strings.HasPrefix(err.Error(), "ferryctl: "))
}

func TestDownloadWritesFile(t *testing.T) {
	a, out, _ := newTestApp(t)
	dir := t.TempDir()
	require.NoError(t, (&downloadCmd{Format: "csv", Dir: dir}).Run(a))

	data, err := os.ReadFile(filepath.Join(dir, "ventas_Gaviota.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "id,name,date,price,payed\n"))
	assert.Contains(t, out.String(), "ventas_Gaviota.csv")
}

func TestReportWritesManifest(t *testing.T) {
	a, _, _ := newTestApp(t)
	dir := t.TempDir()
	require.NoError(t, (&reportCmd{Time: sales.TimeMorning, Date: "2024-05-10", Dir: dir}).Run(a))

	_, err := os.Stat(filepath.Join(dir, "reporte_Gaviota_2024-05-10.csv"))
	assert.NoError(t, err)
}

func TestSummaryPrintsTotalsAndChart(t *testing.T) {
	a, out, _ := newTestApp(t)
	chart := filepath.Join(t.TempDir(), "chart.html")
	require.NoError(t, (&summaryCmd{Window: "7d", Chart: chart}).Run(a))

	assert.Contains(t, out.String(), "Ventas 7d")
	assert.Contains(t, out.String(), "Total:")
	data, err := os.ReadFile(chart)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestParsePassengers(t *testing.T) {
	got, err := parsePassengers([]string{"Ana:31", " Luis "})
	require.NoError(t, err)
	assert.Equal(t, []sales.PassengerInput{{Name: "Ana", Age: 31}, {Name: "Luis"}}, got)

	_, err = parsePassengers([]string{"Ana:old"})
	assert.Error(t, err)
}

func TestSaleFlagsApply(t *testing.T) {
	base := sales.SaleInput{Route: "A", Price: 10, Payed: true}
	got, err := SaleFlags{Route: "B", Payed: "no"}.apply(base)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Route)
	assert.Equal(t, 10.0, got.Price)
	assert.False(t, got.Payed)

	_, err = SaleFlags{Payed: "maybe"}.apply(base)
	assert.Error(t, err)
	_, err = SaleFlags{Price: "cheap"}.apply(base)
	assert.Error(t, err)
}

func TestRenderSalesTable(t *testing.T) {
	rows := []sales.Sale{{ID: 7, Name: "Ana Torres", Payed: true}}
	out := renderSalesTable(sales.DefaultColumns().Data(), rows, false)
	assert.Contains(t, out, "Ana Torres")
	assert.Contains(t, out, "Si")

	empty := renderSalesTable(sales.DefaultColumns().Data(), nil, false)
	assert.Contains(t, empty, "Sin ventas")
}

func TestNoticeErrorKeepsCause(t *testing.T) {
	a, _, _ := newTestApp(t)
	err := a.notice(sales.OpLoad, sales.ErrMissingSession)
	assert.ErrorIs(t, err, sales.ErrMissingSession)
	assert.Nil(t, a.notice(sales.OpLoad, nil))
}

func TestCLIParsesCommands(t *testing.T) {
	var root cli
	parser, err := kong.New(&root, kong.Name("ferryctl"))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"--mock", "sales", "delete", "3", "1"})
	require.NoError(t, err)
	assert.True(t, root.Mock)
	assert.Equal(t, []int64{3, 1}, root.Sales.Delete.IDs)

	_, err = parser.Parse([]string{"summary", "--window", "90d"})
	assert.Error(t, err)

	var errParse *kong.ParseError
	_, err = parser.Parse([]string{"report", "--time", "9", "--date", "2024-05-10"})
	assert.True(t, errors.As(err, &errParse))
}
