package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamyzabawki/descgen-api/internal/platform/shoper"
)

type fakeCatalog struct {
	authErr  error
	products []shoper.Product
	gotIDs   []string
}

func (f *fakeCatalog) Authenticate(_ context.Context, _, _ string) (string, error) {
	if f.authErr != nil {
		return "", f.authErr
	}
	return "tok", nil
}

func (f *fakeCatalog) FetchProducts(_ context.Context, _ string, ids []string) []shoper.Product {
	f.gotIDs = ids
	return f.products
}

type fakeGenerator struct {
	calls   int
	failOn  map[int]error
	results func(prompt string) string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	if err, ok := f.failOn[f.calls]; ok {
		return "", err
	}
	if f.results != nil {
		return f.results(prompt), nil
	}
	return "<div>opis</div>", nil
}

type fakeWriter struct {
	filename string
	rows     []ReportRow
	writes   int
}

func (f *fakeWriter) Write(filename string, rows []ReportRow) (string, error) {
	f.writes++
	f.filename = filename
	f.rows = rows
	return "static/" + filename, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func product(id, name string) shoper.Product {
	return shoper.Product{ProductID: json.Number(id), Name: name}
}

func newService(catalog Catalog, gen *fakeGenerator, writer *fakeWriter) *BatchService {
	return NewBatchService(
		func(string) Catalog { return catalog },
		gen,
		writer,
		0, // no pacing in tests
		testLogger(),
	)
}

func TestParseIdentifiers(t *testing.T) {
	ids, err := ParseIdentifiers(strings.NewReader("101\n\n  102  \n\n103\n"))

	require.NoError(t, err)
	assert.Equal(t, []string{"101", "102", "103"}, ids)
}

func TestParseIdentifiersEmptyInput(t *testing.T) {
	ids, err := ParseIdentifiers(strings.NewReader("\n   \n\t\n"))

	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRunFailsOnEmptyIdentifierList(t *testing.T) {
	writer := &fakeWriter{}
	svc := newService(&fakeCatalog{}, &fakeGenerator{}, writer)

	_, _, err := svc.Run(context.Background(), BatchRequest{Filename: "out.xlsx"}, nil)

	assert.ErrorIs(t, err, ErrNoIdentifiers)
	assert.Zero(t, writer.writes, "no file may be written on a fatal error")
}

func TestRunFailsWhenAuthenticationFails(t *testing.T) {
	writer := &fakeWriter{}
	catalog := &fakeCatalog{authErr: shoper.ErrAuthFailed}
	svc := newService(catalog, &fakeGenerator{}, writer)

	_, _, err := svc.Run(context.Background(), BatchRequest{
		IDs:      []string{"1"},
		Filename: "out.xlsx",
	}, nil)

	assert.ErrorIs(t, err, shoper.ErrAuthFailed)
	assert.Zero(t, writer.writes)
}

func TestRunFailsWhenNoProductsFetched(t *testing.T) {
	writer := &fakeWriter{}
	svc := newService(&fakeCatalog{}, &fakeGenerator{}, writer)

	_, _, err := svc.Run(context.Background(), BatchRequest{
		IDs:      []string{"1", "2"},
		Filename: "out.xlsx",
	}, nil)

	assert.ErrorIs(t, err, ErrNoProducts)
	assert.Zero(t, writer.writes)
}

func TestRunProducesRowInCatalogOrder(t *testing.T) {
	catalog := &fakeCatalog{products: []shoper.Product{
		product("101", "Klocki"),
		product("103", "Lalka"),
	}}
	writer := &fakeWriter{}
	svc := newService(catalog, &fakeGenerator{}, writer)

	path, rows, err := svc.Run(context.Background(), BatchRequest{
		IDs:      []string{"101", "102", "103"},
		Filename: "out.xlsx",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "static/out.xlsx", path)
	assert.Equal(t, 2, rows, "only resolved records produce rows")
	require.Len(t, writer.rows, 2)
	assert.Equal(t, "101", writer.rows[0].ID)
	assert.Equal(t, "103", writer.rows[1].ID)
	assert.Equal(t, []string{"101", "102", "103"}, catalog.gotIDs)
}

func TestRunRecordsPerRecordFailureAndContinues(t *testing.T) {
	catalog := &fakeCatalog{products: []shoper.Product{
		product("1", "A"),
		product("2", "B"),
		product("3", "C"),
	}}
	gen := &fakeGenerator{failOn: map[int]error{2: errors.New("provider exploded")}}
	writer := &fakeWriter{}
	svc := newService(catalog, gen, writer)

	_, rows, err := svc.Run(context.Background(), BatchRequest{
		IDs:      []string{"1", "2", "3"},
		Filename: "out.xlsx",
	}, nil)

	require.NoError(t, err, "a per-record failure must not abort the batch")
	assert.Equal(t, 3, rows)
	require.Len(t, writer.rows, 3)
	assert.Equal(t, "<div>opis</div>", writer.rows[0].HTML)
	assert.Equal(t, "Błąd: provider exploded", writer.rows[1].HTML)
	assert.Equal(t, "<div>opis</div>", writer.rows[2].HTML)
}

func TestRunErrorRowFallsBackToPlaceholderName(t *testing.T) {
	catalog := &fakeCatalog{products: []shoper.Product{
		product("1", ""),
		product("2", ""),
	}}
	gen := &fakeGenerator{failOn: map[int]error{1: errors.New("provider exploded")}}
	writer := &fakeWriter{}
	svc := newService(catalog, gen, writer)

	_, _, err := svc.Run(context.Background(), BatchRequest{
		IDs:      []string{"1", "2"},
		Filename: "out.xlsx",
	}, nil)

	require.NoError(t, err)
	require.Len(t, writer.rows, 2)
	assert.Equal(t, "Brak nazwy", writer.rows[0].Name, "error rows substitute a placeholder for a missing name")
	assert.Equal(t, "", writer.rows[1].Name, "successful rows keep the raw name")
}

func TestRunReportsMonotonicProgress(t *testing.T) {
	catalog := &fakeCatalog{products: []shoper.Product{
		product("1", "A"),
		product("2", "B"),
		product("3", "C"),
	}}
	svc := newService(catalog, &fakeGenerator{}, &fakeWriter{})

	var seen []int
	_, _, err := svc.Run(context.Background(), BatchRequest{
		IDs:      []string{"1", "2", "3"},
		Filename: "out.xlsx",
	}, func(done, total int) {
		assert.Equal(t, 3, total)
		seen = append(seen, done)
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestRunUsesLocalizedNameWithFallback(t *testing.T) {
	catalog := &fakeCatalog{products: []shoper.Product{
		{
			ProductID: json.Number("7"),
			Name:      "Raw name",
			Translations: map[string]shoper.Translation{
				"pl_PL": {Name: "Nazwa PL", Description: "Opis PL"},
			},
		},
	}}
	gen := &fakeGenerator{results: func(prompt string) string {
		assert.Contains(t, prompt, "Nazwa: Nazwa PL")
		assert.Contains(t, prompt, "Opis: Opis PL")
		return "<p>ok</p>"
	}}
	writer := &fakeWriter{}
	svc := newService(catalog, gen, writer)

	_, _, err := svc.Run(context.Background(), BatchRequest{
		IDs:      []string{"7"},
		Filename: "out.xlsx",
	}, nil)

	require.NoError(t, err)
	require.Len(t, writer.rows, 1)
	assert.Equal(t, "Nazwa PL", writer.rows[0].Name)
}
