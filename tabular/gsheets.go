package tabular

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleSheets is a Backend over one Google spreadsheet using the Sheets v4
// values API.
type GoogleSheets struct {
	service       *sheets.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheets authenticates with a service-account key file and returns
// a backend bound to spreadsheetID.
func NewGoogleSheets(ctx context.Context, spreadsheetID, credentialsFile string, logger *zap.Logger) (*GoogleSheets, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}

	jsonKey, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account key file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account key: %w", err)
	}

	httpClient := oauth2.NewClient(ctx, jwtConfig.TokenSource(ctx))
	return NewGoogleSheetsWithOptions(ctx, spreadsheetID, logger, option.WithHTTPClient(httpClient))
}

// NewGoogleSheetsWithOptions builds the backend from raw client options, for
// callers that manage authentication or the endpoint themselves.
func NewGoogleSheetsWithOptions(ctx context.Context, spreadsheetID string, logger *zap.Logger, opts ...option.ClientOption) (*GoogleSheets, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return &GoogleSheets{service: srv, spreadsheetID: spreadsheetID, logger: logger}, nil
}

func (g *GoogleSheets) Read(ctx context.Context, sheet, span string) ([][]string, error) {
	if _, err := ParseSpan(span); err != nil {
		return nil, err
	}
	resp, err := g.service.Spreadsheets.Values.Get(g.spreadsheetID, a1(sheet, span)).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read %s!%s: %w", sheet, span, err)
	}

	out := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = cast.ToString(v)
		}
		out[i] = cells
	}
	return out, nil
}

func (g *GoogleSheets) Append(ctx context.Context, sheet string, row []any) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := g.service.Spreadsheets.Values.Append(g.spreadsheetID, a1(sheet, "A1"), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", sheet, err)
	}
	g.logger.Debug("tabular: appended row", zap.String("sheet", sheet))
	return nil
}

func (g *GoogleSheets) Update(ctx context.Context, sheet, span string, row []any) error {
	sp, err := ParseSpan(span)
	if err != nil {
		return err
	}
	if sp.EndRow != sp.StartRow {
		return fmt.Errorf("update span %q must cover exactly one row", span)
	}

	padded := make([]interface{}, sp.Width())
	for i := range padded {
		padded[i] = ""
	}
	copy(padded, row)

	vr := &sheets.ValueRange{Values: [][]interface{}{padded}}
	_, err = g.service.Spreadsheets.Values.Update(g.spreadsheetID, a1(sheet, span), vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update %s!%s: %w", sheet, span, err)
	}
	return nil
}

func (g *GoogleSheets) Clear(ctx context.Context, sheet, span string) error {
	_, err := g.service.Spreadsheets.Values.Clear(g.spreadsheetID, a1(sheet, span), &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("clear %s!%s: %w", sheet, span, err)
	}
	return nil
}

// a1 joins a sheet name and span, quoting the sheet name.
func a1(sheet, span string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'!" + span
}
