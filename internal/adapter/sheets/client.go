package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/couchcryptid/ops-report-service/internal/domain"
)

const tokenURL = "https://oauth2.googleapis.com/token"

// Render options: numbers stay numbers, dates arrive as formatted strings or serials.
const (
	valueRender    = "UNFORMATTED_VALUE"
	dateTimeRender = "FORMATTED_STRING"
)

// Credentials identify the spreadsheet and the service account reading it.
type Credentials struct {
	SpreadsheetID string
	ClientEmail   string
	PrivateKey    string
}

// Missing lists the environment variables behind empty fields.
func (c Credentials) Missing() []string {
	var missing []string
	if c.SpreadsheetID == "" {
		missing = append(missing, "GOOGLE_SHEETS_SPREADSHEET_ID")
	}
	if c.ClientEmail == "" {
		missing = append(missing, "GOOGLE_SHEETS_CLIENT_EMAIL")
	}
	if c.PrivateKey == "" {
		missing = append(missing, "GOOGLE_SHEETS_PRIVATE_KEY")
	}
	return missing
}

// Client implements domain.TabularSource using the Google Sheets API.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	logger        *slog.Logger
}

// NewClient creates a Sheets client authenticated as a service account with
// read-only scope. It returns an error wrapping domain.ErrConfiguration when
// any credential is missing. endpoint overrides the API base URL when set.
func NewClient(ctx context.Context, creds Credentials, endpoint string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	if missing := creds.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrConfiguration, strings.Join(missing, ", "))
	}

	conf := &jwt.Config{
		Email:      creds.ClientEmail,
		PrivateKey: []byte(creds.PrivateKey),
		Scopes:     []string{sheetsapi.SpreadsheetsReadonlyScope},
		TokenURL:   tokenURL,
	}
	httpClient := conf.Client(ctx)
	httpClient.Timeout = timeout

	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return newClient(ctx, creds.SpreadsheetID, logger, opts...)
}

func newClient(ctx context.Context, spreadsheetID string, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, logger: logger}, nil
}

// GetRange returns the rows of an A1 range such as "DMAs!A:O". Trailing empty
// cells are omitted by the API, so rows may be shorter than the range.
func (c *Client) GetRange(ctx context.Context, sheetRange string) ([][]any, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, sheetRange).
		ValueRenderOption(valueRender).
		DateTimeRenderOption(dateTimeRender).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: get range %q: %w", sheetRange, err)
	}
	c.logger.Debug("sheets range read", "range", sheetRange, "rows", len(resp.Values))
	return resp.Values, nil
}

// TabInfo describes one tab of the spreadsheet.
type TabInfo struct {
	Title string
	Rows  int64
}

// Tabs lists the spreadsheet's tabs with their grid row counts.
func (c *Client) Tabs(ctx context.Context) ([]TabInfo, error) {
	resp, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties.title", "sheets.properties.gridProperties.rowCount").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: get spreadsheet: %w", err)
	}

	tabs := make([]TabInfo, 0, len(resp.Sheets))
	for _, s := range resp.Sheets {
		if s.Properties == nil {
			continue
		}
		info := TabInfo{Title: s.Properties.Title}
		if s.Properties.GridProperties != nil {
			info.Rows = s.Properties.GridProperties.RowCount
		}
		tabs = append(tabs, info)
	}
	return tabs, nil
}

// IsNotFound reports whether err is an API 404, e.g. a missing tab or spreadsheet.
func IsNotFound(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusNotFound
	}
	return false
}
