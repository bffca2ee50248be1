// Package google reads the purchasing spreadsheet directly through the
// Google Sheets API, bypassing the n8n webhook.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"compras/internal/ingest"
	"compras/internal/log"
	ports "compras/internal/sheets"
)

// Client fetches every tab of the spreadsheet in one snapshot.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	logger        *log.Logger
}

var _ ports.SnapshotSource = (*Client)(nil)

// sheetTabs maps the logical table names to the spreadsheet tab titles.
var sheetTabs = map[string]string{
	ingest.TableHistory:      "Base de datos",
	ingest.TablePriceHistory: "Histórico de Precios",
	ingest.TableCostly:       "Producto más costoso",
	ingest.TableStoreSpend:   "Gasto Por Tienda",
	ingest.TableProductPrice: "Precio x Producto",
	ingest.TableDailyLog:     "Registro Diario",
}

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Auth: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context, logger *log.Logger) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		logger:        logger.WithComponent(log.ComponentSheets),
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// FetchSnapshot loads every tab concurrently. A tab that fails to load
// becomes an empty table rather than failing the whole snapshot.
func (c *Client) FetchSnapshot(ctx context.Context) (ingest.Snapshot, error) {
	if c.svc == nil {
		return ingest.Snapshot{}, errors.New("sheets service not initialized")
	}

	var mu sync.Mutex
	tables := make(map[string][][]string, len(sheetTabs))

	g, gctx := errgroup.WithContext(ctx)
	for logical, tab := range sheetTabs {
		g.Go(func() error {
			rng := fmt.Sprintf("%s!A1:Z", tab)
			resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(gctx).Do()
			if err != nil {
				c.logger.Warn("sheet tab unavailable", log.FieldTable, tab, log.FieldError, err.Error())
				mu.Lock()
				tables[logical] = nil
				mu.Unlock()
				return nil
			}
			mu.Lock()
			tables[logical] = ingest.ValuesToStrings(resp.Values)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ingest.Snapshot{}, err
	}

	return ingest.Snapshot{
		Tables:    tables,
		FetchedAt: time.Now(),
		Source:    "sheets",
	}, nil
}
