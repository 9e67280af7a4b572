package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/retry"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// NewGoogle подключает журнал к таблице spreadsheetID через сервисный аккаунт
func NewGoogle(ctx context.Context, credentialsFile, spreadsheetID string, loc *time.Location, policy retry.Policy, logger *zap.Logger) (*Log, error) {
	svc, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return newLog(&googleTable{svc: svc, id: spreadsheetID}, loc, policy, logger), nil
}

type googleTable struct {
	svc *gsheets.Service
	id  string
}

func (g *googleTable) SheetTitles(ctx context.Context) ([]string, error) {
	ss, err := g.svc.Spreadsheets.Get(g.id).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			titles = append(titles, sh.Properties.Title)
		}
	}
	return titles, nil
}

func (g *googleTable) AddSheet(ctx context.Context, title string, rows, cols int64) error {
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{
					Title: title,
					GridProperties: &gsheets.GridProperties{
						RowCount:    rows,
						ColumnCount: cols,
					},
				},
			},
		}},
	}
	_, err := g.svc.Spreadsheets.BatchUpdate(g.id, req).Context(ctx).Do()
	return err
}

func (g *googleTable) ReadRow(ctx context.Context, rng string) ([]string, error) {
	vr, err := g.svc.Spreadsheets.Values.Get(g.id, rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	if len(vr.Values) == 0 {
		return nil, nil
	}
	row := make([]string, 0, len(vr.Values[0]))
	for _, v := range vr.Values[0] {
		row = append(row, fmt.Sprint(v))
	}
	return row, nil
}

func (g *googleTable) Write(ctx context.Context, rng string, rows [][]interface{}) error {
	_, err := g.svc.Spreadsheets.Values.Update(g.id, rng, &gsheets.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	return err
}

func (g *googleTable) Append(ctx context.Context, rng string, row []interface{}) error {
	_, err := g.svc.Spreadsheets.Values.Append(g.id, rng, &gsheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (g *googleTable) Clear(ctx context.Context, rng string) error {
	_, err := g.svc.Spreadsheets.Values.Clear(g.id, rng, &gsheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}
