package client

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"boothadmin/internal/domain/collection"
	"boothadmin/internal/domain/record"
)

// Summary - сводка для главной страницы.
type Summary struct {
	Counts         map[record.Kind]int `json:"counts"`
	OutOfStock     []record.Record     `json:"out_of_stock"`
	OpenLogs       []record.Record     `json:"open_logs"`
	UpcomingEvents []record.Record     `json:"upcoming_events"`
}

// LoadDashboard загружает все коллекции параллельно. Ошибка любой
// загрузки отменяет остальные.
func LoadDashboard(ctx context.Context, remote collection.Remote, now time.Time) (Summary, error) {
	kinds := record.Kinds()
	results := make([][]record.Record, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			body, err := remote.List(gctx, kind)
			if err != nil {
				return fmt.Errorf("load %s: %w", kind, err)
			}
			records, err := record.Normalize(kind.Schema(), body)
			if err != nil {
				return fmt.Errorf("load %s: %w", kind, err)
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	byKind := make(map[record.Kind][]record.Record, len(kinds))
	sum := Summary{Counts: make(map[record.Kind]int, len(kinds))}
	for i, kind := range kinds {
		byKind[kind] = results[i]
		sum.Counts[kind] = len(results[i])
	}

	for _, tool := range byKind[record.KindTools] {
		if tool.Number("stock") <= 0 {
			sum.OutOfStock = append(sum.OutOfStock, tool)
		}
	}

	for _, entry := range byKind[record.KindLogs] {
		if !IsReturned(entry) {
			sum.OpenLogs = append(sum.OpenLogs, entry)
		}
	}

	today := now.Format(record.DateLayout)
	for _, ev := range byKind[record.KindEvents] {
		if d := ev.String("date"); d != "" && d >= today {
			sum.UpcomingEvents = append(sum.UpcomingEvents, ev)
		}
	}
	slices.SortStableFunc(sum.UpcomingEvents, func(a, b record.Record) int {
		return strings.Compare(a.String("date"), b.String("date"))
	})

	return sum, nil
}

// IsReturned сообщает, закрыта ли запись журнала выдачи.
func IsReturned(entry record.Record) bool {
	switch strings.ToLower(entry.String("status")) {
	case "returned", "dikembalikan":
		return true
	}
	return false
}

// ReturnValues - поля, которые закрывают запись журнала выдачи.
func ReturnValues(now time.Time) map[string]any {
	return map[string]any{
		"status":      "returned",
		"return_date": now.Format(record.DateLayout),
	}
}
