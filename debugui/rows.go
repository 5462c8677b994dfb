package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/plus3/arscene/scene"
)

// RecordRow is one line of the record browser.
type RecordRow struct {
	ID     scene.RecordID
	Handle scene.Handle
	Class  scene.Class
	Speed  float64
	TTL    float64
}

// Record browser sort columns.
const (
	SortByID = iota
	SortByClass
	SortBySpeed
	SortByTTL
)

// CollectRows snapshots every record in the registry.
func CollectRows(registry *scene.Registry) []RecordRow {
	rows := make([]RecordRow, 0, registry.Len())
	for rec := range registry.All() {
		rows = append(rows, RecordRow{
			ID:     rec.ID,
			Handle: rec.Handle,
			Class:  rec.Class,
			Speed:  rec.Speed(),
			TTL:    rec.TTL,
		})
	}
	return rows
}

// SortRows orders rows in place by column.
func SortRows(rows []RecordRow, column int, ascending bool) {
	slices.SortStableFunc(rows, func(a, b RecordRow) int {
		var c int
		switch column {
		case SortByClass:
			c = strings.Compare(a.Class.String(), b.Class.String())
		case SortBySpeed:
			c = cmp.Compare(a.Speed, b.Speed)
		case SortByTTL:
			c = cmp.Compare(a.TTL, b.TTL)
		default:
			c = cmp.Compare(a.ID, b.ID)
		}
		if !ascending {
			return -c
		}
		return c
	})
}

// FilterRows keeps rows whose serial, handle or class contains text,
// case-insensitively.
func FilterRows(rows []RecordRow, text string) []RecordRow {
	if text == "" {
		return rows
	}
	needle := strings.ToLower(text)

	filtered := make([]RecordRow, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(fmt.Sprintf("%d", row.ID.Serial()), needle) ||
			strings.Contains(fmt.Sprintf("%d", row.Handle), needle) ||
			strings.Contains(row.Class.String(), needle) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// FormatTTL renders Forever as a symbol.
func FormatTTL(ttl float64) string {
	if ttl >= scene.Forever {
		return "inf"
	}
	return fmt.Sprintf("%.2f", ttl)
}
