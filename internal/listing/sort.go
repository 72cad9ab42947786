package listing

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"workbee/board-service/internal/model"
	"workbee/board-service/internal/query"
)

// applyClientSort stably reorders a fetched page for the two sort modes the
// server does not support: workhour ascending (missing treated as 0) and
// shop name under Korean collation. Native server sorts pass through
// untouched. The reorder covers the fetched page only, so client-only sorts
// are correct within a single page — an accepted limitation.
func applyClientSort(cards []model.Card, s query.Sort) {
	switch s {
	case query.SortWorkhour:
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].Workhour < cards[j].Workhour
		})
	case query.SortName:
		col := collate.New(language.Korean)
		sort.SliceStable(cards, func(i, j int) bool {
			return col.CompareString(cards[i].Name, cards[j].Name) < 0
		})
	}
}
