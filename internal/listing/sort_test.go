package listing

import (
	"testing"

	"workbee/board-service/internal/model"
	"workbee/board-service/internal/query"
)

// ── Client-side secondary sort ─────────────────────────────────────────────

func TestApplyClientSort_Workhour(t *testing.T) {
	cards := []model.Card{
		{NoticeID: "a", Workhour: 8},
		{NoticeID: "b"}, // missing workhour sorts as 0
		{NoticeID: "c", Workhour: 4},
	}
	applyClientSort(cards, query.SortWorkhour)

	want := []string{"b", "c", "a"}
	for i, id := range want {
		if cards[i].NoticeID != id {
			t.Fatalf("order = %v, want %v", ids(cards), want)
		}
	}
}

func TestApplyClientSort_KoreanNames(t *testing.T) {
	cards := []model.Card{
		{NoticeID: "a", Name: "하늘 식당"},
		{NoticeID: "b", Name: "가나 카페"},
		{NoticeID: "c", Name: "마포 베이커리"},
	}
	applyClientSort(cards, query.SortName)

	want := []string{"b", "c", "a"}
	for i, id := range want {
		if cards[i].NoticeID != id {
			t.Fatalf("order = %v, want %v", ids(cards), want)
		}
	}
}

func TestApplyClientSort_ServerSortsUntouched(t *testing.T) {
	cards := []model.Card{{NoticeID: "z", Workhour: 9}, {NoticeID: "a", Workhour: 1}}
	applyClientSort(cards, query.SortPay)
	if cards[0].NoticeID != "z" {
		t.Error("native server sort must not be reordered client-side")
	}
}

func ids(cards []model.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.NoticeID
	}
	return out
}
