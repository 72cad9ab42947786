package boardapi

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"workbee/board-service/internal/model"
)

// NoticesResponse mirrors the listing endpoint's top-level JSON. Count and
// its legacy spellings are pointers because servers have shipped several
// shapes over time; the listing controller picks one via its extraction
// strategy chain.
type NoticesResponse struct {
	Offset     *int                   `json:"offset"`
	Limit      *int                   `json:"limit"`
	Count      *int                   `json:"count"`
	TotalCount *int                   `json:"totalCount"`
	Total      *int                   `json:"total"`
	TotalPage  *int                   `json:"totalPage"`
	Items      []NoticeEnvelope       `json:"items"`
	Links      []model.NavigationLink `json:"links"`
}

// NoticeEnvelope wraps each listing item; the board API nests payloads
// under "item".
type NoticeEnvelope struct {
	Item NoticeItem `json:"item"`
}

// NoticeItem is a raw notice as returned by the listing and detail
// endpoints, with its shop nested one level down.
type NoticeItem struct {
	ID          string       `json:"id"`
	HourlyPay   int          `json:"hourlyPay"`
	StartsAt    time.Time    `json:"startsAt"`
	Workhour    int          `json:"workhour"`
	Description string       `json:"description"`
	Closed      bool         `json:"closed"`
	Shop        ShopEnvelope `json:"shop"`
}

// ShopEnvelope wraps the nested shop payload.
type ShopEnvelope struct {
	Item ShopItem `json:"item"`
}

// ShopItem is the shop projection nested in a notice.
type ShopItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Address1 string `json:"address1"`
	ImageURL string `json:"imageUrl"`
}

// ListNotices fetches one page of the listing for the given encoded query.
func (c *Client) ListNotices(ctx context.Context, rawQuery string) (*NoticesResponse, error) {
	path := "/notices"
	if rawQuery != "" {
		path += "?" + rawQuery
	}

	var resp NoticesResponse
	if err := c.get(ctx, path, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetNotice fetches a single notice with its nested shop and shape-checks
// it: entries missing an id, shop id or start time are rejected, so callers
// can treat them as absent.
func (c *Client) GetNotice(ctx context.Context, shopID, noticeID string) (*NoticeItem, error) {
	path := fmt.Sprintf("/shops/%s/notices/%s",
		url.PathEscape(shopID), url.PathEscape(noticeID))

	var resp NoticeEnvelope
	if err := c.get(ctx, path, "", &resp); err != nil {
		return nil, err
	}
	if err := validateNotice(&resp.Item); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

// validateNotice rejects responses whose required fields are missing or
// zero after decoding (wrong-typed JSON fails the decode itself).
func validateNotice(n *NoticeItem) error {
	switch {
	case n.ID == "":
		return fmt.Errorf("notice response missing id")
	case n.Shop.Item.ID == "":
		return fmt.Errorf("notice response missing shop id")
	case n.StartsAt.IsZero():
		return fmt.Errorf("notice response missing startsAt")
	}
	return nil
}
