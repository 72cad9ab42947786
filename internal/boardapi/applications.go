package boardapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ApplicationRecord is one entry of a user's application list.
type ApplicationRecord struct {
	ID       string
	Status   string // "pending", "accepted", "rejected", "canceled"
	ShopID   string
	NoticeID string
}

// applicationEnvelope mirrors the nested application payload.
type applicationEnvelope struct {
	Item struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Notice struct {
			Item struct {
				ID string `json:"id"`
			} `json:"item"`
		} `json:"notice"`
		Shop struct {
			Item struct {
				ID string `json:"id"`
			} `json:"item"`
		} `json:"shop"`
	} `json:"item"`
}

// CreateApplication submits an application for a notice on behalf of the
// bearer of token. The response must contain a non-empty application id,
// otherwise the submit is treated as failed.
func (c *Client) CreateApplication(ctx context.Context, shopID, noticeID, token string) (string, error) {
	path := fmt.Sprintf("/shops/%s/notices/%s/applications",
		url.PathEscape(shopID), url.PathEscape(noticeID))

	var resp applicationEnvelope
	if err := c.send(ctx, http.MethodPost, path, token, struct{}{}, &resp); err != nil {
		return "", err
	}
	if resp.Item.ID == "" {
		return "", fmt.Errorf("application response missing id")
	}
	return resp.Item.ID, nil
}

// CancelApplication issues the status update that cancels an application.
func (c *Client) CancelApplication(ctx context.Context, shopID, noticeID, applicationID, token string) error {
	path := fmt.Sprintf("/shops/%s/notices/%s/applications/%s",
		url.PathEscape(shopID), url.PathEscape(noticeID), url.PathEscape(applicationID))

	body := map[string]string{"status": "canceled"}
	return c.send(ctx, http.MethodPut, path, token, body, nil)
}

// ListUserApplications fetches the caller's applications. Used to resolve a
// cancelable application id when the local intent cache has no entry.
func (c *Client) ListUserApplications(ctx context.Context, userID, token string) ([]ApplicationRecord, error) {
	path := fmt.Sprintf("/users/%s/applications", url.PathEscape(userID))

	var resp struct {
		Items []applicationEnvelope `json:"items"`
	}
	if err := c.get(ctx, path, token, &resp); err != nil {
		return nil, err
	}

	records := make([]ApplicationRecord, 0, len(resp.Items))
	for _, env := range resp.Items {
		if env.Item.ID == "" {
			continue
		}
		records = append(records, ApplicationRecord{
			ID:       env.Item.ID,
			Status:   env.Item.Status,
			ShopID:   env.Item.Shop.Item.ID,
			NoticeID: env.Item.Notice.Item.ID,
		})
	}
	return records, nil
}
