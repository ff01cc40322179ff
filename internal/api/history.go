package api

import (
	"context"
	"net/http"

	"bookhub/pkg/models"
)

// FetchHistoryRecords returns one page of the user's completed loans.
func (c *Client) FetchHistoryRecords(ctx context.Context, page, perPage int) (models.Page[models.HistoryRecord], error) {
	var records models.Page[models.HistoryRecord]
	err := c.do(ctx, http.MethodGet, historyRecordsPath, pageQuery("records-per-page", page, perPage), true, nil, &records)
	return records, err
}
