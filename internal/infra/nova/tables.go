package nova

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Area is one seating area returned by the table-status endpoint.
type Area struct {
	Name   string        `json:"name"`
	Tables []TableStatus `json:"tables"`
}

type TableStatus struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Occupied bool   `json:"occupied"`
}

type tableStatusResponse struct {
	Areas []Area `json:"areas"`
}

// FetchTableStatus returns the live occupancy view for the merchant.
func (c *Client) FetchTableStatus(ctx context.Context, merchantRef string) ([]Area, error) {
	if merchantRef == "" {
		return nil, ErrMissingExternalRef
	}

	var resp tableStatusResponse
	path := "/table-status?merchantRef=" + url.QueryEscape(merchantRef)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Areas, nil
}

type BookTableParams struct {
	CustomerID string
	Date       time.Time
	PartySize  int
}

type bookTableRequest struct {
	CustomerID string `json:"customerId"`
	Date       string `json:"date"`
	PartySize  int    `json:"partySize"`
}

// BookTable books a table for a customer. A TableAlreadyOccupied rejection
// surfaces as ErrTableAlreadyOccupied so callers can refresh availability
// instead of retrying blindly.
func (c *Client) BookTable(ctx context.Context, tableID string, p BookTableParams) error {
	req := bookTableRequest{
		CustomerID: p.CustomerID,
		Date:       p.Date.UTC().Format(time.RFC3339),
		PartySize:  p.PartySize,
	}
	return c.doJSON(ctx, http.MethodPost, "/table/"+url.PathEscape(tableID)+"/book-table", req, nil)
}
