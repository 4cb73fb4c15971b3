package beckn

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// BAPClient is the buyer-side protocol client. It fires search/select/confirm
// requests at a BPP and records callback results in its Store.
type BAPClient struct {
	BapID  string
	BapURI string
	BppURI string
	Store  *Store
	HTTP   *http.Client
}

func NewBAPClient(bapID, bapURI, bppURI string, store *Store) *BAPClient {
	return &BAPClient{
		BapID:  bapID,
		BapURI: bapURI,
		BppURI: bppURI,
		Store:  store,
		HTTP:   &http.Client{},
	}
}

func (c *BAPClient) newContext(action, txnID string) Context {
	return Context{
		Domain:        "energy-grid",
		Country:       "GB",
		City:          "std:020",
		Action:        action,
		CoreVersion:   "0.9.3",
		BapID:         c.BapID,
		BapURI:        c.BapURI,
		TransactionID: txnID,
		MessageID:     uuid.New().String(),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		TTL:           "PT30S",
	}
}

// Search starts a transaction by asking the network for providers of the
// given service.
func (c *BAPClient) Search(ctx context.Context, txnID, query string) error {
	c.Store.SetStatus(txnID, StatusSearchInitiated)

	payload := SearchRequest{
		Context: c.newContext("search", txnID),
		Message: SearchMessage{
			Intent: Intent{
				Item: &Item{Descriptor: Descriptor{Name: query}},
			},
		},
	}
	return c.post(ctx, "/search", payload)
}

func (c *BAPClient) Select(ctx context.Context, txnID, itemID string) error {
	c.Store.SetStatus(txnID, StatusSelectInitiated)

	payload := SelectRequest{
		Context: c.newContext("select", txnID),
		Message: SelectMessage{
			Order: Order{
				Items: []Item{{ID: itemID, Descriptor: Descriptor{Name: "Selected Item"}}},
			},
		},
	}
	return c.post(ctx, "/select", payload)
}

func (c *BAPClient) Confirm(ctx context.Context, txnID, itemID string) error {
	c.Store.SetStatus(txnID, StatusConfirmInitiated)

	payload := ConfirmRequest{
		Context: c.newContext("confirm", txnID),
		Message: ConfirmMessage{
			Order: Order{
				Items:       []Item{{ID: itemID, Descriptor: Descriptor{Name: "Confirmed Item"}}},
				Billing:     &Billing{Name: "DEG Agent", Address: "London"},
				Fulfillment: &Fulfillment{ID: "ful_1", Type: "Delivery"},
			},
		},
	}
	return c.post(ctx, "/confirm", payload)
}

// HandleOnSearch processes the BPP's on_search callback.
func (c *BAPClient) HandleOnSearch(req OnSearchRequest) {
	c.Store.SetCatalog(req.Context.TransactionID, req.Message.Catalog)
}

func (c *BAPClient) HandleOnSelect(req OnSelectRequest) {
	c.Store.SetQuote(req.Context.TransactionID, req.Message.Order)
}

func (c *BAPClient) HandleOnConfirm(req OnConfirmRequest) {
	c.Store.SetOrder(req.Context.TransactionID, req.Message.Order)
}

func (c *BAPClient) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode beckn payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BppURI+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create beckn request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("beckn %s request failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("beckn %s request returned status %d", path, resp.StatusCode)
	}
	return nil
}
