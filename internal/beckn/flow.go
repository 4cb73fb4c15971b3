package beckn

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/deg-labs/resilience-agent/internal/model"
)

// Flow orchestrates the full network exchange for a batch of mitigation
// actions: search, wait for the catalog, select the best offer, confirm.
type Flow struct {
	Client       *BAPClient
	PollInterval time.Duration
	PollTimeout  time.Duration
}

func NewFlow(client *BAPClient) *Flow {
	return &Flow{
		Client:       client,
		PollInterval: 500 * time.Millisecond,
		PollTimeout:  10 * time.Second,
	}
}

// Execute runs the flow for each action in order and returns one log entry
// per action. A failing action never aborts the batch.
func (f *Flow) Execute(ctx context.Context, actions []model.MitigationAction) []model.DispatchLogEntry {
	entries := make([]model.DispatchLogEntry, 0, len(actions))
	for _, action := range actions {
		entries = append(entries, f.executeOne(ctx, action))
	}
	return entries
}

func (f *Flow) executeOne(ctx context.Context, action model.MitigationAction) model.DispatchLogEntry {
	entry := model.DispatchLogEntry{
		AssetID:     action.AssetID,
		ServiceType: action.ActionType,
		Status:      model.DispatchFailed,
	}

	txnID := uuid.New().String()
	log.Printf("beckn: starting flow %s for %s", txnID, action.ActionType)

	if err := f.Client.Search(ctx, txnID, action.ActionType); err != nil {
		log.Printf("beckn: search failed for %s: %v", txnID, err)
		return entry
	}
	if !f.waitForStatus(ctx, txnID, StatusSearchCompleted) {
		log.Printf("beckn: search timed out for %s", txnID)
		return entry
	}

	tx, _ := f.Client.Store.Get(txnID)
	provider, item, ok := pickOffer(tx.Catalog)
	if !ok {
		// The network answered but nobody offers this service.
		entry.Status = model.DispatchSearched
		return entry
	}

	if err := f.Client.Select(ctx, txnID, item.ID); err != nil {
		log.Printf("beckn: select failed for %s: %v", txnID, err)
		return entry
	}
	if !f.waitForStatus(ctx, txnID, StatusSelectCompleted) {
		log.Printf("beckn: select timed out for %s", txnID)
		return entry
	}

	if err := f.Client.Confirm(ctx, txnID, item.ID); err != nil {
		log.Printf("beckn: confirm failed for %s: %v", txnID, err)
		return entry
	}
	if !f.waitForStatus(ctx, txnID, StatusConfirmCompleted) {
		log.Printf("beckn: confirm timed out for %s", txnID)
		return entry
	}

	entry.Status = model.DispatchConfirmed
	entry.Provider = provider.Descriptor.Name
	return entry
}

// pickOffer takes the first item of the first provider, mirroring the
// simplest possible selection policy.
func pickOffer(catalog *Catalog) (Provider, Item, bool) {
	if catalog == nil {
		return Provider{}, Item{}, false
	}
	for _, p := range catalog.Providers {
		if len(p.Items) > 0 {
			return p, p.Items[0], true
		}
	}
	return Provider{}, Item{}, false
}

func (f *Flow) waitForStatus(ctx context.Context, txnID, target string) bool {
	deadline := time.Now().Add(f.PollTimeout)
	for time.Now().Before(deadline) {
		if tx, ok := f.Client.Store.Get(txnID); ok && tx.Status == target {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(f.PollInterval):
		}
	}
	return false
}
