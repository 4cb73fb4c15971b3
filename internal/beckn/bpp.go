package beckn

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// product is one entry of the mock provider inventory.
type product struct {
	ID    string
	Name  string
	Price string
	Desc  string
}

// defaultInventory maps a mitigation action type to the offers the mock
// network returns for it. Unknown services fall back to a generic entry.
var defaultInventory = map[string][]product{
	"deploy_mobile_generator": {
		{ID: "gen_100kw", Name: "100kW Mobile Generator", Price: "150.0", Desc: "Diesel generator on trailer"},
		{ID: "gen_500kw", Name: "500kW Power Unit", Price: "600.0", Desc: "Industrial grade power unit"},
	},
	"dispatch_battery_discharge": {
		{ID: "vpp_batt_1", Name: "VPP Battery Block 2MWh", Price: "300.0", Desc: "Aggregated residential batteries"},
	},
	"reduce_ev_load": {
		{ID: "ev_curtail", Name: "EV Charging Curtailment", Price: "80.0", Desc: "Managed charging slowdown"},
	},
	"shift_hvac_load": {
		{ID: "hvac_shift", Name: "Commercial HVAC Load Shift", Price: "120.0", Desc: "Pre-cooling and setpoint shift"},
	},
	"fallback": {
		{ID: "generic_service", Name: "General Service", Price: "100.0", Desc: "Standard service request"},
	},
}

// MockBPP simulates a provider platform: every request is acknowledged
// immediately and answered by an asynchronous callback to the BAP after a
// short latency.
type MockBPP struct {
	BppID     string
	BppURI    string
	Latency   time.Duration
	Inventory map[string][]product
	HTTP      *http.Client
}

func NewMockBPP(bppID, bppURI string) *MockBPP {
	return &MockBPP{
		BppID:     bppID,
		BppURI:    bppURI,
		Latency:   time.Second,
		Inventory: defaultInventory,
		HTTP:      &http.Client{},
	}
}

// Register mounts the BPP endpoints on the given router group.
func (b *MockBPP) Register(rg *gin.RouterGroup) {
	rg.POST("/search", b.handleSearch)
	rg.POST("/select", b.handleSelect)
	rg.POST("/confirm", b.handleConfirm)
}

func (b *MockBPP) handleSearch(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	go b.processSearch(req)
	c.JSON(http.StatusOK, NewAck())
}

func (b *MockBPP) handleSelect(c *gin.Context) {
	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	go b.processSelect(req)
	c.JSON(http.StatusOK, NewAck())
}

func (b *MockBPP) handleConfirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	go b.processConfirm(req)
	c.JSON(http.StatusOK, NewAck())
}

func (b *MockBPP) processSearch(req SearchRequest) {
	time.Sleep(b.Latency)

	query := ""
	if req.Message.Intent.Item != nil {
		query = req.Message.Intent.Item.Descriptor.Name
	}

	invKey := "fallback"
	for key := range b.Inventory {
		if key != "fallback" && strings.Contains(query, key) {
			invKey = key
			break
		}
	}

	items := make([]Item, 0, len(b.Inventory[invKey]))
	for _, prod := range b.Inventory[invKey] {
		items = append(items, Item{
			ID:            prod.ID,
			Descriptor:    Descriptor{Name: prod.Name, ShortDesc: prod.Desc},
			Price:         &Price{Currency: "GBP", Value: prod.Price},
			FulfillmentID: "ful_1",
		})
	}

	payload := OnSearchRequest{
		Context: b.callbackContext(req.Context, "on_search"),
		Message: OnSearchMessage{
			Catalog: Catalog{
				Descriptor: Descriptor{Name: "Mock BPP Catalog"},
				Providers: []Provider{
					{
						ID:         "prov_mock_1",
						Descriptor: Descriptor{Name: "Mock Provider Services"},
						Items:      items,
					},
				},
			},
		},
	}
	b.callback(req.Context.BapURI+"/on_search", payload)
}

func (b *MockBPP) processSelect(req SelectRequest) {
	time.Sleep(b.Latency)

	total := 150.0 * float64(len(req.Message.Order.Items))
	quote := &Quote{
		Price: Price{Currency: "GBP", Value: fmt.Sprintf("%.1f", total)},
		Breakup: []QuoteBreakup{
			{Title: "Item Total", Price: Price{Currency: "GBP", Value: fmt.Sprintf("%.1f", total)}},
		},
	}

	payload := OnSelectRequest{
		Context: b.callbackContext(req.Context, "on_select"),
		Message: OnSelectMessage{
			Order: Order{Items: req.Message.Order.Items, Quote: quote},
		},
	}
	b.callback(req.Context.BapURI+"/on_select", payload)
}

func (b *MockBPP) processConfirm(req ConfirmRequest) {
	time.Sleep(b.Latency)

	order := req.Message.Order
	order.ID = "ORD-" + uuid.New().String()[:8]
	order.State = "Created"

	payload := OnConfirmRequest{
		Context: b.callbackContext(req.Context, "on_confirm"),
		Message: OnConfirmMessage{Order: order},
	}
	b.callback(req.Context.BapURI+"/on_confirm", payload)
}

func (b *MockBPP) callbackContext(reqCtx Context, action string) Context {
	ctx := reqCtx
	ctx.Action = action
	ctx.BppID = b.BppID
	ctx.BppURI = b.BppURI
	ctx.Timestamp = time.Now().UTC().Format(time.RFC3339)
	return ctx
}

func (b *MockBPP) callback(target string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("bpp: failed to encode callback: %v", err)
		return
	}
	resp, err := b.HTTP.Post(target, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("bpp: callback to %s failed: %v", target, err)
		return
	}
	resp.Body.Close()
}
