// Package beckn implements the minimal slice of the Beckn protocol the
// dispatch network needs: BAP-side search/select/confirm with asynchronous
// on_* callbacks, plus a mock BPP for local runs.
package beckn

// Context travels with every Beckn message and ties requests to their
// callbacks via transaction_id.
type Context struct {
	Domain        string `json:"domain"`
	Country       string `json:"country"`
	City          string `json:"city"`
	Action        string `json:"action"`
	CoreVersion   string `json:"core_version"`
	BapID         string `json:"bap_id"`
	BapURI        string `json:"bap_uri"`
	BppID         string `json:"bpp_id,omitempty"`
	BppURI        string `json:"bpp_uri,omitempty"`
	TransactionID string `json:"transaction_id"`
	MessageID     string `json:"message_id"`
	Timestamp     string `json:"timestamp"`
	TTL           string `json:"ttl,omitempty"`
}

type Descriptor struct {
	Name      string `json:"name"`
	Code      string `json:"code,omitempty"`
	ShortDesc string `json:"short_desc,omitempty"`
	LongDesc  string `json:"long_desc,omitempty"`
}

type Price struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}

type Item struct {
	ID            string     `json:"id"`
	Descriptor    Descriptor `json:"descriptor"`
	Price         *Price     `json:"price,omitempty"`
	CategoryID    string     `json:"category_id,omitempty"`
	FulfillmentID string     `json:"fulfillment_id,omitempty"`
}

type Provider struct {
	ID         string     `json:"id"`
	Descriptor Descriptor `json:"descriptor"`
	Items      []Item     `json:"items,omitempty"`
}

type Fulfillment struct {
	ID       string `json:"id"`
	Type     string `json:"type,omitempty"`
	Tracking bool   `json:"tracking"`
}

type Catalog struct {
	Descriptor Descriptor `json:"descriptor"`
	Providers  []Provider `json:"providers"`
}

type QuoteBreakup struct {
	Title string `json:"title"`
	Price Price  `json:"price"`
}

type Quote struct {
	Price   Price          `json:"price"`
	Breakup []QuoteBreakup `json:"breakup,omitempty"`
}

type Billing struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}

type Order struct {
	ID          string       `json:"id,omitempty"`
	State       string       `json:"state,omitempty"`
	Items       []Item       `json:"items,omitempty"`
	Billing     *Billing     `json:"billing,omitempty"`
	Fulfillment *Fulfillment `json:"fulfillment,omitempty"`
	Quote       *Quote       `json:"quote,omitempty"`
}

// Intent carries the search query; only the item descriptor name is used by
// the mock BPP.
type Intent struct {
	Item *Item `json:"item,omitempty"`
}

type SearchMessage struct {
	Intent Intent `json:"intent"`
}

type OnSearchMessage struct {
	Catalog Catalog `json:"catalog"`
}

type SelectMessage struct {
	Order Order `json:"order"`
}

type OnSelectMessage struct {
	Order Order `json:"order"`
}

type ConfirmMessage struct {
	Order Order `json:"order"`
}

type OnConfirmMessage struct {
	Order Order `json:"order"`
}

type SearchRequest struct {
	Context Context       `json:"context"`
	Message SearchMessage `json:"message"`
}

type OnSearchRequest struct {
	Context Context         `json:"context"`
	Message OnSearchMessage `json:"message"`
}

type SelectRequest struct {
	Context Context       `json:"context"`
	Message SelectMessage `json:"message"`
}

type OnSelectRequest struct {
	Context Context         `json:"context"`
	Message OnSelectMessage `json:"message"`
}

type ConfirmRequest struct {
	Context Context        `json:"context"`
	Message ConfirmMessage `json:"message"`
}

type OnConfirmRequest struct {
	Context Context          `json:"context"`
	Message OnConfirmMessage `json:"message"`
}

type Ack struct {
	Status string `json:"status"`
}

type AckResponse struct {
	Message Ack `json:"message"`
}

func NewAck() AckResponse {
	return AckResponse{Message: Ack{Status: "ACK"}}
}
