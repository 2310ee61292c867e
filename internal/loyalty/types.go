package loyalty

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Customer is a loyalty-program member. Fields the portal does not know
// about (sent by the admin tool) are kept in Extra and written back out.
type Customer struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`

	Extra map[string]json.RawMessage `json:"-"`

	// rawID is the id exactly as received when it was not a JSON string,
	// so a numeric id is written back as a number.
	rawID json.RawMessage
}

var customerFields = []string{"id", "name", "phone", "email", "createdAt"}

type plainCustomer Customer

// UnmarshalJSON decodes the known fields and keeps the rest in Extra.
func (c *Customer) UnmarshalJSON(data []byte) error {
	var p plainCustomer
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.rawID = nonStringToken(raw["id"])
	for _, k := range customerFields {
		delete(raw, k)
	}
	if len(raw) > 0 {
		p.Extra = raw
	}
	*c = Customer(p)
	return nil
}

// MarshalJSON writes the known fields merged with Extra.
func (c Customer) MarshalJSON() ([]byte, error) {
	if len(c.Extra) == 0 && c.rawID == nil {
		return json.Marshal(plainCustomer(c))
	}
	out := make(map[string]any, len(c.Extra)+len(customerFields))
	for k, v := range c.Extra {
		out[k] = v
	}
	out["id"] = c.ID
	if c.rawID != nil {
		out["id"] = c.rawID
	}
	out["name"] = c.Name
	out["phone"] = c.Phone
	out["email"] = c.Email
	out["createdAt"] = c.CreatedAt
	return json.Marshal(out)
}

// XPRecord holds a customer's experience points. XP selects the tier,
// TotalXP ranks the customer on the leaderboard.
type XPRecord struct {
	XP      int64 `json:"xp"`
	TotalXP int64 `json:"totalXP"`
}

// Level resolves the tier name for the record's XP.
func (r XPRecord) Level() string {
	return LevelName(r.XP)
}

// Order is an order synced from the shop. Only CustomerID is interpreted;
// Fields holds every member as received, customerId included.
type Order struct {
	CustomerID ID
	Fields     map[string]json.RawMessage
}

// UnmarshalJSON decodes an order object.
func (o *Order) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("order must be an object")
	}
	var id ID
	if v, ok := raw["customerId"]; ok {
		if err := json.Unmarshal(v, &id); err != nil {
			return fmt.Errorf("customerId: %w", err)
		}
	}
	o.CustomerID = id
	o.Fields = raw
	return nil
}

// MarshalJSON writes the order's fields unchanged. An order built in code
// without a customerId field gets one from CustomerID.
func (o Order) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(o.Fields)+1)
	for k, v := range o.Fields {
		out[k] = v
	}
	if _, ok := o.Fields["customerId"]; !ok && o.CustomerID != "" {
		out["customerId"] = o.CustomerID
	}
	return json.Marshal(out)
}

// LeaderboardEntry is one ranked row. XP carries the customer's TotalXP.
type LeaderboardEntry struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	XP    int64  `json:"xp"`
	Level string `json:"level"`
}

// CustomerDetail is the customer portal's view of a single customer.
type CustomerDetail struct {
	Customer    Customer           `json:"customer"`
	XP          XPRecord           `json:"xp"`
	Orders      []Order            `json:"orders"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// nonStringToken returns a copy of raw when it holds a JSON value other
// than a string or null, and nil otherwise.
func nonStringToken(raw json.RawMessage) json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	return bytes.Clone(raw)
}
