package loyalty

import (
	"encoding/json"
	"errors"
	"testing"
)

func assertKind(t *testing.T, err error, kind ErrorKind, field string) {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if verr.Kind != kind {
		t.Errorf("expected kind %s, got %s (%v)", kind, verr.Kind, err)
	}
	if field != "" && verr.Field != field {
		t.Errorf("expected field %q, got %q", field, verr.Field)
	}
	if !errors.Is(err, ErrInvalidRequest) {
		t.Error("validation error should match ErrInvalidRequest")
	}
}

func TestParseLogin(t *testing.T) {
	req, err := ParseLogin([]byte(`{"phone":"0612345678","name":"Anna"}`))
	if err != nil {
		t.Fatalf("ParseLogin() error: %v", err)
	}
	if req.Phone != "0612345678" || req.Name != "Anna" {
		t.Errorf("unexpected request: %+v", req)
	}

	req, err = ParseLogin([]byte(`{"phone":"0612345678","name":null}`))
	if err != nil {
		t.Fatalf("ParseLogin() error: %v", err)
	}
	if req.Name != "" {
		t.Errorf("expected empty name, got %q", req.Name)
	}
}

func TestParseLoginErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		kind  ErrorKind
		field string
	}{
		{"empty body", ``, KindMissingField, "phone"},
		{"missing phone", `{"name":"Anna"}`, KindMissingField, "phone"},
		{"empty phone", `{"phone":""}`, KindMissingField, "phone"},
		{"numeric phone", `{"phone":612345678}`, KindInvalidType, "phone"},
		{"numeric name", `{"phone":"06","name":5}`, KindInvalidType, "name"},
		{"array body", `[]`, KindInvalidType, "body"},
		{"broken json", `{"phone":`, KindMalformedJSON, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLogin([]byte(tt.body))
			assertKind(t, err, tt.kind, tt.field)
		})
	}
}

func TestParseSyncPresence(t *testing.T) {
	req, err := ParseSync([]byte(`{"customerXP":{"1":{"xp":100,"totalXP":100}}}`))
	if err != nil {
		t.Fatalf("ParseSync() error: %v", err)
	}
	if req.Customers != nil || req.Orders != nil {
		t.Error("absent collections should be nil")
	}
	if got := req.CustomerXP["1"]; got != (XPRecord{XP: 100, TotalXP: 100}) {
		t.Errorf("unexpected xp record: %+v", got)
	}

	req, err = ParseSync([]byte(`{"customers":[],"orders":[],"customerXP":null}`))
	if err != nil {
		t.Fatalf("ParseSync() error: %v", err)
	}
	if req.Customers == nil || len(req.Customers) != 0 {
		t.Errorf("expected empty non-nil customers, got %#v", req.Customers)
	}
	if req.Orders == nil || len(req.Orders) != 0 {
		t.Errorf("expected empty non-nil orders, got %#v", req.Orders)
	}
	if req.CustomerXP != nil {
		t.Error("null customerXP should be treated as absent")
	}

	req, err = ParseSync(nil)
	if err != nil {
		t.Fatalf("ParseSync(nil) error: %v", err)
	}
	if req.Customers != nil || req.CustomerXP != nil || req.Orders != nil {
		t.Errorf("expected empty request, got %+v", req)
	}
}

func TestParseSyncLooseIDs(t *testing.T) {
	body := `{
		"customers": [{"id": 1700000000000, "name": "Anna", "phone": "06", "tier": "vip"}],
		"orders": [{"customerId": 1700000000000, "total": 12.5}, {"customerId": "42"}]
	}`
	req, err := ParseSync([]byte(body))
	if err != nil {
		t.Fatalf("ParseSync() error: %v", err)
	}
	if req.Customers[0].ID != "1700000000000" {
		t.Errorf("expected numeric id normalised, got %q", req.Customers[0].ID)
	}
	if string(req.Customers[0].Extra["tier"]) != `"vip"` {
		t.Errorf("expected extra field preserved, got %v", req.Customers[0].Extra)
	}
	if req.Orders[0].CustomerID != "1700000000000" || req.Orders[1].CustomerID != "42" {
		t.Errorf("unexpected order customer ids: %q, %q", req.Orders[0].CustomerID, req.Orders[1].CustomerID)
	}
}

func TestParseSyncErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		kind  ErrorKind
		field string
	}{
		{"broken json", `{"customers":[`, KindMalformedJSON, ""},
		{"customers not array", `{"customers":"x"}`, KindInvalidType, "customers"},
		{"customer without id", `{"customers":[{"name":"Anna"}]}`, KindMissingField, "customers[0].id"},
		{"customer name number", `{"customers":[{"id":"1","name":5}]}`, KindInvalidType, ""},
		{"xp not object", `{"customerXP":[1,2]}`, KindInvalidType, "customerXP"},
		{"xp value string", `{"customerXP":{"1":{"xp":"lots"}}}`, KindInvalidType, ""},
		{"order not object", `{"orders":[1]}`, KindInvalidType, ""},
		{"order null", `{"orders":[null]}`, KindInvalidType, "orders"},
		{"order bad customer id", `{"orders":[{"customerId":true}]}`, KindInvalidType, "orders"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSync([]byte(tt.body))
			assertKind(t, err, tt.kind, tt.field)
		})
	}
}

func TestOrderRoundTripKeepsFields(t *testing.T) {
	var o Order
	if err := json.Unmarshal([]byte(`{"customerId":7,"total":19.95,"items":["shirt"]}`), &o); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if o.CustomerID != "7" {
		t.Errorf("expected normalized customer id 7, got %q", o.CustomerID)
	}
	if m["customerId"] != float64(7) || m["total"] != 19.95 {
		t.Errorf("unexpected order JSON: %s", out)
	}
	if items, ok := m["items"].([]any); !ok || len(items) != 1 {
		t.Errorf("expected items preserved, got %v", m["items"])
	}
}

func TestOrderWithoutCustomerIDField(t *testing.T) {
	out, err := json.Marshal(Order{CustomerID: "3"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"customerId":"3"}` {
		t.Errorf("unexpected order JSON: %s", out)
	}
}

func TestCustomerIDKeepsJSONType(t *testing.T) {
	tests := []struct {
		in     string
		wantID ID
		wantJS string
	}{
		{`{"id":5,"name":"Anna","phone":"06"}`, "5", `5`},
		{`{"id":"5","name":"Anna","phone":"06"}`, "5", `"5"`},
		{`{"id":1.0,"name":"Anna","phone":"06","tier":"vip"}`, "1", `1.0`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var c Customer
			if err := json.Unmarshal([]byte(tt.in), &c); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if c.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", c.ID, tt.wantID)
			}
			out, err := json.Marshal(c)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var m map[string]json.RawMessage
			if err := json.Unmarshal(out, &m); err != nil {
				t.Fatalf("unmarshal output: %v", err)
			}
			if string(m["id"]) != tt.wantJS {
				t.Errorf("id written as %s, want %s", m["id"], tt.wantJS)
			}
		})
	}
}

func TestCompareIDs(t *testing.T) {
	tests := []struct {
		a, b ID
		want int
	}{
		{"1", "2", -1},
		{"10", "9", 1},
		{"5", "5", 0},
		{"9", "abc", -1},
		{"abc", "9", 1},
		{"007", "7", 1},
		{"abc", "abd", -1},
	}
	for _, tt := range tests {
		if got := CompareIDs(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareIDs(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIDUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{`"abc"`, "abc"},
		{`42`, "42"},
		{`1e3`, "1000"},
		{`1700000000123`, "1700000000123"},
		{`null`, ""},
	}
	for _, tt := range tests {
		var id ID
		if err := json.Unmarshal([]byte(tt.in), &id); err != nil {
			t.Errorf("Unmarshal(%s) error: %v", tt.in, err)
			continue
		}
		if id != tt.want {
			t.Errorf("Unmarshal(%s) = %q, want %q", tt.in, id, tt.want)
		}
	}

	var id ID
	if err := json.Unmarshal([]byte(`{"x":1}`), &id); err == nil {
		t.Error("expected error for object id")
	}
}
