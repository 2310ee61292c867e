package loyalty

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// LoginRequest is the validated body of a customer login.
type LoginRequest struct {
	Phone string
	// Name is empty when the caller did not supply one; only then is an
	// unknown phone number rejected instead of registered.
	Name string
}

// ParseLogin validates a login body of the form {"phone": "...", "name": "..."}.
func ParseLogin(body []byte) (LoginRequest, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return LoginRequest{}, err
	}
	phone, ok, err := stringField(fields, "phone")
	if err != nil {
		return LoginRequest{}, err
	}
	if !ok || phone == "" {
		return LoginRequest{}, missingField("phone")
	}
	name, _, err := stringField(fields, "name")
	if err != nil {
		return LoginRequest{}, err
	}
	return LoginRequest{Phone: phone, Name: name}, nil
}

// SyncRequest is the validated body of an admin sync. A nil collection was
// absent from the body and must be left untouched; a non-nil one (even
// empty) replaces the stored collection wholesale.
type SyncRequest struct {
	Customers  []Customer
	CustomerXP map[ID]XPRecord
	Orders     []Order
}

// ParseSync validates a sync body. Every customer must carry an id.
func ParseSync(body []byte) (SyncRequest, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return SyncRequest{}, err
	}

	var req SyncRequest
	if raw, ok := present(fields, "customers"); ok {
		if err := decodeField(raw, "customers", &req.Customers); err != nil {
			return SyncRequest{}, err
		}
		if req.Customers == nil {
			req.Customers = []Customer{}
		}
		for i, c := range req.Customers {
			if c.ID == "" {
				return SyncRequest{}, missingField(fmt.Sprintf("customers[%d].id", i))
			}
		}
	}
	if raw, ok := present(fields, "customerXP"); ok {
		if err := decodeField(raw, "customerXP", &req.CustomerXP); err != nil {
			return SyncRequest{}, err
		}
		if req.CustomerXP == nil {
			req.CustomerXP = map[ID]XPRecord{}
		}
	}
	if raw, ok := present(fields, "orders"); ok {
		if err := decodeField(raw, "orders", &req.Orders); err != nil {
			return SyncRequest{}, err
		}
		if req.Orders == nil {
			req.Orders = []Order{}
		}
	}
	return req, nil
}

// decodeObject parses body as a JSON object. An empty body or null is
// treated as an empty object.
func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return map[string]json.RawMessage{}, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, invalidType("body", "expected a JSON object, got "+typeErr.Value)
		}
		return nil, &ValidationError{Kind: KindMalformedJSON, Detail: err.Error()}
	}
	if fields == nil {
		return map[string]json.RawMessage{}, nil
	}
	return fields, nil
}

func present(fields map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	raw, ok := fields[name]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}

func stringField(fields map[string]json.RawMessage, name string) (string, bool, error) {
	raw, ok := present(fields, name)
	if !ok {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false, invalidType(name, "expected a string")
	}
	return s, true, nil
}

func decodeField(raw json.RawMessage, name string, v any) error {
	err := json.Unmarshal(raw, v)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := name
		if typeErr.Field != "" {
			field = name + "." + typeErr.Field
		}
		return invalidType(field, "unexpected "+typeErr.Value)
	}
	return invalidType(name, err.Error())
}
