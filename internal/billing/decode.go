package billing

import (
	"bytes"
	"encoding/json"
)

// Keys is a list of waste type keys decoded from loosely typed JSON.
// Entries that are not strings (null, numbers, objects) decode to "", which
// ComputeSpecialPickupFee ignores.
type Keys []string

func (k *Keys) UnmarshalJSON(data []byte) error {
	*k = Keys{}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	for _, item := range raw {
		var key string
		if err := json.Unmarshal(item, &key); err != nil {
			key = ""
		}
		*k = append(*k, key)
	}
	return nil
}

// Services is a list of add-ons where every entry is either a bare service
// name or an object with an optional fee override.
type Services []AdditionalService

func (s *Services) UnmarshalJSON(data []byte) error {
	*s = Services{}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	for _, item := range raw {
		*s = append(*s, decodeService(item))
	}
	return nil
}

func decodeService(data json.RawMessage) AdditionalService {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		return AdditionalService{Name: name}
	}

	var obj struct {
		Name json.RawMessage `json:"name"`
		Fee  json.RawMessage `json:"fee"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return AdditionalService{}
	}

	var svc AdditionalService
	if isPresent(obj.Name) {
		_ = json.Unmarshal(obj.Name, &svc.Name)
	}
	if isPresent(obj.Fee) {
		var fee float64
		if err := json.Unmarshal(obj.Fee, &fee); err == nil {
			svc.Fee = &fee
		}
	}
	return svc
}

func isPresent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
