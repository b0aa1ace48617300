package dto

import "encoding/json"

type CreateExpenseRequest struct {
	Text string `json:"text" validate:"required"`
	UID  string `json:"uid"`
}

// UpdateExpenseRequest keeps the editable fields loosely typed so the
// normalizer can tell missing fields from invalid ones.
type UpdateExpenseRequest struct {
	UID    string
	Fields map[string]any
}

func (r *UpdateExpenseRequest) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if uid, ok := raw["uid"].(string); ok {
		r.UID = uid
	}
	delete(raw, "uid")
	r.Fields = raw
	return nil
}

type MutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}
