package messaging

import (
	"encoding/json"
	"fmt"

	"mover-service/internal/types"
)

// IdentityRequest is pushed onto the identity request list.
type IdentityRequest struct {
	ReplyTo string `json:"reply_to"`
}

// IdentityResponse is pushed by the identity service onto the reply key.
type IdentityResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	types.Identity
}

func EncodeCommand(c types.Command) ([]byte, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode command: %w", err)
	}
	return b, nil
}

func DecodeCommand(data []byte) (types.Command, error) {
	var c types.Command
	if err := json.Unmarshal(data, &c); err != nil {
		return types.Command{}, fmt.Errorf("failed to decode command: %w", err)
	}
	return c, nil
}

func DecodeTelemetry(data []byte) (types.Telemetry, error) {
	var t types.Telemetry
	if err := json.Unmarshal(data, &t); err != nil {
		return types.Telemetry{}, fmt.Errorf("failed to decode telemetry: %w", err)
	}
	return t, nil
}

func EncodeIdentityRequest(req IdentityRequest) ([]byte, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode identity request: %w", err)
	}
	return b, nil
}

func DecodeIdentityResponse(data []byte) (IdentityResponse, error) {
	var resp IdentityResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return IdentityResponse{}, fmt.Errorf("failed to decode identity response: %w", err)
	}
	return resp, nil
}
