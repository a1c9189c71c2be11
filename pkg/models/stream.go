// Package models pkg/models/stream.go
package models

import "encoding/json"

// Channel names recognized by the rest of the system. The registry itself is
// open-ended; these are the names the engine publishes to.
const (
	ChannelGovernanceMetrics = "governance_metrics"
	ChannelModels            = "models"
	ChannelSimulations       = "simulations"
	ChannelCompliance        = "compliance"
	ChannelAIBill            = "ai_bill"
	ChannelDashboard         = "dashboard"
)

// MessageKind tags an inbound stream message. The set is closed; unknown
// kinds are logged and dropped by the engine.
type MessageKind string

const (
	KindGovernanceMetrics MessageKind = "governance-metrics"
	KindModelStatus       MessageKind = "model-status"
	KindRunProgress       MessageKind = "run-progress"
	KindCompliance        MessageKind = "compliance"
	KindRequirements      MessageKind = "requirements"
)

// StreamMessage is the wire envelope for event-stream frames.
type StreamMessage struct {
	Kind MessageKind     `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Channel maps a message kind to the channel its payload is routed to.
// The second return is false for unknown kinds.
func (k MessageKind) Channel() (string, bool) {
	switch k {
	case KindGovernanceMetrics:
		return ChannelGovernanceMetrics, true
	case KindModelStatus:
		return ChannelModels, true
	case KindRunProgress:
		return ChannelSimulations, true
	case KindCompliance:
		return ChannelCompliance, true
	case KindRequirements:
		return ChannelAIBill, true
	default:
		return "", false
	}
}

// ConnectionState is the engine's connection lifecycle state.
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
	StatePolling
	StateFailed
)

func (s ConnectionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StatePolling:
		return "polling"
	case StateFailed:
		return "failed"
	case StateDisconnected:
		return "disconnected"
	default:
		return "disconnected"
	}
}

// Transport values reported by ConnectionStatus.
const (
	TransportStream       = "stream"
	TransportPolling      = "polling"
	TransportDisconnected = "disconnected"
)

// ConnectionStatus is the externally visible connection summary.
type ConnectionStatus struct {
	IsConnected bool   `json:"is_connected"`
	Transport   string `json:"transport"`
}
