package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"gatekeeper-http-service/config"
)

// GateEvent is the payload published when the gate grants a passage.
type GateEvent struct {
	SubjectType string    `json:"subject_type"` // VISITOR, RESIDENT, HELP
	SubjectName string    `json:"subject_name"`
	AccessType  string    `json:"access_type"` // ENTRY or EXIT
	Gate        string    `json:"gate"`
	Timestamp   time.Time `json:"timestamp"`
}

// InterfaceGateEventService publishes gate passage events to the
// society broker. Publishing is best-effort: a down broker must never
// block the barrier.
type InterfaceGateEventService interface {
	PublishGateEvent(societyID uint, event GateEvent)
	IsConnected() bool
	Disconnect()
}

// GateEventService publishes gate events over MQTT
type GateEventService struct {
	Config *config.Config
	client mqtt.Client
	mutex  sync.RWMutex
}

// NewGateEventService creates a new gate event service. An empty
// broker URL disables publishing entirely; the service then degrades
// to a no-op so single-box deployments need no broker.
func NewGateEventService(cfg *config.Config) InterfaceGateEventService {
	service := &GateEventService{
		Config: cfg,
	}

	if cfg.MQTTBrokerURL == "" {
		config.Info("MQTT broker URL not configured, gate event publishing disabled")
		return service
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBrokerURL).
		SetClientID(cfg.MQTTClientID).
		SetUsername(cfg.MQTTUsername).
		SetPassword(cfg.MQTTPassword).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			config.Warning("MQTT connection lost: %v", err)
		}).
		SetOnConnectHandler(func(_ mqtt.Client) {
			config.Info("MQTT connected to %s", cfg.MQTTBrokerURL)
		})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.WaitTimeout(10*time.Second) && token.Error() != nil {
		config.Warning("MQTT initial connect failed: %v", token.Error())
	}

	service.mutex.Lock()
	service.client = client
	service.mutex.Unlock()

	return service
}

// IsConnected reports whether the broker connection is up
func (s *GateEventService) IsConnected() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.client != nil && s.client.IsConnected()
}

// PublishGateEvent publishes a gate event to the per-society topic.
// Runs in its own goroutine, off the request's critical path.
func (s *GateEventService) PublishGateEvent(societyID uint, event GateEvent) {
	s.mutex.RLock()
	client := s.client
	s.mutex.RUnlock()

	if client == nil || !client.IsConnected() {
		return
	}

	go func() {
		payload, err := json.Marshal(event)
		if err != nil {
			config.Error("failed to marshal gate event: %v", err)
			return
		}

		topic := fmt.Sprintf("society/%d/gate/events", societyID)
		token := client.Publish(topic, 1, false, payload)
		if token.WaitTimeout(5*time.Second) && token.Error() != nil {
			config.Warning("failed to publish gate event to %s: %v", topic, token.Error())
		}
	}()
}

// Disconnect closes the broker connection
func (s *GateEventService) Disconnect() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.client != nil && s.client.IsConnected() {
		s.client.Disconnect(250)
	}
}
