package connector

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	mochi "github.com/mochi-mqtt/server/v2"
	"github.com/mochi-mqtt/server/v2/hooks/auth"
	"github.com/mochi-mqtt/server/v2/listeners"
	"github.com/mochi-mqtt/server/v2/packets"

	"github.com/plugboard/plugboard/pkg/content"
	"github.com/plugboard/plugboard/pkg/helper"
	"github.com/plugboard/plugboard/pkg/logging"
	"github.com/plugboard/plugboard/pkg/message"
	"github.com/plugboard/plugboard/pkg/protocol"
)

const mqttOpTimeout = 5 * time.Second

// MQTTClient publishes request entities to an MQTT broker. The URL names
// the broker and the topic: mqtt://host:port/some/topic. PUT and POST
// publish; other methods are rejected.
type MQTTClient struct {
	owner *Client
	log   *slog.Logger
}

// NewMQTTClient creates an MQTT client helper.
func NewMQTTClient(owner *Client) *MQTTClient {
	h := &MQTTClient{owner: owner, log: logging.Nop()}
	if owner != nil {
		h.log = owner.Logger()
	}
	return h
}

// Descriptor implements helper.Helper.
func (h *MQTTClient) Descriptor() helper.Descriptor {
	return helper.Descriptor{
		Kind:      helper.KindClientConnector,
		Name:      "mqtt-client",
		Protocols: protocol.NewSet(protocol.MQTT, protocol.MQTTS),
	}
}

// Bind implements ClientHelper.
func (h *MQTTClient) Bind(c *Client) (ClientHelper, error) { return NewMQTTClient(c), nil }

// Start implements ClientHelper.
func (h *MQTTClient) Start(ctx context.Context) error { return nil }

// Stop implements ClientHelper.
func (h *MQTTClient) Stop(ctx context.Context, timeout time.Duration) error { return nil }

// Handle publishes the request entity to the topic named by the URL
// path. A successful publish yields 204.
func (h *MQTTClient) Handle(ctx context.Context, req *message.Request) *message.Response {
	if req.Method != message.PUT && req.Method != message.POST {
		return message.NewResponse(message.StatusMethodNotAllowed)
	}
	u, err := url.Parse(req.URL)
	if err != nil || u.Host == "" {
		return message.NewResponse(message.StatusBadRequest)
	}
	topic := strings.TrimPrefix(u.Path, "/")
	if topic == "" {
		return message.NewResponse(message.StatusBadRequest)
	}

	var payload []byte
	if req.Entity != nil && req.Entity.Available() {
		stream, err := req.Entity.Stream()
		if err != nil {
			return message.NewResponse(message.StatusInternalServerError)
		}
		payload, err = io.ReadAll(stream)
		_ = stream.Close()
		if err != nil {
			return message.NewResponse(message.StatusInternalServerError)
		}
	}

	scheme := "tcp"
	if u.Scheme == string(protocol.MQTTS) {
		scheme = "ssl"
	}
	opts := pahomqtt.NewClientOptions().
		AddBroker(scheme + "://" + u.Host).
		SetConnectTimeout(h.timeout())
	if h.owner != nil && h.owner.ID != "" {
		opts.SetClientID(h.owner.ID)
	}

	client := pahomqtt.NewClient(opts)
	defer client.Disconnect(250)
	if token := client.Connect(); !token.WaitTimeout(h.timeout()) || token.Error() != nil {
		h.log.Warn("mqtt connect failed", "broker", u.Host, "error", token.Error())
		return message.NewResponse(message.StatusBadGateway)
	}
	if token := client.Publish(topic, 1, false, payload); !token.WaitTimeout(h.timeout()) || token.Error() != nil {
		h.log.Warn("mqtt publish failed", "topic", topic, "error", token.Error())
		return message.NewResponse(message.StatusBadGateway)
	}
	return message.NewResponse(message.StatusNoContent)
}

func (h *MQTTClient) timeout() time.Duration {
	if h.owner != nil && h.owner.Timeout > 0 {
		return h.owner.Timeout
	}
	return mqttOpTimeout
}

// MQTTServer runs an embedded MQTT broker on the owner's address. Every
// inbound publish is forwarded to the owner's handler as a PUT request
// for mqtt://<address>/<topic>.
type MQTTServer struct {
	owner *Server
	log   *slog.Logger

	mu      sync.Mutex
	broker  *mochi.Server
	running bool
}

// NewMQTTServer creates an MQTT server helper.
func NewMQTTServer(owner *Server) *MQTTServer {
	h := &MQTTServer{owner: owner, log: logging.Nop()}
	if owner != nil {
		h.log = owner.Logger()
	}
	return h
}

// Descriptor implements helper.Helper.
func (h *MQTTServer) Descriptor() helper.Descriptor {
	return helper.Descriptor{
		Kind:      helper.KindServerConnector,
		Name:      "mqtt-server",
		Protocols: protocol.NewSet(protocol.MQTT),
	}
}

// Bind implements ServerHelper.
func (h *MQTTServer) Bind(s *Server) (ServerHelper, error) { return NewMQTTServer(s), nil }

// Start launches the embedded broker.
func (h *MQTTServer) Start(ctx context.Context) error {
	if h.owner == nil {
		return helper.ErrNotBound
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		return errors.New("mqtt server is already running")
	}

	broker := mochi.New(&mochi.Options{InlineClient: true})
	if err := broker.AddHook(new(auth.AllowHook), nil); err != nil {
		return err
	}
	if err := broker.AddHook(&forwardHook{server: h.owner, log: h.log}, nil); err != nil {
		return err
	}

	tcp := listeners.NewTCP(listeners.Config{ID: "mqtt-" + h.owner.ID, Address: h.owner.Address})
	if err := broker.AddListener(tcp); err != nil {
		return err
	}

	h.broker = broker
	h.running = true
	go func() {
		if err := broker.Serve(); err != nil {
			h.log.Error("mqtt broker error", "address", h.owner.Address, "error", err)
		}
	}()
	return nil
}

// Stop closes the broker and all its client connections.
func (h *MQTTServer) Stop(ctx context.Context, timeout time.Duration) error {
	h.mu.Lock()
	broker := h.broker
	h.broker = nil
	h.running = false
	h.mu.Unlock()

	if broker == nil {
		return nil
	}
	return broker.Close()
}

// forwardHook feeds broker publishes into the owning server's handler.
type forwardHook struct {
	mochi.HookBase
	server *Server
	log    *slog.Logger
}

func (fh *forwardHook) ID() string { return "forward" }

func (fh *forwardHook) Provides(b byte) bool {
	return b == mochi.OnPublished
}

func (fh *forwardHook) OnPublished(cl *mochi.Client, pk packets.Packet) {
	if fh.server.Next == nil {
		return
	}
	req := message.NewRequest(message.PUT, "mqtt://"+fh.server.Address+"/"+pk.TopicName)
	req.Entity = content.NewBytes(pk.Payload, "application/octet-stream")
	if resp := fh.server.Next.Handle(context.Background(), req); resp != nil && resp.Status.IsError() {
		fh.log.Debug("mqtt publish handler reported error", "topic", pk.TopicName, "status", int(resp.Status))
	}
}
