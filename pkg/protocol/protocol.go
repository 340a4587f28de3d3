package protocol

// Protocol identifies a wire protocol.
type Protocol string

// Protocol constants for all protocols known to the built-in helpers.
const (
	// Network protocols
	HTTP  Protocol = "http"
	HTTPS Protocol = "https"
	WS    Protocol = "ws"
	WSS   Protocol = "wss"
	MQTT  Protocol = "mqtt"
	MQTTS Protocol = "mqtts"

	// Local pseudo-protocols
	File Protocol = "file" // local filesystem access
	Zip  Protocol = "zip"  // entries inside a zip archive
	Loop Protocol = "loop" // in-process loopback dispatch
)

// String returns the string representation of the protocol.
func (p Protocol) String() string {
	return string(p)
}

// Scheme returns the URL scheme for the protocol.
func (p Protocol) Scheme() string {
	return string(p)
}

// Confidential reports whether the protocol encrypts its transport.
func (p Protocol) Confidential() bool {
	switch p {
	case HTTPS, WSS, MQTTS:
		return true
	default:
		return false
	}
}

// DefaultPort returns the conventional port for the protocol,
// or 0 if the protocol has no conventional port.
func (p Protocol) DefaultPort() int {
	switch p {
	case HTTP, WS:
		return 80
	case HTTPS, WSS:
		return 443
	case MQTT:
		return 1883
	case MQTTS:
		return 8883
	default:
		return 0
	}
}
