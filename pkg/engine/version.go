package engine

// Version is the engine release version.
const Version = "1.0.0"

// AgentName identifies the engine in agent strings.
const AgentName = "Plugboard"

// Agent returns the agent identification string, e.g. "Plugboard/1.0.0".
func Agent() string {
	return AgentName + "/" + Version
}
