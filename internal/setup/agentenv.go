package setup

import "slices"

// AgentEnv describes an agent coding environment that lore can integrate with.
// Each implementation handles detection, installation, and removal of the
// lore hook for a specific tool.
type AgentEnv interface {
	// Name returns the short identifier used in CLI commands (e.g., "claude").
	Name() string

	// DisplayName returns the human-readable name (e.g., "Claude Code").
	DisplayName() string

	// Detect checks whether the integration is installed for projectDir,
	// looking at project scope first and then global scope.
	Detect(projectDir string) (path, scope string, installed bool)

	// Install adds the lore hook. global selects the user-wide settings
	// instead of the project's.
	Install(projectDir string, global bool) (path string, err error)

	// Remove removes the lore hook from the selected scope.
	Remove(projectDir string, global bool) error

	// Check returns the settings path and install state for one scope.
	Check(projectDir string, global bool) (path, scope string, installed bool, err error)
}

// registry holds all known agent environments, keyed by name.
var registry = map[string]AgentEnv{}

// RegisterAgentEnv registers an agent environment implementation.
func RegisterAgentEnv(env AgentEnv) {
	registry[env.Name()] = env
}

// GetAgentEnv returns a registered agent environment by name, or nil if not found.
func GetAgentEnv(name string) AgentEnv {
	return registry[name]
}

// AllAgentEnvs returns all registered agent environments in a stable order.
func AllAgentEnvs() []AgentEnv {
	order := []string{"claude"}
	var result []AgentEnv
	for _, name := range order {
		if env, ok := registry[name]; ok {
			result = append(result, env)
		}
	}

	var rest []string
	for name := range registry {
		if !slices.Contains(order, name) {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	for _, name := range rest {
		result = append(result, registry[name])
	}
	return result
}

// DetectedAgentEnvs returns agent environments that have lore installed.
func DetectedAgentEnvs(projectDir string) []AgentEnv {
	var detected []AgentEnv
	for _, env := range AllAgentEnvs() {
		if _, _, installed := env.Detect(projectDir); installed {
			detected = append(detected, env)
		}
	}
	return detected
}
