package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// serverKey is the entry name under the agent's servers object.
const serverKey = "compdoc"

// AgentDef describes one agent's project-level MCP configuration file.
type AgentDef struct {
	ID          string
	DisplayName string
	Binary      string            // detected when on PATH
	DirMarkers  []string          // detected when any exists
	ConfigPath  string            // relative to the project root
	ServersKey  string            // "servers" (VS Code) or "mcpServers" (others)
	ExtraFields map[string]string // e.g. "type": "stdio" for VS Code
}

// DetectedAgent is an agent found in the project.
type DetectedAgent struct {
	Def          AgentDef
	AlreadySetup bool
}

type setupOptions struct {
	auto bool
	// configPath is passed to the server as --config when set.
	configPath string
}

// Replaceable for testing.
var lookPathFunc = exec.LookPath
var statFunc = os.Stat

// agentRegistry lists the supported agents in display order. Every config
// file is project-local because the server resolves its directories from
// the project configuration.
var agentRegistry = []AgentDef{
	{
		ID: "claude_code", DisplayName: "Claude Code",
		Binary: "claude", DirMarkers: []string{".mcp.json", ".claude"},
		ConfigPath: ".mcp.json",
		ServersKey: "mcpServers",
	},
	{
		ID: "cursor", DisplayName: "Cursor",
		DirMarkers: []string{".cursor"},
		ConfigPath: filepath.Join(".cursor", "mcp.json"),
		ServersKey: "mcpServers",
	},
	{
		ID: "vscode_copilot", DisplayName: "VS Code Copilot",
		DirMarkers:  []string{".vscode"},
		ConfigPath:  filepath.Join(".vscode", "mcp.json"),
		ServersKey:  "servers",
		ExtraFields: map[string]string{"type": "stdio"},
	},
}

// detectAgents returns the agents present in the current project.
func detectAgents() []DetectedAgent {
	var detected []DetectedAgent
	for _, def := range agentRegistry {
		found := false
		if def.Binary != "" {
			if _, err := lookPathFunc(def.Binary); err == nil {
				found = true
			}
		}
		for _, marker := range def.DirMarkers {
			if found {
				break
			}
			if _, err := statFunc(marker); err == nil {
				found = true
			}
		}
		if found {
			detected = append(detected, DetectedAgent{
				Def:          def,
				AlreadySetup: isAlreadyConfigured(def.ConfigPath, def.ServersKey),
			})
		}
	}
	return detected
}

// isAlreadyConfigured checks if a compdoc entry exists in a JSON config file.
func isAlreadyConfigured(configPath, serversKey string) bool {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return false
	}
	var config map[string]any
	if err := json.Unmarshal(data, &config); err != nil {
		return false
	}
	servers, ok := config[serversKey].(map[string]any)
	if !ok {
		return false
	}
	_, exists := servers[serverKey]
	return exists
}

// serverEntry returns the MCP server config object for compdoc.
func serverEntry(configPath string, extra map[string]string) map[string]any {
	args := []any{"serve"}
	if configPath != "" {
		args = []any{"--config", configPath, "serve"}
	}
	entry := map[string]any{
		"command": "compdoc",
		"args":    args,
	}
	for k, v := range extra {
		entry[k] = v
	}
	return entry
}

// mergeServerEntry adds a compdoc entry under serversKey to the existing JSON
// (or a new document). It returns nil, nil when compdoc is already present.
func mergeServerEntry(existing []byte, serversKey, configPath string, extra map[string]string) ([]byte, error) {
	config := make(map[string]any)
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &config); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}

	servers, ok := config[serversKey].(map[string]any)
	if !ok {
		servers = make(map[string]any)
	}
	if _, exists := servers[serverKey]; exists {
		return nil, nil
	}

	servers[serverKey] = serverEntry(configPath, extra)
	config[serversKey] = servers

	out, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// configureAgent reads, merges and writes the agent's config file.
func configureAgent(def AgentDef, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(def.ConfigPath), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	var existing []byte
	if data, err := os.ReadFile(def.ConfigPath); err == nil {
		existing = data
	}

	merged, err := mergeServerEntry(existing, def.ServersKey, configPath, def.ExtraFields)
	if err != nil {
		return err
	}
	if merged == nil {
		return nil
	}
	return os.WriteFile(def.ConfigPath, merged, 0o644)
}

// promptYesNo prints a question and reads Y/n. Empty input and EOF mean yes.
func promptYesNo(r *bufio.Scanner, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s ", question)
	if !r.Scan() {
		return true
	}
	answer := strings.TrimSpace(strings.ToLower(r.Text()))
	return answer == "" || answer == "y" || answer == "yes"
}

// executeSetup contains the testable core of `compdoc setup`.
func executeSetup(r io.Reader, w io.Writer, opts setupOptions) {
	detected := detectAgents()
	if len(detected) == 0 {
		fmt.Fprintln(w, "No supported AI agents detected in this project.")
		return
	}

	fmt.Fprintln(w, "Detected AI agents:")
	for _, d := range detected {
		if d.AlreadySetup {
			fmt.Fprintf(w, "  * %s (already configured)\n", d.Def.DisplayName)
		} else {
			fmt.Fprintf(w, "  * %s\n", d.Def.DisplayName)
		}
	}
	fmt.Fprintln(w)

	scanner := bufio.NewScanner(r)
	if !opts.auto && !promptYesNo(scanner, w, "Configure agents? [Y/n]") {
		return
	}

	for _, d := range detected {
		if d.AlreadySetup {
			fmt.Fprintf(w, "%s: already configured, skipping\n", d.Def.DisplayName)
			continue
		}
		if !opts.auto && !promptYesNo(scanner, w, fmt.Sprintf("%s: add to %s? [Y/n]", d.Def.DisplayName, d.Def.ConfigPath)) {
			fmt.Fprintln(w, "  skipped")
			continue
		}
		if err := configureAgent(d.Def, opts.configPath); err != nil {
			fmt.Fprintf(w, "  ! %s: failed: %v\n", d.Def.DisplayName, err)
			continue
		}
		fmt.Fprintf(w, "  + %s configured (%s)\n", d.Def.DisplayName, d.Def.ConfigPath)
	}
}
