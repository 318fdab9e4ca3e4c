// Package aeonmi compiles workflows into Aeonmi source, the textual form used for
// previews and version snapshots.
package aeonmi

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/qubeflow/qubeflow/pkg/models"
)

const (
	indent       = "  "
	untitledName = "untitled"
)

// Compile renders w as Aeonmi source. Node, edge and config order follow the input.
// It never fails: missing data renders as empty sections and values that cannot be
// encoded render as null. w must not be nil.
func Compile(w *models.Workflow) string {
	var b strings.Builder

	name := Sanitize(w.Name)
	if name == "" {
		name = untitledName
	}

	b.WriteString("workflow " + name + " {\n")

	for i := range w.Nodes {
		writeNode(&b, &w.Nodes[i])
	}

	for _, e := range w.Edges {
		b.WriteString(indent + "edge " +
			Sanitize(e.From.NodeID) + "." + Sanitize(e.From.PortID) + " -> " +
			Sanitize(e.To.NodeID) + "." + Sanitize(e.To.PortID) + "\n")
	}

	if w.EvolutionPolicy != nil {
		writeEvolution(&b, w.EvolutionPolicy)
	}

	b.WriteString("}\n")

	return b.String()
}

func writeNode(b *strings.Builder, n *models.Node) {
	b.WriteString(indent + "node " + Sanitize(n.ID) + " : " + sanitizeType(string(n.Type)) + " {\n")
	b.WriteString(indent + indent + "title " + encode(n.Title) + "\n")
	b.WriteString(indent + indent + "in(" + portList(n.InputPorts()) + ")\n")
	b.WriteString(indent + indent + "out(" + portList(n.OutputPorts()) + ")\n")

	for _, e := range n.Config {
		b.WriteString(indent + indent + "config " + Sanitize(e.Key) + " = " + encode(e.Value) + "\n")
	}

	if n.MicroAIConfig != nil {
		writeMicroAI(b, n.MicroAIConfig)
	}

	b.WriteString(indent + "}\n")
}

func writeMicroAI(b *strings.Builder, cfg *models.MicroAIConfig) {
	pad := indent + indent + indent

	b.WriteString(indent + indent + "micro_ai {\n")

	if cfg.Model != "" {
		b.WriteString(pad + "model = " + encode(cfg.Model) + "\n")
	}

	if cfg.SystemPrompt != "" {
		b.WriteString(pad + "system_prompt = " + encode(cfg.SystemPrompt) + "\n")
	}

	if cfg.Temperature != nil {
		b.WriteString(pad + "temperature = " + encode(*cfg.Temperature) + "\n")
	}

	if cfg.MaxTokens != nil {
		b.WriteString(pad + "max_tokens = " + strconv.Itoa(*cfg.MaxTokens) + "\n")
	}

	if len(cfg.Tools) > 0 {
		b.WriteString(pad + "tools = " + encodeList(cfg.Tools) + "\n")
	}

	b.WriteString(indent + indent + "}\n")
}

func writeEvolution(b *strings.Builder, p *models.EvolutionPolicy) {
	pad := indent + indent

	b.WriteString(indent + "evolution {\n")
	b.WriteString(pad + "enabled = " + strconv.FormatBool(p.Enabled) + "\n")
	b.WriteString(pad + "max_variants = " + strconv.Itoa(p.MaxVariants) + "\n")
	b.WriteString(pad + "kpi = " + encode(string(p.KPIPrimary)) + "\n")
	b.WriteString(pad + "must_use_qube_security = " + strconv.FormatBool(p.Constraints.MustUseQubeSecurity) + "\n")

	if p.Constraints.MaxLatencyMs != nil {
		b.WriteString(pad + "max_latency_ms = " + encode(*p.Constraints.MaxLatencyMs) + "\n")
	}

	if len(p.Constraints.ForbiddenIntegrations) > 0 {
		b.WriteString(pad + "forbidden_integrations = " + encodeList(p.Constraints.ForbiddenIntegrations) + "\n")
	}

	b.WriteString(indent + "}\n")
}

func portList(ports []models.Port) string {
	ids := make([]string, 0, len(ports))
	for _, p := range ports {
		ids = append(ids, Sanitize(p.ID))
	}

	return strings.Join(ids, ", ")
}

func encodeList(values []string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, encode(v))
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// encode renders v as compact JSON without HTML escaping, or null when v cannot be
// encoded.
func encode(v any) string {
	var b strings.Builder

	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return "null"
	}

	return strings.TrimSuffix(b.String(), "\n")
}
