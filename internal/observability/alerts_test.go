package observability

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

type alertRule struct {
	Alert       string            `yaml:"alert"`
	Expr        string            `yaml:"expr"`
	For         string            `yaml:"for"`
	Labels      map[string]string `yaml:"labels"`
	Annotations map[string]string `yaml:"annotations"`
}

type alertGroup struct {
	Name  string      `yaml:"name"`
	Rules []alertRule `yaml:"rules"`
}

type alertSpec struct {
	Groups []alertGroup `yaml:"groups"`
}

func TestGatewayAlertRules(t *testing.T) {
	path := filepath.Join("..", "..", "deploy", "prometheus", "alerts", "gateway.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read alert file: %v", err)
	}

	var spec alertSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		t.Fatalf("failed to unmarshal alert file: %v", err)
	}

	if len(spec.Groups) == 0 {
		t.Fatal("expected at least one alert group")
	}

	var gatewayGroup *alertGroup
	for i := range spec.Groups {
		if spec.Groups[i].Name == "gateway" {
			gatewayGroup = &spec.Groups[i]
			break
		}
	}
	if gatewayGroup == nil {
		t.Fatal("gateway alert group missing")
	}

	expected := map[string]struct {
		severity string
		runbook  string
	}{
		"HighErrorRate":     {severity: "critical", runbook: "docs/runbook-gateway.md#high-error-rate"},
		"HighLatency":       {severity: "warning", runbook: "docs/runbook-gateway.md#high-latency"},
		"ExportJobFailures": {severity: "warning", runbook: "docs/runbook-gateway.md#export-failures"},
	}

	found := make(map[string]bool)
	for _, rule := range gatewayGroup.Rules {
		exp, ok := expected[rule.Alert]
		if !ok {
			continue
		}
		found[rule.Alert] = true
		if rule.Labels["severity"] != exp.severity {
			t.Errorf("%s: expected severity %q, got %q", rule.Alert, exp.severity, rule.Labels["severity"])
		}
		if rule.Annotations["runbook"] != exp.runbook {
			t.Errorf("%s: expected runbook %q, got %q", rule.Alert, exp.runbook, rule.Annotations["runbook"])
		}
		if rule.Expr == "" {
			t.Errorf("%s: expression must not be empty", rule.Alert)
		}
	}
	for name := range expected {
		if !found[name] {
			t.Errorf("alert %s missing from gateway group", name)
		}
	}
}
