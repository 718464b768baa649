package config

import (
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		valid bool
	}{
		{"empty", "", true},
		{"all keys", `template_root: gradle-scripts/feature-manager/templates
settings_file: settings.gradle.kts
descriptor_file: app/build.gradle.kts
dependency_marker: "    // [Feature-Manager dependencies]"
consumer_module: presentation:ui
manifest_file: AndroidManifest.xml
`, true},
		{"domain consumer", "consumer_module: domain:models\n", true},
		{"unknown layer", "consumer_module: infra:db\n", false},
		{"manifest with slash", "manifest_file: src/AndroidManifest.xml\n", false},
		{"not an object", "- a\n- b\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("Validate() error: %v", err)
			}
			if result.Valid != tt.valid {
				t.Errorf("Validate() valid = %v, want %v (issues: %v)", result.Valid, tt.valid, result.Issues)
			}
			if !tt.valid && len(result.Issues) == 0 {
				t.Error("invalid result should carry issues")
			}
		})
	}
}

func TestValidateMalformedYAML(t *testing.T) {
	if _, err := Validate([]byte("key: [unclosed")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestIssueMessagesAreReadable(t *testing.T) {
	result, err := Validate([]byte("consumer_module: ui\n"))
	if err != nil {
		t.Fatal(err)
	}
	for _, issue := range result.Issues {
		if issue.Message == "" {
			t.Errorf("issue at %q has empty message", issue.Path)
		}
		if issue.Keyword != "pattern" {
			t.Errorf("issue keyword = %q, want %q", issue.Keyword, "pattern")
		}
	}
}
