// services/generator_services_test.go
package services

import (
	"strings"
	"testing"
)

func TestBuildTopicPrompt(t *testing.T) {
	svc := &topicGeneratorService{}

	prompt := svc.buildTopicPrompt("Acme", "CRM for small teams")

	if !strings.Contains(prompt, "Acme") {
		t.Errorf("prompt should name the brand: %q", prompt)
	}
	if !strings.Contains(prompt, "CRM for small teams") {
		t.Errorf("prompt should carry the description: %q", prompt)
	}
}

func TestBuildPromptPrompt(t *testing.T) {
	svc := &promptGeneratorService{}

	prompt := svc.buildPromptPrompt("Acme", "CRM software", 5)

	if !strings.Contains(prompt, "Acme") {
		t.Errorf("prompt should name the brand: %q", prompt)
	}
	if !strings.Contains(prompt, "CRM software") {
		t.Errorf("prompt should carry the topic: %q", prompt)
	}
	if !strings.Contains(prompt, "5") {
		t.Errorf("prompt should carry the requested count: %q", prompt)
	}
}

func TestGenerateSchemaShape(t *testing.T) {
	schema, ok := GenerateSchema[TopicsResponse]().(map[string]interface{})
	if !ok {
		t.Fatal("expected a map schema")
	}
	if schema["type"] != "object" {
		t.Errorf("expected object schema, got %v", schema["type"])
	}
	if _, present := schema["properties"]; !present {
		t.Error("expected properties in schema")
	}
}
