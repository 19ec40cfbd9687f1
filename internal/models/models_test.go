package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestAllModels(t *testing.T) {
	all := AllModels()
	if len(all) != 2 {
		t.Fatalf("AllModels() returned %d models, want 2", len(all))
	}

	imageCapable := 0
	for _, m := range all {
		if m.Name == "" {
			t.Error("Model name should not be empty")
		}
		if m.Images {
			imageCapable++
		}
	}
	if imageCapable != 1 {
		t.Errorf("expected exactly one image-capable model, got %d", imageCapable)
	}
}

func TestModelFromName(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		fallback   Model
		wantName   string
		wantImages bool
	}{
		{"text model", "gemini-3-flash-preview", ModelImage, ModelText.Name, false},
		{"image model", "gemini-2.5-flash-image", ModelText, ModelImage.Name, true},
		{"empty uses fallback", "", ModelImage, ModelImage.Name, true},
		{"custom keeps capability", "gemini-custom", ModelImage, "gemini-custom", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ModelFromName(tt.input, tt.fallback)
			if got.Name != tt.wantName {
				t.Errorf("ModelFromName(%q).Name = %q, want %q", tt.input, got.Name, tt.wantName)
			}
			if got.Images != tt.wantImages {
				t.Errorf("ModelFromName(%q).Images = %v, want %v", tt.input, got.Images, tt.wantImages)
			}
		})
	}
}

func TestDefaultHeaders(t *testing.T) {
	headers := DefaultHeaders()
	for _, required := range []string{"Content-Type", "Accept", "User-Agent"} {
		if _, ok := headers[required]; !ok {
			t.Errorf("Missing required header: %s", required)
		}
	}
	if headers["Content-Type"] != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", headers["Content-Type"])
	}
}

func TestSenderRole(t *testing.T) {
	if SenderUser.Role() != "user" {
		t.Errorf("SenderUser.Role() = %q", SenderUser.Role())
	}
	if SenderModel.Role() != "model" {
		t.Errorf("SenderModel.Role() = %q", SenderModel.Role())
	}
	if Sender("other").Role() != "model" {
		t.Errorf("unknown sender should map to model")
	}
}

func TestCountUser(t *testing.T) {
	messages := []Message{
		{Sender: SenderModel, Text: "greeting"},
		{Sender: SenderUser, Text: "one"},
		{Sender: SenderModel, Text: "reply"},
		{Sender: SenderUser, Image: "data:image/png;base64,AAAA"},
	}
	if got := CountUser(messages); got != 2 {
		t.Errorf("CountUser() = %d, want 2", got)
	}
	if got := CountUser(nil); got != 0 {
		t.Errorf("CountUser(nil) = %d, want 0", got)
	}
}

func TestMessageHelpers(t *testing.T) {
	m := Message{Sender: SenderUser, Image: "data:image/jpeg;base64,AA=="}
	if !m.IsUser() || !m.HasImage() {
		t.Errorf("expected user message with image, got %+v", m)
	}
	if (Message{Sender: SenderModel}).HasImage() {
		t.Error("empty message should not report an image")
	}
}

func TestGenerationStateErrorMessage(t *testing.T) {
	var s GenerationState
	if s.ErrorMessage() != "" {
		t.Errorf("zero state ErrorMessage() = %q, want empty", s.ErrorMessage())
	}
	s.Err = errors.New("boom")
	if s.ErrorMessage() != "boom" {
		t.Errorf("ErrorMessage() = %q, want boom", s.ErrorMessage())
	}
}

func TestPartJSON(t *testing.T) {
	data, err := json.Marshal(Content{
		Role: "user",
		Parts: []Part{
			{InlineData: &InlineData{MIMEType: ImageMIMEType, Data: "AAAA"}},
			{Text: "hello"},
		},
	})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	got := string(data)
	for _, want := range []string{`"inlineData":{"mimeType":"image/jpeg","data":"AAAA"}`, `{"text":"hello"}`, `"role":"user"`} {
		if !strings.Contains(got, want) {
			t.Errorf("payload %s missing %s", got, want)
		}
	}
}
