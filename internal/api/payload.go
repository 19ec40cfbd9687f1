package api

import (
	"strings"

	"github.com/diogo/soulguide/internal/models"
)

// DefaultSilence is the reply text used when the model returned no text
const DefaultSilence = "Я відчуваю, що зараз час для тиші..."

// StyleSuffix is appended to a visual request so generated cards share one look
const StyleSuffix = " (Style: Surrealist illustration, Dixit card style, dreamlike, whimsical, metaphorical, soft lighting, detailed, no text)"

// VisualKeywords are lowercase word stems that mark a request for a card or
// picture: card, image, picture, drawing, symbol.
var VisualKeywords = []string{"карт", "образ", "зображ", "малюн", "символ"}

// GenerateRequest is the JSON body of a generateContent call
type GenerateRequest struct {
	Contents          []models.Content `json:"contents"`
	SystemInstruction *models.Content  `json:"systemInstruction,omitempty"`
	GenerationConfig  GenerationConfig `json:"generationConfig"`
}

// GenerationConfig holds sampling parameters
type GenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

// FormatHistory converts stored messages to role-tagged contents.
// Only text is carried over; a message without text becomes a content with no parts.
func FormatHistory(history []models.Message) []models.Content {
	contents := make([]models.Content, 0, len(history)+1)
	for _, msg := range history {
		parts := []models.Part{}
		if msg.Text != "" {
			parts = append(parts, models.Part{Text: msg.Text})
		}
		contents = append(contents, models.Content{
			Role:  msg.Sender.Role(),
			Parts: parts,
		})
	}
	return contents
}

// IsVisualRequest reports whether text asks for a card or picture
func IsVisualRequest(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range VisualKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// SelectModel picks the image model when an image is attached or a visual
// request was detected, otherwise the text model.
func SelectModel(hasImage, visual bool, textModel, imageModel models.Model) models.Model {
	if hasImage || visual {
		return imageModel
	}
	return textModel
}

// StripDataURI returns the payload of a data URI. Input without a comma is
// returned unchanged.
func StripDataURI(image string) string {
	_, rest, found := strings.Cut(image, ",")
	if !found {
		return image
	}
	// base64 never contains a comma; anything after a second one is dropped
	payload, _, _ := strings.Cut(rest, ",")
	if payload == "" {
		return image
	}
	return payload
}

// CurrentTurn builds the user content for this send: the image part first,
// then the text, with the style suffix for a visual request without an image.
func CurrentTurn(text, image string) models.Content {
	parts := []models.Part{}

	if image != "" {
		parts = append(parts, models.Part{
			InlineData: &models.InlineData{
				MIMEType: models.ImageMIMEType,
				Data:     StripDataURI(image),
			},
		})
	}

	if text != "" {
		if image == "" && IsVisualRequest(text) {
			text += StyleSuffix
		}
		parts = append(parts, models.Part{Text: text})
	}

	return models.Content{Role: models.SenderUser.Role(), Parts: parts}
}

// BuildRequest assembles the full request body: history, then the current turn
func BuildRequest(text, image string, history []models.Message, systemInstruction string, temperature float64) GenerateRequest {
	contents := FormatHistory(history)
	contents = append(contents, CurrentTurn(text, image))

	req := GenerateRequest{
		Contents:         contents,
		GenerationConfig: GenerationConfig{Temperature: temperature},
	}
	if systemInstruction != "" {
		req.SystemInstruction = &models.Content{
			Parts: []models.Part{{Text: systemInstruction}},
		}
	}
	return req
}
