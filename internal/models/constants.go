// Package models contains data types and constants for the soulguide chat.
package models

// Endpoints for the Gemini generative language API
const (
	EndpointBase = "https://generativelanguage.googleapis.com"
	APIVersion   = "v1beta"
)

// Conversation rules
const (
	// TurnLimit is the number of user messages after which the chat is closed
	// and the call-to-action is shown instead of the input.
	TurnLimit = 2

	// DefaultTemperature biases the model towards more creative answers.
	DefaultTemperature = 0.9

	// ImageMIMEType is sent for every user-supplied image regardless of its
	// real encoding.
	ImageMIMEType = "image/jpeg"
)

// Model represents one of the two Gemini variants the adapter routes between
type Model struct {
	Name string
	// Images is true for the variant that accepts and returns image parts
	Images bool
}

// Available models
var (
	// ModelText is the reasoning variant used for plain text turns
	ModelText = Model{
		Name: "gemini-3-flash-preview",
	}

	// ModelImage can read the user's picture and draw a card in response
	ModelImage = Model{
		Name:   "gemini-2.5-flash-image",
		Images: true,
	}
)

// AllModels returns both routable models
func AllModels() []Model {
	return []Model{ModelText, ModelImage}
}

// ModelFromName returns a known Model by name. Unknown names keep the name and
// take the capability from the fallback.
func ModelFromName(name string, fallback Model) Model {
	switch name {
	case "":
		return fallback
	case ModelText.Name:
		return ModelText
	case ModelImage.Name:
		return ModelImage
	default:
		return Model{Name: name, Images: fallback.Images}
	}
}

// DefaultHeaders returns the headers sent with every generate request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   "soulguide/1.0",
	}
}
