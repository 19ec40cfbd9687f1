package models

// Reply is the normalized answer of one model call
type Reply struct {
	Text string
	// Image is a data URI built from the last inline image part, empty when none
	Image string
}

// HasImage reports whether the reply carries a generated image
func (r Reply) HasImage() bool {
	return r.Image != ""
}

// Part is one unit of a multimodal payload: either text or inline data
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// InlineData is base64 encoded binary content with its MIME type
type InlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Content is one role-tagged turn sent to the model
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}
