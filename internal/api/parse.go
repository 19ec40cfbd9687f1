package api

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/soulguide/internal/errors"
	"github.com/diogo/soulguide/internal/models"
)

const partsPath = "candidates.0.content.parts"

// ParseResponse extracts the reply from a generateContent body. Text parts are
// concatenated in order; of several inline images only the last is kept.
// An empty text is replaced by silence.
func ParseResponse(body []byte, silence string) (models.Reply, error) {
	if !gjson.ValidBytes(body) {
		return models.Reply{}, apierrors.NewParseError("response is not valid JSON", "")
	}

	var (
		text  strings.Builder
		image string
	)

	gjson.GetBytes(body, partsPath).ForEach(func(_, part gjson.Result) bool {
		if t := part.Get("text"); t.Exists() {
			text.WriteString(t.String())
		}
		if inline := part.Get("inlineData"); inline.Exists() {
			image = fmt.Sprintf("data:%s;base64,%s",
				inline.Get("mimeType").String(),
				inline.Get("data").String(),
			)
		}
		return true
	})

	reply := models.Reply{Text: text.String(), Image: image}
	if reply.Text == "" {
		reply.Text = silence
	}
	return reply, nil
}

// errorMessage returns the message of an API error body, if present
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	return gjson.GetBytes(body, "error.message").String()
}
