package chat

import (
	"testing"

	"github.com/diogo/soulguide/internal/models"
)

func TestStore(t *testing.T) {
	s := NewStore(models.Message{ID: "0", Sender: models.SenderModel, Text: "hi"})

	if _, ok := NewStore().Last(); ok {
		t.Error("empty store should have no last message")
	}

	s.Append(models.Message{ID: "1", Sender: models.SenderUser, Text: "a"})
	s.Append(models.Message{ID: "2", Sender: models.SenderModel, Text: "b"})

	if s.Len() != 3 || s.UserCount() != 1 {
		t.Errorf("Len() = %d, UserCount() = %d", s.Len(), s.UserCount())
	}

	msgs := s.Messages()
	for i, want := range []string{"0", "1", "2"} {
		if msgs[i].ID != want {
			t.Errorf("message %d ID = %q, want %q", i, msgs[i].ID, want)
		}
	}

	msgs[0].Text = "mutated"
	if s.Messages()[0].Text != "hi" {
		t.Error("Messages() must return a copy")
	}

	if last, ok := s.Last(); !ok || last.ID != "2" {
		t.Errorf("Last() = %+v, %v", last, ok)
	}
}
