package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/peakfindr/peakfindr/internal/model"
)

type interactionMessage struct {
	Message string `json:"message"`
}

// RecordSave stores the location in the user's saved list
func (c *Client) RecordSave(ctx context.Context, key model.Key) error {
	_, err := do[interactionMessage](ctx, c, http.MethodPost, "/interactions/save/"+key.String(), "", nil)
	return err
}

// RecordLike marks the location as liked
func (c *Client) RecordLike(ctx context.Context, key model.Key) error {
	_, err := do[interactionMessage](ctx, c, http.MethodPost, "/interactions/like/"+key.String(), "", nil)
	return err
}

// SaveAction selects which interaction endpoints a right swipe reaches
type SaveAction string

// Supported save actions
const (
	SaveActionSave SaveAction = "save"
	SaveActionLike SaveAction = "like"
	SaveActionBoth SaveAction = "both"
)

// ParseSaveAction validates s; an empty string means SaveActionSave
func ParseSaveAction(s string) (SaveAction, error) {
	switch a := SaveAction(s); a {
	case "":
		return SaveActionSave, nil
	case SaveActionSave, SaveActionLike, SaveActionBoth:
		return a, nil
	default:
		return "", fmt.Errorf("unknown save action %q", s)
	}
}

// Saver records right swipes through the endpoints its action names
type Saver struct {
	client *Client
	action SaveAction
}

// Saver returns a recorder for action. An unknown action falls back to
// SaveActionSave.
func (c *Client) Saver(action SaveAction) *Saver {
	if _, err := ParseSaveAction(string(action)); err != nil || action == "" {
		action = SaveActionSave
	}
	return &Saver{client: c, action: action}
}

// Action returns the endpoints this saver reaches
func (s *Saver) Action() SaveAction {
	return s.action
}

// RecordSave sends the save and/or like interaction for key. With
// SaveActionBoth a failed save does not stop the like.
func (s *Saver) RecordSave(ctx context.Context, key model.Key) error {
	switch s.action {
	case SaveActionLike:
		return s.client.RecordLike(ctx, key)
	case SaveActionBoth:
		return errors.Join(s.client.RecordSave(ctx, key), s.client.RecordLike(ctx, key))
	default:
		return s.client.RecordSave(ctx, key)
	}
}
