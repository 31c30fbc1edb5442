package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"

	"tunelytics/internal/core"
	"tunelytics/internal/ledger"
)

// DecodeInteraction turns a positional interaction row into a typed record.
// Field order: id, timestamp, type, targetId, targetType, fromUser,
// content, parentId, tipAmount.
func DecodeInteraction(row core.RawRecord) (core.Interaction, error) {
	if len(row) != ledger.InteractionFieldCount {
		return core.Interaction{}, arityError(len(row), ledger.InteractionFieldCount)
	}

	var (
		i   core.Interaction
		err error
	)

	if i.ID, err = intField(row, 0, "id"); err != nil {
		return core.Interaction{}, err
	}
	if i.Timestamp, err = intField(row, 1, "timestamp"); err != nil {
		return core.Interaction{}, err
	}

	rawType, err := intField(row, 2, "type")
	if err != nil {
		return core.Interaction{}, err
	}
	i.Type = core.InteractionType(rawType)
	if rawType < 0 || rawType > 255 || !i.Type.Valid() {
		return core.Interaction{}, fmt.Errorf("%w: type %d", core.ErrUnknownEnum, rawType)
	}

	if i.TargetID, err = intField(row, 3, "targetId"); err != nil {
		return core.Interaction{}, err
	}

	rawTarget, err := intField(row, 4, "targetType")
	if err != nil {
		return core.Interaction{}, err
	}
	i.TargetType = core.TargetType(rawTarget)
	if rawTarget < 0 || rawTarget > 255 || !i.TargetType.Valid() {
		return core.Interaction{}, fmt.Errorf("%w: targetType %d", core.ErrUnknownEnum, rawTarget)
	}

	if i.FromUser, err = strField(row, 5, "fromUser"); err != nil {
		return core.Interaction{}, err
	}
	if i.Content, err = strField(row, 6, "content"); err != nil {
		return core.Interaction{}, err
	}
	if len(i.Content) > core.MaxContentLength {
		return core.Interaction{}, fmt.Errorf("%w: content exceeds %d characters", core.ErrMalformedRecord, core.MaxContentLength)
	}
	if i.ParentID, err = intField(row, 7, "parentId"); err != nil {
		return core.Interaction{}, err
	}
	if i.TipAmount, err = intField(row, 8, "tipAmount"); err != nil {
		return core.Interaction{}, err
	}

	return i, nil
}

// DecodePost turns a positional post row into a typed record.
// Field order: id, timestamp, content, quotedPostId, replyToId, author,
// isDeleted.
func DecodePost(row core.RawRecord) (core.Post, error) {
	if len(row) != ledger.PostFieldCount {
		return core.Post{}, arityError(len(row), ledger.PostFieldCount)
	}

	var (
		p   core.Post
		err error
	)

	if p.ID, err = intField(row, 0, "id"); err != nil {
		return core.Post{}, err
	}
	if p.Timestamp, err = intField(row, 1, "timestamp"); err != nil {
		return core.Post{}, err
	}
	if p.Content, err = strField(row, 2, "content"); err != nil {
		return core.Post{}, err
	}
	if len(p.Content) > core.MaxContentLength {
		return core.Post{}, fmt.Errorf("%w: content exceeds %d characters", core.ErrMalformedRecord, core.MaxContentLength)
	}
	if p.QuotedPostID, err = intField(row, 3, "quotedPostId"); err != nil {
		return core.Post{}, err
	}
	if p.ReplyToID, err = intField(row, 4, "replyToId"); err != nil {
		return core.Post{}, err
	}
	if p.Author, err = strField(row, 5, "author"); err != nil {
		return core.Post{}, err
	}
	if p.IsDeleted, err = boolField(row, 6, "isDeleted"); err != nil {
		return core.Post{}, err
	}

	return p, nil
}

// DecodePlayEvent turns a positional play row into a typed record.
// Field order: id, timestamp, tokenId, listener, duration, source.
func DecodePlayEvent(row core.RawRecord) (core.PlayEvent, error) {
	if len(row) != ledger.PlayEventFieldCount {
		return core.PlayEvent{}, arityError(len(row), ledger.PlayEventFieldCount)
	}

	var (
		p   core.PlayEvent
		err error
	)

	if p.ID, err = intField(row, 0, "id"); err != nil {
		return core.PlayEvent{}, err
	}
	if p.Timestamp, err = intField(row, 1, "timestamp"); err != nil {
		return core.PlayEvent{}, err
	}
	if p.TokenID, err = intField(row, 2, "tokenId"); err != nil {
		return core.PlayEvent{}, err
	}
	if p.Listener, err = strField(row, 3, "listener"); err != nil {
		return core.PlayEvent{}, err
	}
	if p.Duration, err = intField(row, 4, "duration"); err != nil {
		return core.PlayEvent{}, err
	}
	if p.Source, err = strField(row, 5, "source"); err != nil {
		return core.PlayEvent{}, err
	}

	return p, nil
}

func arityError(got, want int) error {
	return fmt.Errorf("%w: %d fields, schema declares %d", core.ErrMalformedRecord, got, want)
}

// intField coerces a positional field to int64. The indexer serializes rows
// as JSON arrays, so numbers usually arrive as float64 or json.Number, and
// values wider than float53 as strings.
func intField(row core.RawRecord, idx int, name string) (int64, error) {
	switch v := row[idx].(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, coerceError(idx, name, row[idx])
		}
		return n, nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, coerceError(idx, name, row[idx])
		}
		return n, nil
	default:
		return 0, coerceError(idx, name, row[idx])
	}
}

func strField(row core.RawRecord, idx int, name string) (string, error) {
	s, ok := row[idx].(string)
	if !ok {
		return "", coerceError(idx, name, row[idx])
	}
	return s, nil
}

func boolField(row core.RawRecord, idx int, name string) (bool, error) {
	switch v := row[idx].(type) {
	case bool:
		return v, nil
	case float64:
		return v != 0, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, coerceError(idx, name, row[idx])
		}
		return b, nil
	default:
		return false, coerceError(idx, name, row[idx])
	}
}

func coerceError(idx int, name string, v any) error {
	return fmt.Errorf("%w: field %d (%s) has type %T", core.ErrMalformedRecord, idx, name, v)
}
