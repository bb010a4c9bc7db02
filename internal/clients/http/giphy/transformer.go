package giphy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type envelope struct {
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		TotalCount *int `json:"total_count"`
		Count      *int `json:"count"`
		Offset     *int `json:"offset"`
	} `json:"pagination"`
	Meta *struct {
		Status json.RawMessage `json:"status"`
		Msg    string          `json:"msg"`
	} `json:"meta"`
}

type gifJSON struct {
	ID         *string         `json:"id"`
	Title      *string         `json:"title"`
	URL        *string         `json:"url"`
	Images     json.RawMessage `json:"images"`
	Username   *string         `json:"username"`
	Source     *string         `json:"source"`
	Rating     *string         `json:"rating"`
	ImportedAt *string         `json:"import_datetime"`
}

// TransformCollection validates a search or trending response and maps it to
// a GifCollection.
func TransformCollection(resp *RawResponse) (GifCollection, error) {
	env, err := decodeEnvelope(resp)
	if err != nil {
		return GifCollection{}, err
	}
	if isNullJSON(env.Data) {
		return GifCollection{}, responseError("response has no data list", resp.StatusCode)
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(env.Data, &raw); err != nil {
		return GifCollection{}, responseError("response data is not a list", resp.StatusCode)
	}
	items := make([]Gif, 0, len(raw))
	for i, element := range raw {
		var item gifJSON
		if err := json.Unmarshal(element, &item); err != nil {
			return GifCollection{}, responseError(fmt.Sprintf("data[%d] is not an object", i), resp.StatusCode)
		}
		gif, err := item.toGif()
		if err != nil {
			return GifCollection{}, responseError(fmt.Sprintf("data[%d]: %s", i, err.Error()), resp.StatusCode)
		}
		items = append(items, gif)
	}
	collection := NewCollection(items)
	if p := env.Pagination; p != nil {
		if p.TotalCount != nil {
			collection.TotalCount = *p.TotalCount
		}
		if p.Count != nil {
			collection.Count = *p.Count
		}
		if p.Offset != nil {
			collection.Offset = *p.Offset
		}
	}
	return collection, nil
}

// TransformTrending is the collection path.
func TransformTrending(resp *RawResponse) (GifCollection, error) {
	return TransformCollection(resp)
}

// TransformGif validates a get-by-id response and maps it to a Gif.
func TransformGif(resp *RawResponse) (Gif, error) {
	env, err := decodeEnvelope(resp)
	if err != nil {
		return Gif{}, err
	}
	if isEmptyJSON(env.Data) {
		return Gif{}, notFound("requested GIF was not found")
	}
	var item gifJSON
	if err := json.Unmarshal(env.Data, &item); err != nil {
		return Gif{}, responseError("response data is not an object", resp.StatusCode)
	}
	required := []struct {
		field   string
		present bool
	}{
		{"id", item.ID != nil},
		{"title", item.Title != nil},
		{"images", !isNullJSON(item.Images)},
	}
	for _, r := range required {
		if !r.present {
			return Gif{}, responseError(fmt.Sprintf("response data is missing field %q", r.field), resp.StatusCode)
		}
	}
	gif, err := item.toGif()
	if err != nil {
		return Gif{}, responseError(err.Error(), resp.StatusCode)
	}
	return gif, nil
}

func decodeEnvelope(resp *RawResponse) (envelope, error) {
	if resp == nil {
		return envelope{}, responseError("empty response", 0)
	}
	var env envelope
	decodeErr := json.Unmarshal(resp.Body, &env)

	if resp.StatusCode >= http.StatusBadRequest {
		msg := fmt.Sprintf("HTTP %d", resp.StatusCode)
		if decodeErr == nil && env.Meta != nil && strings.TrimSpace(env.Meta.Msg) != "" {
			msg = strings.TrimSpace(env.Meta.Msg)
		}
		return envelope{}, statusError(resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return envelope{}, responseError("response body is not valid JSON", resp.StatusCode)
	}
	if env.Meta != nil && !statusOK(env.Meta.Status) {
		msg := strings.TrimSpace(env.Meta.Msg)
		if msg == "" {
			msg = "upstream reported status " + string(bytes.TrimSpace(env.Meta.Status))
		}
		return envelope{}, responseError(msg, resp.StatusCode)
	}
	return env, nil
}

func statusError(status int, msg string) *Error {
	switch {
	case status == http.StatusNotFound:
		return notFound(msg)
	case status == http.StatusTooManyRequests:
		return responseError(msg, status)
	case status >= http.StatusInternalServerError:
		return responseError(msg, status)
	default:
		return &Error{Kind: KindRequest, Message: msg, StatusCode: status}
	}
}

// statusOK accepts an absent status, the number 200 and the string "OK".
func statusOK(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return true
	}
	var number json.Number
	if err := json.Unmarshal(raw, &number); err == nil {
		return number.String() == "200"
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.EqualFold(text, "OK") || text == "200"
	}
	return false
}

func isNullJSON(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func isEmptyJSON(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "[]", "{}", `""`, "false", "0":
		return true
	}
	return false
}

func (g gifJSON) toGif() (Gif, error) {
	images, err := decodeImages(g.Images)
	if err != nil {
		return Gif{}, err
	}
	return Gif{
		ID:         deref(g.ID),
		Title:      deref(g.Title),
		URL:        deref(g.URL),
		Images:     images,
		Username:   deref(g.Username),
		Source:     deref(g.Source),
		Rating:     deref(g.Rating),
		ImportedAt: deref(g.ImportedAt),
	}, nil
}

// decodeImages accepts an object or an empty list for the images field.
func decodeImages(raw json.RawMessage) (map[string]any, error) {
	if isNullJSON(raw) || bytes.Equal(bytes.TrimSpace(raw), []byte("[]")) {
		return map[string]any{}, nil
	}
	var images map[string]any
	if err := json.Unmarshal(raw, &images); err != nil {
		return nil, errors.New("images is not an object")
	}
	return images, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
