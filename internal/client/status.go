package client

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ServerStatus is the JSON document returned by a status query.
type ServerStatus struct {
	Version struct {
		Name     string `json:"name"`
		Protocol int    `json:"protocol"`
	} `json:"version"`
	Players struct {
		Max    int            `json:"max"`
		Online int            `json:"online"`
		Sample []PlayerSample `json:"sample"`
	} `json:"players"`
	// Description is either a plain string or a chat component object;
	// kept raw and flattened by DescriptionText.
	Description        json.RawMessage `json:"description"`
	Favicon            string          `json:"favicon"`
	EnforcesSecureChat bool            `json:"enforcesSecureChat"`
}

// PlayerSample is one entry of the online-player preview.
type PlayerSample struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// ParseStatus decodes the JSON payload of a status response.
func ParseStatus(raw string) (*ServerStatus, error) {
	var s ServerStatus
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("parse status json: %w", err)
	}
	return &s, nil
}

// DescriptionText flattens the polymorphic description field into plain
// text, joining the base component with any extra parts.
func (s *ServerStatus) DescriptionText() string {
	v := gjson.ParseBytes(s.Description)
	if v.Type == gjson.String {
		return v.String()
	}

	var b strings.Builder
	b.WriteString(v.Get("text").String())
	for _, part := range v.Get("extra").Array() {
		if part.Type == gjson.String {
			b.WriteString(part.String())
		} else {
			b.WriteString(part.Get("text").String())
		}
	}
	return b.String()
}

const faviconPrefix = "data:image/png;base64,"

// FaviconPNG decodes the favicon data URL into raw PNG bytes. Returns
// (nil, nil) when the server sent no favicon.
func (s *ServerStatus) FaviconPNG() ([]byte, error) {
	if s.Favicon == "" {
		return nil, nil
	}
	b64, ok := strings.CutPrefix(s.Favicon, faviconPrefix)
	if !ok {
		return nil, fmt.Errorf("favicon is not a base64 png data url")
	}
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode favicon: %w", err)
	}
	return raw, nil
}
