package company

import "encoding/json"

// StringList is a JSON field that accepts either a single string or an
// array of strings. The ambiguity is resolved at the boundary; the rest of
// the code only ever sees a slice.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*s = nil
		} else {
			*s = StringList{single}
		}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = StringList(many)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s StringList) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(s))
}

// PageRecord is one page's worth of extracted fields, pre-aggregation.
// Records without a domain are dropped by the aggregator, not treated as
// errors; failed or partial pages are a normal crawl outcome.
type PageRecord struct {
	Domain      string     `json:"domain"`
	Phone       string     `json:"phone,omitempty"`
	SocialMedia StringList `json:"social_media,omitempty"`
	Address     string     `json:"address,omitempty"`
	PageType    string     `json:"page_type,omitempty"`
	URL         string     `json:"url,omitempty"`
}
