package samgov

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// SearchParams maps to the SAM.gov opportunity search query string.
// Dates use MM/DD/YYYY, the only form the endpoint accepts.
type SearchParams struct {
	PostedFrom string `samparam:"postedFrom"`
	PostedTo   string `samparam:"postedTo"`
	// NAICS codes are comma-joined into a single parameter.
	NAICS []string `samparam:"naics"`
	// PType filters notice types, e.g. "o,k" for solicitations and combined synopses.
	PType string `samparam:"ptype"`
	Limit int    `samparam:"limit"`
}

type searchEnvelope struct {
	TotalRecords      int              `json:"totalRecords"`
	OpportunitiesData []map[string]any `json:"opportunitiesData"`
}

func (c *Client) search(params *SearchParams) (*Opportunities, error) {
	if params.Limit <= 0 || params.Limit > maxLimit {
		params.Limit = maxLimit
	}

	q := buildParams(params)

	var envelope searchEnvelope
	if err := c.getJSON(c.APIURL, q, &envelope); err != nil {
		return nil, err
	}

	c.logger.Debug("got response from SAM.gov",
		zap.Int("total_records", envelope.TotalRecords),
		zap.Int("returned", len(envelope.OpportunitiesData)),
	)

	var opportunities []*Opportunity
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &opportunities,
		TagName:  "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(envelope.OpportunitiesData); err != nil {
		return nil, fmt.Errorf("decoding opportunities: %w", err)
	}

	return &Opportunities{
		Items: opportunities,
	}, nil
}

func buildParams(params *SearchParams) url.Values {
	q := url.Values{}
	fields := reflect.VisibleFields(reflect.TypeOf(*params))
	for _, field := range fields {
		key := field.Tag.Get("samparam")
		if key == "" {
			continue
		}

		switch field.Type.Kind() {
		case reflect.Slice:
			s := reflect.ValueOf(params).Elem().Field(field.Index[0]).Interface()
			if v, ok := s.([]string); ok && len(v) > 0 {
				q.Set(key, strings.Join(v, ","))
			}

		default:
			value := fmt.Sprintf("%v", reflect.ValueOf(params).Elem().Field(field.Index[0]).Interface())
			if value != "" && value != "0" {
				q.Set(key, value)
			}
		}
	}

	return q
}
