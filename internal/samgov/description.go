package samgov

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Notices frequently carry the description as a link to the separate
// noticedesc endpoint instead of inline text. The endpoint returns
// {"description": "<html>"}.
type descriptionEnvelope struct {
	Description string `json:"description"`
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// ResolveDescriptions replaces URL-valued description fields with the fetched
// text. Failures are logged and leave the field untouched; classification and
// scoring degrade gracefully on a missing description.
func (c *Client) ResolveDescriptions(opportunities *Opportunities) {
	for _, opp := range opportunities.Items {
		desc := strings.TrimSpace(opp.Description)
		if !strings.HasPrefix(desc, "http://") && !strings.HasPrefix(desc, "https://") {
			continue
		}

		var envelope descriptionEnvelope
		if err := c.getJSON(desc, nil, &envelope); err != nil {
			c.logger.Warn("fetching notice description failed",
				zap.String("notice_id", opp.NoticeID),
				zap.Error(err),
			)
			continue
		}

		text := stripHTML(envelope.Description)
		if text == "" {
			continue
		}

		opp.Description = text
	}
}

func stripHTML(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	return strings.Join(strings.Fields(s), " ")
}
