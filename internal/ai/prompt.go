package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	_ "embed"

	"github.com/theworkedge/contract-scout/internal/samgov"
	"github.com/theworkedge/contract-scout/internal/track"
)

//go:embed dme_prompt.md
var dmePromptTemplate string

//go:embed consulting_prompt.md
var consultingPromptTemplate string

// BuildPrompt renders the track's scoring rubric with the slim opportunity
// payload substituted in.
func BuildPrompt(tr track.Track, opportunities *samgov.Opportunities) (string, error) {
	template, err := promptTemplate(tr)
	if err != nil {
		return "", err
	}

	payload, err := json.MarshalIndent(opportunities.Slim(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal opportunities payload: %w", err)
	}

	return strings.ReplaceAll(template, "{{OPPORTUNITIES_JSON}}", string(payload)), nil
}

func promptTemplate(tr track.Track) (string, error) {
	switch tr.Key {
	case "dme":
		return dmePromptTemplate, nil
	case "consulting":
		return consultingPromptTemplate, nil
	default:
		return "", fmt.Errorf("no scoring rubric for track %q", tr.Key)
	}
}
