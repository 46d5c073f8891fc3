package audience

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/igbuch/fbRads/graph"
)

// LookalikeSpec describes how the platform should derive a lookalike
// audience from an origin audience.
type LookalikeSpec struct {
	// Ratio is the fraction of the target country's population to reach,
	// between 0.01 and 0.20.
	Ratio float64 `json:"ratio"`

	// Country the lookalike audience is built in, as a two letter code.
	Country string `json:"country"`

	// Optional optimization type, ex. "similarity" or "reach".
	Type string `json:"type,omitempty"`

	StartingRatio float64 `json:"starting_ratio,omitempty"`
}

func (s LookalikeSpec) validate() error {
	if s.Ratio < 0.01 || s.Ratio > 0.20 {
		return fmt.Errorf("lookalike ratio must be between 0.01 and 0.20, got %f", s.Ratio)
	}
	if s.Country == "" {
		return fmt.Errorf("a lookalike country is required")
	}
	return nil
}

// CreateLookalike derives a new lookalike audience from an existing
// audience on the account and returns the new audience's id.
func (a *Account) CreateLookalike(ctx context.Context, name, originAudienceID string, spec LookalikeSpec) (string, error) {
	if name == "" {
		return "", fmt.Errorf("an audience name is required")
	}
	if originAudienceID == "" {
		return "", fmt.Errorf("an origin audience id is required")
	}
	if err := spec.validate(); err != nil {
		return "", err
	}

	encodedSpec, err := json.Marshal(spec)
	if err != nil {
		return "", err
	}

	requestParams := graph.Params{
		"name":               name,
		"subtype":            SubtypeLookalike,
		"origin_audience_id": originAudienceID,
		"lookalike_spec":     string(encodedSpec),
	}

	responseBytes, err := a.client.Post(ctx, a.audiencesPath(), requestParams)
	if err != nil {
		return "", err
	}

	response, err := parseCreateResponse(responseBytes)
	if err != nil {
		return "", err
	}

	a.log.Info().Str("audience_id", response.ID).Str("origin_audience_id", originAudienceID).Str("country", spec.Country).Msg("created lookalike audience")
	return response.ID, nil
}
