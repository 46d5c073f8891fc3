package audience

import (
	"context"
	"fmt"
	"strings"

	"github.com/igbuch/fbRads/graph"
	"github.com/igbuch/fbRads/log"
)

// Account is a handle on an authenticated ad account. All audience
// operations hang off of it.
type Account struct {
	id     string
	client graph.Client

	log *log.Logger
}

// NewAccount makes an Account for the given ad account id. The id may be
// given with or without the "act_" prefix.
func NewAccount(accountID string, client graph.Client, log *log.Logger) (*Account, error) {
	id := strings.TrimPrefix(strings.TrimSpace(accountID), "act_")
	if id == "" {
		return nil, fmt.Errorf("an ad account id is required")
	}

	return &Account{
		id:     id,
		client: client,

		log: log,
	}, nil
}

// ID returns the numeric ad account id without the "act_" prefix.
func (a *Account) ID() string {
	return a.id
}

func (a *Account) audiencesPath() string {
	return fmt.Sprintf("act_%s/customaudiences", a.id)
}

// CreateParams describe a new custom audience.
type CreateParams struct {
	Name               string
	Description        string
	Subtype            string
	CustomerFileSource string
}

// Create makes a new custom audience on the account and returns its id.
func (a *Account) Create(ctx context.Context, params CreateParams) (string, error) {
	if params.Name == "" {
		return "", fmt.Errorf("an audience name is required")
	}

	subtype := params.Subtype
	if subtype == "" {
		subtype = SubtypeCustom
	}

	requestParams := graph.Params{
		"name":    params.Name,
		"subtype": subtype,
	}
	if params.Description != "" {
		requestParams["description"] = params.Description
	}
	if params.CustomerFileSource != "" {
		requestParams["customer_file_source"] = params.CustomerFileSource
	}

	responseBytes, err := a.client.Post(ctx, a.audiencesPath(), requestParams)
	if err != nil {
		return "", err
	}

	response, err := parseCreateResponse(responseBytes)
	if err != nil {
		return "", err
	}

	a.log.Info().Str("audience_id", response.ID).Str("name", params.Name).Msg("created custom audience")
	return response.ID, nil
}

// Get reads a single custom audience.
func (a *Account) Get(ctx context.Context, audienceID string) (*CustomAudience, error) {
	responseBytes, err := a.client.Get(ctx, audienceID, graph.Params{"fields": audienceFields})
	if err != nil {
		return nil, err
	}

	return parseAudienceResponse(responseBytes)
}

// List returns all custom audiences on the account, following pagination
// cursors until the last page.
func (a *Account) List(ctx context.Context) ([]CustomAudience, error) {
	audiences, err := graph.FetchAll[CustomAudience](ctx, a.client, a.audiencesPath(), graph.Params{
		"fields": audienceFields,
		"limit":  "100",
	})
	if err != nil {
		return nil, err
	}

	a.log.Debug().Int("num_audiences", len(audiences)).Msg("listed custom audiences")
	return audiences, nil
}

// FindByName returns the first audience on the account with the given
// name, or nil if none matches.
func (a *Account) FindByName(ctx context.Context, name string) (*CustomAudience, error) {
	audiences, err := a.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, candidate := range audiences {
		if strings.EqualFold(candidate.Name, name) {
			return &candidate, nil
		}
	}
	return nil, nil
}

// Delete removes a custom audience.
func (a *Account) Delete(ctx context.Context, audienceID string) error {
	responseBytes, err := a.client.Delete(ctx, audienceID, nil)
	if err != nil {
		return err
	}

	response, err := parseSuccessResponse(responseBytes)
	if err != nil {
		return err
	}
	if !response.Success {
		return fmt.Errorf("platform did not confirm deletion of audience %s", audienceID)
	}

	a.log.Info().Str("audience_id", audienceID).Msg("deleted custom audience")
	return nil
}
