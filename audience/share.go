package audience

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/igbuch/fbRads/graph"
)

// SharedAccount is an ad account an audience has been shared with.
type SharedAccount struct {
	ID string `json:"id"`
}

func sharingPath(audienceID string) string {
	return fmt.Sprintf("%s/adaccounts", audienceID)
}

// Accounts are passed to the sharing endpoint as a JSON array of numeric
// ids without the "act_" prefix.
func encodeAccountIDs(accountIDs []string) (string, error) {
	if len(accountIDs) == 0 {
		return "", fmt.Errorf("at least one ad account id is required")
	}

	stripped := make([]string, 0, len(accountIDs))
	for _, accountID := range accountIDs {
		id := strings.TrimPrefix(strings.TrimSpace(accountID), "act_")
		if id == "" {
			return "", fmt.Errorf("an empty ad account id was provided")
		}
		stripped = append(stripped, id)
	}

	encoded, err := json.Marshal(stripped)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// Share grants the given ad accounts access to the audience.
func (a *Account) Share(ctx context.Context, audienceID string, accountIDs []string) error {
	encoded, err := encodeAccountIDs(accountIDs)
	if err != nil {
		return err
	}

	responseBytes, err := a.client.Post(ctx, sharingPath(audienceID), graph.Params{"adaccounts": encoded})
	if err != nil {
		return err
	}

	response, err := parseSuccessResponse(responseBytes)
	if err != nil {
		return err
	}
	if !response.Success {
		return fmt.Errorf("platform did not confirm sharing of audience %s", audienceID)
	}

	a.log.Info().Str("audience_id", audienceID).Int("num_accounts", len(accountIDs)).Msg("shared custom audience")
	return nil
}

// Unshare revokes the given ad accounts' access to the audience.
func (a *Account) Unshare(ctx context.Context, audienceID string, accountIDs []string) error {
	encoded, err := encodeAccountIDs(accountIDs)
	if err != nil {
		return err
	}

	responseBytes, err := a.client.Delete(ctx, sharingPath(audienceID), graph.Params{"adaccounts": encoded})
	if err != nil {
		return err
	}

	response, err := parseSuccessResponse(responseBytes)
	if err != nil {
		return err
	}
	if !response.Success {
		return fmt.Errorf("platform did not confirm unsharing of audience %s", audienceID)
	}

	a.log.Info().Str("audience_id", audienceID).Int("num_accounts", len(accountIDs)).Msg("unshared custom audience")
	return nil
}

// SharedAccounts lists the ad accounts the audience is shared with.
func (a *Account) SharedAccounts(ctx context.Context, audienceID string) ([]SharedAccount, error) {
	return graph.FetchAll[SharedAccount](ctx, a.client, sharingPath(audienceID), nil)
}
