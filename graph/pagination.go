package graph

import (
	"context"
	"encoding/json"
)

// A page that came back from a Graph API list endpoint
type pagedResponse struct {
	Data   json.RawMessage `json:"data"`
	Paging *Paging         `json:"paging"`
}

// Paging carries the cursors attached to a list response.
type Paging struct {
	Cursors struct {
		Before string `json:"before"`
		After  string `json:"after"`
	} `json:"cursors"`
	Next string `json:"next"`
}

// FetchAll follows cursors on a list endpoint until the last page,
// accumulating all data entries.
// NOTE: Implemented as a standalone func since go doesn't seem to support generics on struct methods.
func FetchAll[DataType any](ctx context.Context, client Client, path string, params Params) ([]DataType, error) {
	// Running list of data
	data := []DataType{}

	// Loop through all pages
	after := ""
	for {
		pageParams := Params{}
		for key, value := range params {
			pageParams[key] = value
		}
		if after != "" {
			pageParams["after"] = after
		}

		responseBytes, err := client.Get(ctx, path, pageParams)
		if err != nil {
			return nil, err
		}

		var page pagedResponse
		if err := json.Unmarshal(responseBytes, &page); err != nil {
			return nil, err
		}

		var entries []DataType
		if len(page.Data) > 0 {
			if err := json.Unmarshal(page.Data, &entries); err != nil {
				return nil, err
			}
		}
		data = append(data, entries...)

		// Update the cursor or break out of the loop if we have finished
		if page.Paging == nil || page.Paging.Next == "" || page.Paging.Cursors.After == "" {
			break
		}
		after = page.Paging.Cursors.After
	}

	return data, nil
}
