package audience

import (
	"encoding/json"
)

// Subtypes of custom audiences known to the platform.
const (
	SubtypeCustom    = "CUSTOM"
	SubtypeLookalike = "LOOKALIKE"
)

// Fields requested when reading audiences back from the platform.
const audienceFields = "id,name,description,subtype,approximate_count,operation_status,time_created,time_updated"

type OperationStatus struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

type CustomAudience struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Subtype          string           `json:"subtype"`
	ApproximateCount int64            `json:"approximate_count"`
	OperationStatus  *OperationStatus `json:"operation_status"`
	TimeCreated      int64            `json:"time_created"`
	TimeUpdated      int64            `json:"time_updated"`
}

// createResponse comes back from audience creation calls.
type createResponse struct {
	ID string `json:"id"`
}

func parseCreateResponse(responseBytes []byte) (*createResponse, error) {
	var response createResponse
	if err := json.Unmarshal(responseBytes, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// successResponse comes back from deletion and sharing calls.
type successResponse struct {
	Success bool `json:"success"`
}

func parseSuccessResponse(responseBytes []byte) (*successResponse, error) {
	var response successResponse
	if err := json.Unmarshal(responseBytes, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func parseAudienceResponse(responseBytes []byte) (*CustomAudience, error) {
	var customAudience CustomAudience
	if err := json.Unmarshal(responseBytes, &customAudience); err != nil {
		return nil, err
	}
	return &customAudience, nil
}
