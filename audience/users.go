package audience

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/google/uuid"

	"github.com/igbuch/fbRads/graph"
	"github.com/igbuch/fbRads/log"
)

// The platform accepts at most this many entries per upload request.
const uploadChunkSize = 10000

// Schema describes the kind of identifier being uploaded.
type Schema string

const (
	SchemaEmail              Schema = "EMAIL_SHA256"
	SchemaPhone              Schema = "PHONE_SHA256"
	SchemaMobileAdvertiserID Schema = "MOBILE_ADVERTISER_ID"
	SchemaExternID           Schema = "EXTERN_ID"
)

func (s Schema) valid() bool {
	switch s {
	case SchemaEmail, SchemaPhone, SchemaMobileAdvertiserID, SchemaExternID:
		return true
	}
	return false
}

// Mobile advertiser ids and external ids are matched verbatim, not hashed.
func (s Schema) hashed() bool {
	return s == SchemaEmail || s == SchemaPhone
}

// uploadPayload is the JSON payload attached to each chunk request.
type uploadPayload struct {
	Schema Schema     `json:"schema"`
	Data   [][]string `json:"data"`
}

// chunkReceipt comes back from the platform for each uploaded chunk.
type chunkReceipt struct {
	AudienceID          string      `json:"audience_id"`
	SessionID           json.Number `json:"session_id"`
	NumReceived         int         `json:"num_received"`
	NumInvalidEntries   int         `json:"num_invalid_entries"`
	InvalidEntrySamples []string    `json:"invalid_entry_samples"`
}

func parseChunkReceipt(responseBytes []byte) (*chunkReceipt, error) {
	var receipt chunkReceipt
	if err := json.Unmarshal(responseBytes, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// UploadResult is the outcome of uploading one chunk of identifiers.
type UploadResult struct {
	Chunk          int
	Size           int
	Received       int
	Invalid        int
	InvalidSamples []string
	Err            error
}

type UploadResults []*UploadResult

func (ur UploadResults) Len() int           { return len(ur) }
func (ur UploadResults) Swap(i, j int)      { ur[i], ur[j] = ur[j], ur[i] }
func (ur UploadResults) Less(i, j int) bool { return ur[i].Chunk < ur[j].Chunk }

// Err returns a combined error if any chunk failed.
func (ur UploadResults) Err() error {
	failed := 0
	for _, result := range ur {
		if result.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d chunks failed to upload", failed, len(ur))
	}
	return nil
}

// AddUsers uploads identifiers into the audience. Identifiers are
// normalized and hashed as the schema requires, split into chunks of
// 10,000 and uploaded sequentially, one request per chunk. Every chunk is
// attempted even if an earlier one fails; the returned results report
// each chunk's outcome distinctly.
func (a *Account) AddUsers(ctx context.Context, audienceID string, schema Schema, identifiers []string) (UploadResults, error) {
	return a.uploadUsers(ctx, http.MethodPost, audienceID, schema, identifiers)
}

// RemoveUsers removes identifiers from the audience, with the same
// chunking behavior as AddUsers.
func (a *Account) RemoveUsers(ctx context.Context, audienceID string, schema Schema, identifiers []string) (UploadResults, error) {
	return a.uploadUsers(ctx, http.MethodDelete, audienceID, schema, identifiers)
}

func (a *Account) uploadUsers(ctx context.Context, method, audienceID string, schema Schema, identifiers []string) (UploadResults, error) {
	if !schema.valid() {
		return nil, fmt.Errorf("unknown identifier schema: %s", schema)
	}
	if len(identifiers) == 0 {
		return UploadResults{}, nil
	}

	entries := prepareEntries(schema, identifiers)
	chunks := chunkEntries(entries, uploadChunkSize)

	uploadID := uuid.New().String()
	logger := a.uploadLogger(uploadID, audienceID)
	logger.Info().Int("num_identifiers", len(entries)).Int("num_chunks", len(chunks)).Str("schema", string(schema)).Msg("starting user upload")

	path := fmt.Sprintf("%s/users", audienceID)
	results := UploadResults{}
	for index, chunk := range chunks {
		result := a.uploadChunk(ctx, logger, method, path, schema, index, chunk)
		results = append(results, result)
	}
	sort.Sort(results)

	if err := results.Err(); err != nil {
		logger.Error().Err(err).Msg("user upload finished with failures")
		return results, err
	}

	logger.Info().Int("num_chunks", len(chunks)).Msg("user upload finished")
	return results, nil
}

func (a *Account) uploadChunk(ctx context.Context, logger *log.Logger, method, path string, schema Schema, index int, chunk [][]string) *UploadResult {
	result := &UploadResult{
		Chunk: index,
		Size:  len(chunk),
	}

	payload, err := json.Marshal(uploadPayload{Schema: schema, Data: chunk})
	if err != nil {
		result.Err = err
		return result
	}

	params := graph.Params{"payload": string(payload)}
	var responseBytes []byte
	if method == http.MethodDelete {
		responseBytes, err = a.client.Delete(ctx, path, params)
	} else {
		responseBytes, err = a.client.Post(ctx, path, params)
	}
	if err != nil {
		logger.Error().Err(err).Int("chunk", index).Msg("chunk upload failed")
		result.Err = err
		return result
	}

	receipt, err := parseChunkReceipt(responseBytes)
	if err != nil {
		result.Err = err
		return result
	}

	result.Received = receipt.NumReceived
	result.Invalid = receipt.NumInvalidEntries
	result.InvalidSamples = receipt.InvalidEntrySamples

	logger.Debug().Int("chunk", index).Int("received", receipt.NumReceived).Int("invalid", receipt.NumInvalidEntries).Msg("uploaded chunk")
	return result
}

func (a *Account) uploadLogger(uploadID, audienceID string) *log.Logger {
	prefixed := a.log.ApplyPrefix(fmt.Sprintf(" [%s]", audienceID))
	logger := prefixed.With().Str("upload_id", uploadID).Logger()
	return &log.Logger{Logger: logger}
}

func prepareEntries(schema Schema, identifiers []string) [][]string {
	entries := make([][]string, 0, len(identifiers))
	for _, identifier := range identifiers {
		if schema.hashed() {
			entries = append(entries, []string{hashIdentifier(identifier)})
		} else {
			entries = append(entries, []string{normalizeIdentifier(identifier)})
		}
	}
	return entries
}

func chunkEntries(entries [][]string, size int) [][][]string {
	chunks := [][][]string{}
	for start := 0; start < len(entries); start += size {
		end := start + size
		if end > len(entries) {
			end = len(entries)
		}
		chunks = append(chunks, entries[start:end])
	}
	return chunks
}
