package queryresponse

import (
	"encoding/json"
	"fmt"

	"bikeshare/domain/entities"
)

const QueryResponseType = "query-response"

// QueryResponse contains the response of a query: a precomputed table or a view
// + Metadata: session, type, sender stage and the table name as message
// + QueryID: name of the table or view
// + Data: JSON encoded content
type QueryResponse struct {
	Metadata entities.Metadata `json:"metadata"`
	QueryID  string            `json:"query_id"`
	Data     json.RawMessage   `json:"data"`
}

func NewQueryResponse(sessionID string, queryID string, sender string, data any) (*QueryResponse, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshalling response of query %s: %w", queryID, err)
	}

	metadata := entities.NewMetadata(sessionID, QueryResponseType, sender, queryID)
	return &QueryResponse{
		Metadata: metadata,
		QueryID:  queryID,
		Data:     dataBytes,
	}, nil
}

func (qr *QueryResponse) GetMetadata() entities.Metadata {
	return qr.Metadata
}

func (qr *QueryResponse) GetQueryID() string {
	return qr.QueryID
}
