package eof

import (
	"fmt"

	"bikeshare/domain/entities"
)

const EOFType = "EOF"

// EOFData struct that it's sent after the last message of a publication.
// + Metadata: metadata added to the structure
// + Count: amount of messages sent before the EOF
type EOFData struct {
	Metadata entities.Metadata `json:"metadata"`
	Count    int               `json:"count"`
}

func NewEOF(sessionID string, stage string, count int) *EOFData {
	return &EOFData{
		Metadata: entities.NewMetadata(sessionID, EOFType, stage, GetEOFString(stage, sessionID)),
		Count:    count,
	}
}

// GetEOFString returns the EOF message with the following format: eof.stage.sessionID
func GetEOFString(stage string, sessionID string) string {
	return fmt.Sprintf("eof.%s.%s", stage, sessionID)
}

func (eof EOFData) GetMetadata() entities.Metadata {
	return eof.Metadata
}
