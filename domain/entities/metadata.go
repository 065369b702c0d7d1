package entities

// Metadata this struct will contain extra information about the data that leaves the pipeline
// + SessionID: ID of the session that produced the data
// + Type: this field helps consumers to recognize what type of data is
// + Stage: stage were the Metadata was constructed
// + Message: message with extra information
type Metadata struct {
	SessionID string `json:"session_id"`
	Type      string `json:"type"`
	Stage     string `json:"stage"`
	Message   string `json:"message"`
}

func NewMetadata(sessionID string, dataType string, stage string, message string) Metadata {
	return Metadata{
		SessionID: sessionID,
		Type:      dataType,
		Stage:     stage,
		Message:   message,
	}
}

func (m Metadata) GetType() string {
	return m.Type
}

func (m Metadata) GetSessionID() string {
	return m.SessionID
}

func (m Metadata) GetStage() string {
	return m.Stage
}

func (m Metadata) GetMessage() string {
	return m.Message
}
