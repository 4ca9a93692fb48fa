package entity

// Field names reported as missing, in the order they are asked for.
const (
	FieldFrom    = "from"
	FieldTo      = "to"
	FieldDepDate = "depdate"
)

// Search response statuses
const (
	StatusComplete   = "complete"
	StatusIncomplete = "incomplete"
	StatusFailed     = "failed"
)

// ParsedEcho shows the caller what was understood so far. Values are the raw
// extractor output; ResolvedDepDate is set when the departure resolved.
type ParsedEcho struct {
	From            *string `json:"from" bson:"from,omitempty"`
	To              *string `json:"to" bson:"to,omitempty"`
	DepDate         *string `json:"depdate" bson:"depdate,omitempty"`
	ResolvedDepDate *string `json:"resolved_depdate,omitempty" bson:"resolvedDepdate,omitempty"`
}

// CompletenessResult is either complete (Record set, defaults applied) or
// incomplete (Missing and Prompts in lockstep, Parsed echo set).
type CompletenessResult struct {
	Complete bool
	Missing  []string
	Prompts  []string
	Parsed   ParsedEcho
	Record   *ExtractionRecord
}

// SearchResponse is what the /search endpoint returns for a processed query.
type SearchResponse struct {
	Status        string          `json:"status"`
	Message       string          `json:"message,omitempty"`
	MissingFields []string        `json:"missing_fields,omitempty"`
	FollowUp      []string        `json:"follow_up,omitempty"`
	Parsed        *ParsedEcho     `json:"parsed,omitempty"`
	Payload       *BookingPayload `json:"payload,omitempty"`
}
