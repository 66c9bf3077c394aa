package presseportal

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// ErrInvalidAPIKey indicates a malformed API key
	ErrInvalidAPIKey = errors.New("invalid presseportal API key")
	// ErrInvalidArgument indicates a query argument outside the API's allow-list
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConnection indicates the API could not be reached
	ErrConnection = errors.New("failed to connect to presseportal")
	// ErrInvalidData indicates the API returned data that could not be processed
	ErrInvalidData = errors.New("invalid data returned by presseportal")
	// ErrUnknownEnvelope indicates a response that is neither a success nor a well-formed error.
	// It is never retried.
	ErrUnknownEnvelope = errors.New("unrecognized response envelope from presseportal")

	ErrInvalidMedia        = errors.New("invalid media type")
	ErrInvalidRegion       = errors.New("invalid region")
	ErrInvalidTopic        = errors.New("invalid topic")
	ErrInvalidKeyword      = errors.New("invalid keyword")
	ErrInvalidNewsCategory = errors.New("invalid investor relations news category")
	ErrInvalidSearchTerm   = errors.New("invalid search term")
	ErrInvalidSearchEntity = errors.New("invalid search entity")
	ErrInvalidIdentifier   = errors.New("invalid identifier")
)

// APIKeyError is returned by NewClient when the key is too short.
type APIKeyError struct {
	Key string
}

func (e *APIKeyError) Error() string {
	return fmt.Sprintf("valid API key required. key '%s' is not valid", e.Key)
}

func (e *APIKeyError) Unwrap() error {
	return ErrInvalidAPIKey
}

// ArgumentKind names the parameter an ArgumentError refers to.
type ArgumentKind int

const (
	KindMedia ArgumentKind = iota
	KindRegion
	KindTopic
	KindKeyword
	KindNewsCategory
	KindSearchTerm
	KindSearchEntity
	KindIdentifier
)

// String returns the human readable name of the argument kind
func (k ArgumentKind) String() string {
	switch k {
	case KindMedia:
		return "media type"
	case KindRegion:
		return "region"
	case KindTopic:
		return "topic"
	case KindKeyword:
		return "keyword"
	case KindNewsCategory:
		return "investor relations news category"
	case KindSearchTerm:
		return "search term"
	case KindSearchEntity:
		return "search entity"
	case KindIdentifier:
		return "identifier"
	default:
		return "argument"
	}
}

func (k ArgumentKind) sentinel() error {
	switch k {
	case KindMedia:
		return ErrInvalidMedia
	case KindRegion:
		return ErrInvalidRegion
	case KindTopic:
		return ErrInvalidTopic
	case KindKeyword:
		return ErrInvalidKeyword
	case KindNewsCategory:
		return ErrInvalidNewsCategory
	case KindSearchTerm:
		return ErrInvalidSearchTerm
	case KindSearchEntity:
		return ErrInvalidSearchEntity
	case KindIdentifier:
		return ErrInvalidIdentifier
	default:
		return nil
	}
}

// ArgumentError reports a caller-supplied value the API does not accept.
// It matches both ErrInvalidArgument and the kind specific sentinel with errors.Is.
type ArgumentError struct {
	Kind    ArgumentKind
	Value   string
	Allowed []string
}

func (e *ArgumentError) Error() string {
	switch {
	case e.Kind == KindSearchTerm:
		return fmt.Sprintf("search term '%s' not permitted. search term must be longer than 3 characters or a list of terms", e.Value)
	case e.Kind == KindIdentifier:
		return fmt.Sprintf("identifier '%s' not permitted. identifier must be numeric", e.Value)
	case len(e.Allowed) == 0:
		return fmt.Sprintf("%s '%s' not permitted for this query", e.Kind, e.Value)
	default:
		return fmt.Sprintf("%s '%s' not permitted. API only accepts %s", e.Kind, e.Value, strings.Join(e.Allowed, ", "))
	}
}

func (e *ArgumentError) Unwrap() []error {
	if s := e.Kind.sentinel(); s != nil {
		return []error{ErrInvalidArgument, s}
	}
	return []error{ErrInvalidArgument}
}

// ConnectionError wraps a transport level failure.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("the API could not be reached (%v)", e.Err)
}

func (e *ConnectionError) Unwrap() []error {
	return []error{ErrConnection, e.Err}
}

// APIError is an error reported by presseportal inside the response envelope
type APIError struct {
	Code    string
	Message string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("API returned error code %s (%s)", e.Code, e.Message)
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.Code == "101"
}

// DataError reports a response that is malformed or lacks required fields.
type DataError struct {
	Reason string
	Err    error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("the API returned invalid data or data could not be processed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("the API returned invalid data or data could not be processed: %s", e.Reason)
}

func (e *DataError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidData, e.Err}
	}
	return []error{ErrInvalidData}
}

func missingKey(key string) *DataError {
	return &DataError{Reason: fmt.Sprintf("required key %s missing", key)}
}
