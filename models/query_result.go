package models

// FailureKind classifies why a retrieval did not succeed.
type FailureKind string

const (
	FailureNone      FailureKind = ""
	FailureTransport FailureKind = "transport"
	FailureMalformed FailureKind = "malformed"
)

const (
	FAILED_TO_RETRIEVE_MESSAGE = "Failed to retrieve data from source."
	MISSING_SERVICES_MESSAGE   = "Missing bus ID field. Unable to retrieve services."
)

// QueryResult is the outcome of a retrieval attempt. Message is meaningful
// only when Success is false, Services only when Success is true.
type QueryResult struct {
	Success  bool         `json:"success"`
	Message  string       `json:"message,omitempty"`
	Failure  FailureKind  `json:"failure,omitempty"`
	Services []BusService `json:"services,omitempty"`
}

func SuccessResult(services []BusService) QueryResult {
	if services == nil {
		services = []BusService{}
	}
	return QueryResult{Success: true, Services: services}
}

func TransportFailure() QueryResult {
	return QueryResult{Message: FAILED_TO_RETRIEVE_MESSAGE, Failure: FailureTransport}
}

func MalformedFailure() QueryResult {
	return QueryResult{Message: MISSING_SERVICES_MESSAGE, Failure: FailureMalformed}
}
