package banana

// Kind classifies why an edit failed.
type Kind string

const (
	// KindInputValidation covers a missing key or prompt and a wrong image count.
	KindInputValidation Kind = "input_validation"
	// KindTransport covers network errors and timeouts.
	KindTransport Kind = "transport"
	// KindRemote covers non-2xx responses.
	KindRemote Kind = "remote"
	// KindPayload covers unencodable inputs and missing or undecodable result images.
	KindPayload Kind = "payload"
)

// Failure describes a failed edit. Message is the text surfaced to the user.
type Failure struct {
	Kind Kind
	// Message starts with "Error: ", or "ERROR: " for image count problems.
	Message string
	// StatusCode is set for KindRemote.
	StatusCode int
	Err        error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}
