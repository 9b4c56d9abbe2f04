package errs

import "errors"

var ErrOrderNotFound = errors.New("order not found")
var ErrUnexpectedStatus = errors.New("unexpected status code")
var ErrBusy = errors.New("operation already in progress")
var ErrConfirmationPending = errors.New("delete confirmation pending")
var ErrNoPendingDeletion = errors.New("no order pending deletion")
var ErrInvalidOrder = errors.New("invalid order")

type Kind int

const (
	KindValidation Kind = iota
	KindTransport
	KindPersist
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindPersist:
		return "persist"
	default:
		return "unknown"
	}
}

// Failure is what the user gets to see. Error returns only Message; the
// underlying cause is kept for logs and errors.Is.
type Failure struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func NewFailure(kind Kind, message string, err error) *Failure {
	return &Failure{Kind: kind, Message: message, Err: err}
}

// IsKind reports whether err carries a Failure of the given kind.
func IsKind(err error, kind Kind) bool {
	var f *Failure
	return errors.As(err, &f) && f.Kind == kind
}
