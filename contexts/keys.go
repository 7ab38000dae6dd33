package contexts

type contextKey string

const (
	KeyRequestID contextKey = "requestID"
	KeyForm      contextKey = "form"
)
