package contextkeys

type contextKey string

const (
	TokenKey  contextKey = "BearerToken"
	UserIDKey contextKey = "UserID"
)
