package contextkeys

type contextKey string

const (
	PrincipalKey contextKey = "Principal"
	TokenKey     contextKey = "BearerToken"
)
