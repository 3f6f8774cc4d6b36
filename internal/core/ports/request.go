package ports

// RequestContext exposes the parameters of the request that triggered a compile.
//
//go:generate mockgen -source=request.go -destination=mocks/mock_request.go -package=mocks
type RequestContext interface {
	// Param returns the first value of the named parameter or "".
	Param(name string) string
	// Params returns all parameters.
	Params() map[string][]string
	// Session returns the session values.
	Session() map[string]string
}
