package forecast

import "net/http"

// headerOptions selects which headers an endpoint call carries.
type headerOptions struct {
	tenantID           string
	jobID              string
	includeAuth        bool
	includeContentType bool
}

// buildHeaders assembles the request envelope for a call. It is a pure
// function of the token and options: tenantId and jobId keys are only set
// when non-empty.
func buildHeaders(token string, opts headerOptions) http.Header {
	headers := make(http.Header)
	if opts.includeAuth {
		headers.Set("Authorization", "Bearer "+token)
	}
	if opts.includeContentType {
		headers.Set("Content-Type", "application/json")
	}
	// The service matches tenantId and jobId case-sensitively; bypass
	// Header.Set so Go does not canonicalize the casing.
	if opts.tenantID != "" {
		headers["tenantId"] = []string{opts.tenantID}
	}
	if opts.jobID != "" {
		headers["jobId"] = []string{opts.jobID}
	}
	return headers
}

// headers builds the envelope from the client's current credential state.
// The token is read at call time so a refresh mid-sequence is picked up by
// the very next request.
func (c *Client) headers(opts headerOptions) http.Header {
	return buildHeaders(c.store.Token(), opts)
}
