package forecast

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildHeaders(t *testing.T) {
	tests := []struct {
		want  http.Header
		name  string
		token string
		opts  headerOptions
	}{
		{
			name:  "auth and tenant only",
			token: "tok-1",
			opts:  headerOptions{includeAuth: true, tenantID: "t1"},
			want: http.Header{
				"Authorization": {"Bearer tok-1"},
				"tenantId":      {"t1"},
			},
		},
		{
			name:  "all headers",
			token: "tok-1",
			opts:  headerOptions{includeAuth: true, includeContentType: true, tenantID: "t1", jobID: "job-9"},
			want: http.Header{
				"Authorization": {"Bearer tok-1"},
				"Content-Type":  {"application/json"},
				"tenantId":      {"t1"},
				"jobId":         {"job-9"},
			},
		},
		{
			name: "tenant only, no auth",
			opts: headerOptions{tenantID: "t1"},
			want: http.Header{
				"tenantId": {"t1"},
			},
		},
		{
			name: "empty options yield empty headers",
			want: http.Header{},
		},
		{
			name:  "empty tenant and job ids omitted",
			token: "tok-1",
			opts:  headerOptions{includeAuth: true},
			want: http.Header{
				"Authorization": {"Bearer tok-1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildHeaders(tt.token, tt.opts)
			assert.Equal(t, tt.want, got)
		})
	}
}
