package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JohnMutemi/sharpQuill-Back-end/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newGateRouter(callerRole string, allowed ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/bids",
		func(c *gin.Context) {
			if callerRole != "" {
				c.Set(CallerRoleCtx, callerRole)
			}
		},
		RequireRoles(allowed...),
		func(c *gin.Context) {
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		},
	)
	return r
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name       string
		callerRole string
		allowed    []string
		wantStatus int
	}{
		{"writer_allowed", models.WriterRole, []string{models.WriterRole}, http.StatusCreated},
		{"client_blocked", models.ClientRole, []string{models.WriterRole}, http.StatusForbidden},
		{"admin_blocked", models.AdminRole, []string{models.WriterRole}, http.StatusForbidden},
		{"either_of_two", models.ClientRole, []string{models.WriterRole, models.ClientRole}, http.StatusCreated},
		{"no_role_in_context", "", []string{models.WriterRole}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newGateRouter(tt.callerRole, tt.allowed...)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/bids", nil)
			r.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusForbidden {
				require.Contains(t, w.Body.String(), "error")
			}
		})
	}
}
