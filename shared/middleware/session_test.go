package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newSessionTestRouter(reached *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded", SessionMiddleware(), func(c *gin.Context) {
		*reached = true
		sessionID, _ := GetSessionID(c)
		c.JSON(http.StatusOK, gin.H{"sessionId": sessionID})
	})
	r.POST("/issue", func(c *gin.Context) {
		sessionID, created := EnsureSession(c)
		c.JSON(http.StatusOK, gin.H{"sessionId": sessionID, "created": created})
	})
	return r
}

func TestSessionMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		cookie         *http.Cookie
		expectedStatus int
		expectReached  bool
	}{
		{
			name:           "missing cookie is unauthorized",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "empty cookie is unauthorized",
			cookie:         &http.Cookie{Name: SessionCookieName, Value: ""},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "other cookie is unauthorized",
			cookie:         &http.Cookie{Name: "session", Value: "abc"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "any non-empty value passes",
			cookie:         &http.Cookie{Name: SessionCookieName, Value: "never-issued-by-us"},
			expectedStatus: http.StatusOK,
			expectReached:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reached bool
			router := newSessionTestRouter(&reached)

			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected %d got %d; body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if reached != tt.expectReached {
				t.Errorf("handler reached = %v, want %v", reached, tt.expectReached)
			}
			if tt.expectedStatus == http.StatusUnauthorized {
				var body map[string]string
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("decode body: %v", err)
				}
				if body["message"] != "Unauthorized." || len(body) != 1 {
					t.Errorf("unexpected body %v", body)
				}
			}
			if tt.expectReached {
				var body map[string]string
				json.Unmarshal(w.Body.Bytes(), &body)
				if body["sessionId"] != tt.cookie.Value {
					t.Errorf("sessionId in context = %q, want %q", body["sessionId"], tt.cookie.Value)
				}
			}
		})
	}
}

func TestEnsureSessionIssuesCookie(t *testing.T) {
	var reached bool
	router := newSessionTestRouter(&reached)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/issue", nil))

	resp := w.Result()
	cookies := resp.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != SessionCookieName {
		t.Errorf("cookie name = %q", cookie.Name)
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		t.Errorf("cookie value %q is not a UUID", cookie.Value)
	}
	if cookie.MaxAge != 25200 {
		t.Errorf("cookie max-age = %d, want 25200", cookie.MaxAge)
	}
	if cookie.Path != "/" {
		t.Errorf("cookie path = %q, want /", cookie.Path)
	}
	if cookie.HttpOnly || cookie.Secure {
		t.Errorf("cookie flags HttpOnly=%v Secure=%v, want neither", cookie.HttpOnly, cookie.Secure)
	}

	var body struct {
		SessionID string `json:"sessionId"`
		Created   bool   `json:"created"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if !body.Created || body.SessionID != cookie.Value {
		t.Errorf("EnsureSession returned %+v, cookie %q", body, cookie.Value)
	}
}

func TestEnsureSessionKeepsExistingCookie(t *testing.T) {
	var reached bool
	router := newSessionTestRouter(&reached)

	req := httptest.NewRequest(http.MethodPost, "/issue", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "existing-session"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if len(w.Result().Cookies()) != 0 {
		t.Errorf("no cookie should be set when one is presented")
	}
	var body struct {
		SessionID string `json:"sessionId"`
		Created   bool   `json:"created"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Created || body.SessionID != "existing-session" {
		t.Errorf("EnsureSession returned %+v", body)
	}
}
