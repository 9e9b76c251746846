// ABOUTME: Tests for the credential resolver and its strategies
// ABOUTME: Each strategy is exercised alone, then the ordered resolver end to end

package auth

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mintJWT(t *testing.T) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "42",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func jsonResponse(body string) *Response {
	return &Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: []byte(body)}
}

func TestBodyField(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		want      string
		wantDepth int
		found     bool
	}{
		{"top level token", `{"token":"abc"}`, "abc", 0, true},
		{"access_token alias", `{"access_token":"def"}`, "def", 0, true},
		{"accessToken alias", `{"accessToken":"ghi"}`, "ghi", 0, true},
		{"alias priority", `{"accessToken":"later","token":"first"}`, "first", 0, true},
		{"nested under data", `{"success":true,"data":{"token":"XYZ","role":"admin"}}`, "XYZ", 1, true},
		{"nested under auth", `{"auth":{"access_token":"A1"}}`, "A1", 1, true},
		{"nested under user", `{"user":{"accessToken":"U1"}}`, "U1", 1, true},
		{"container priority", `{"user":{"token":"U"},"data":{"token":"D"}}`, "D", 1, true},
		{"top level beats nested", `{"token":"top","data":{"token":"nested"}}`, "top", 0, true},
		{"data token beats access_token", `{"access_token":"A","data":{"token":"B"}}`, "B", 1, true},
		{"top level alias beats nested alias", `{"accessToken":"T","data":{"access_token":"N"}}`, "T", 0, true},
		{"empty value", `{"token":""}`, "", 0, false},
		{"whitespace value", `{"token":"   "}`, "", 0, false},
		{"non string value", `{"token":123}`, "", 0, false},
		{"too deep", `{"data":{"auth":{"token":"deep"}}}`, "", 0, false},
		{"no token", `{"success":true}`, "", 0, false},
		{"not json", `<html>ok</html>`, "", 0, false},
		{"json array", `[{"token":"abc"}]`, "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred, ok := BodyField{}.Extract(jsonResponse(tt.body))
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, cred.Value)
			if ok {
				assert.Equal(t, SourceBody, cred.Source)
				assert.Equal(t, tt.wantDepth, cred.Depth)
			}
		})
	}
}

func TestHeaderScan(t *testing.T) {
	tests := []struct {
		name   string
		header http.Header
		want   string
		found  bool
	}{
		{"authorization bearer", http.Header{"Authorization": {"Bearer abc123"}}, "abc123", true},
		{"lowercase bearer", http.Header{"Authorization": {"bearer abc123"}}, "abc123", true},
		{"custom token header", http.Header{"X-Auth-Token": {"tok-1"}}, "tok-1", true},
		{"access token header", http.Header{"X-Access-Token": {"tok-2"}}, "tok-2", true},
		{"sorted order", http.Header{"X-Token": {"second"}, "Authorization": {"first"}}, "first", true},
		{"set-cookie excluded", http.Header{"Set-Cookie": {"token=abc"}}, "", false},
		{"challenge excluded", http.Header{"Www-Authenticate": {`Bearer realm="api"`}}, "", false},
		{"empty bearer", http.Header{"Authorization": {"Bearer   "}}, "", false},
		{"unrelated headers", http.Header{"Content-Type": {"application/json"}}, "", false},
		{"no headers", http.Header{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &Response{StatusCode: http.StatusOK, Header: tt.header}
			cred, ok := HeaderScan{}.Extract(resp)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, cred.Value)
			if ok {
				assert.Equal(t, SourceHeader, cred.Source)
			}
		})
	}
}

func TestSetCookieScan(t *testing.T) {
	tests := []struct {
		name    string
		cookies []string
		want    string
		found   bool
	}{
		{"token cookie", []string{"token=ABC123; HttpOnly"}, "ABC123", true},
		{"token after other attrs", []string{"lang=en; token=T2; Path=/"}, "T2", true},
		{"first match wins", []string{"session=s1", "token=ONE", "token=TWO"}, "ONE", true},
		{"similar name ignored", []string{"csrftoken=nope; Path=/"}, "", false},
		{"empty cookie value", []string{"token=; Max-Age=0"}, "", false},
		{"no cookies", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for _, c := range tt.cookies {
				h.Add("Set-Cookie", c)
			}
			cred, ok := SetCookieScan{}.Extract(&Response{StatusCode: http.StatusOK, Header: h})
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, cred.Value)
			if ok {
				assert.Equal(t, SourceCookie, cred.Source)
			}
		})
	}
}

func TestDeepSearch(t *testing.T) {
	token := mintJWT(t)

	t.Run("finds nested token", func(t *testing.T) {
		body := `{"result":{"session":{"jwtToken":"` + token + `"}}}`
		cred, ok := DeepSearch{}.Extract(jsonResponse(body))
		require.True(t, ok)
		assert.Equal(t, token, cred.Value)
		assert.Equal(t, SourceDeepSearch, cred.Source)
		assert.Equal(t, 2, cred.Depth)
	})

	t.Run("searches arrays", func(t *testing.T) {
		body := `{"sessions":[{"id":1},{"bearerToken":"` + token + `"}]}`
		cred, ok := DeepSearch{}.Extract(jsonResponse(body))
		require.True(t, ok)
		assert.Equal(t, token, cred.Value)
	})

	t.Run("short values ignored", func(t *testing.T) {
		body := `{"wrap":{"token":"exactly-twenty-chars"}}`
		require.Len(t, "exactly-twenty-chars", 20)
		_, ok := DeepSearch{}.Extract(jsonResponse(body))
		assert.False(t, ok)
	})

	t.Run("twenty one chars accepted", func(t *testing.T) {
		body := `{"wrap":{"token":"exactly-twenty-one-ch"}}`
		cred, ok := DeepSearch{}.Extract(jsonResponse(body))
		require.True(t, ok)
		assert.Equal(t, "exactly-twenty-one-ch", cred.Value)
	})

	t.Run("beyond max depth", func(t *testing.T) {
		body := `{"a":{"b":{"c":{"d":{"e":{"f":{"token":"` + token + `"}}}}}}}`
		_, ok := DeepSearch{}.Extract(jsonResponse(body))
		assert.False(t, ok)
	})

	t.Run("at max depth", func(t *testing.T) {
		body := `{"a":{"b":{"c":{"d":{"e":{"token":"` + token + `"}}}}}}`
		cred, ok := DeepSearch{}.Extract(jsonResponse(body))
		require.True(t, ok)
		assert.Equal(t, 5, cred.Depth)
	})

	t.Run("sorted key order", func(t *testing.T) {
		first := strings.Repeat("a", 30)
		second := strings.Repeat("b", 30)
		body := `{"zeta":{"token":"` + second + `"},"alpha":{"token":"` + first + `"}}`
		cred, ok := DeepSearch{}.Extract(jsonResponse(body))
		require.True(t, ok)
		assert.Equal(t, first, cred.Value)
	})

	t.Run("custom limits", func(t *testing.T) {
		body := `{"a":{"token":"short-but-ok"}}`
		cred, ok := DeepSearch{MaxDepth: 1, MinLength: 5}.Extract(jsonResponse(body))
		require.True(t, ok)
		assert.Equal(t, "short-but-ok", cred.Value)
	})
}

func TestResolver_Resolve(t *testing.T) {
	t.Run("body token in data envelope", func(t *testing.T) {
		r := NewResolver()
		cred, ok := r.Resolve(jsonResponse(`{"success":true,"data":{"token":"XYZ","role":"admin"}}`))
		require.True(t, ok)
		assert.Equal(t, "XYZ", cred.Value)
		assert.Equal(t, SourceBody, cred.Source)
	})

	t.Run("set-cookie only", func(t *testing.T) {
		h := http.Header{}
		h.Add("Set-Cookie", "token=ABC123; HttpOnly")
		resp := &Response{StatusCode: http.StatusOK, Header: h, Body: []byte(`{"success":true}`)}

		_, bodyOK := BodyField{}.Extract(resp)
		_, headerOK := HeaderScan{}.Extract(resp)
		assert.False(t, bodyOK)
		assert.False(t, headerOK)

		cred, ok := NewResolver().Resolve(resp)
		require.True(t, ok)
		assert.Equal(t, "ABC123", cred.Value)
		assert.Equal(t, SourceCookie, cred.Source)
	})

	t.Run("body beats header", func(t *testing.T) {
		resp := jsonResponse(`{"token":"from-body"}`)
		resp.Header.Set("Authorization", "Bearer from-header")
		cred, ok := NewResolver().Resolve(resp)
		require.True(t, ok)
		assert.Equal(t, "from-body", cred.Value)
	})

	t.Run("header beats cookie", func(t *testing.T) {
		resp := jsonResponse(`{"success":true}`)
		resp.Header.Set("X-Auth-Token", "from-header")
		resp.Header.Add("Set-Cookie", "token=from-cookie")
		cred, ok := NewResolver().Resolve(resp)
		require.True(t, ok)
		assert.Equal(t, "from-header", cred.Value)
	})

	t.Run("deep search is last", func(t *testing.T) {
		token := mintJWT(t)
		resp := jsonResponse(`{"payload":{"session":{"refreshToken":"` + token + `"}}}`)
		cred, ok := NewResolver().Resolve(resp)
		require.True(t, ok)
		assert.Equal(t, SourceDeepSearch, cred.Source)
	})

	t.Run("nothing found", func(t *testing.T) {
		_, ok := NewResolver().Resolve(jsonResponse(`{"success":true,"message":"welcome"}`))
		assert.False(t, ok)
	})

	t.Run("nil response", func(t *testing.T) {
		_, ok := NewResolver().Resolve(nil)
		assert.False(t, ok)
	})

	t.Run("does not mutate response", func(t *testing.T) {
		resp := jsonResponse(`{"token":"abc"}`)
		resp.Header.Set("Authorization", "Bearer hdr")
		before := string(resp.Body)
		NewResolver().Resolve(resp)
		assert.Equal(t, before, string(resp.Body))
		assert.Equal(t, "Bearer hdr", resp.Header.Get("Authorization"))
	})
}

func TestResolver_Strategies(t *testing.T) {
	assert.Equal(t, []string{"body-field", "header", "set-cookie", "deep-search"}, NewResolver().Strategies())
	assert.Equal(t, []string{"set-cookie"}, NewResolver(SetCookieScan{}).Strategies())
}

func TestCredential_StringHidesValue(t *testing.T) {
	cred := Credential{Value: "super-secret", Source: SourceCookie}
	assert.NotContains(t, cred.String(), "super-secret")
	assert.Contains(t, cred.String(), "cookie")
}
