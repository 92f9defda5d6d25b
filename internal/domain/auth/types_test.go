package auth

import (
	"encoding/json"
	"testing"
)

func TestCredentials_WireShape(t *testing.T) {
	b, err := json.Marshal(Credentials{Identifier: "u", Password: "p"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"identifier":"u","password":"p"}` {
		t.Fatalf("unexpected body: %s", b)
	}
}

func TestLoginResponse_Decode(t *testing.T) {
	var resp LoginResponse
	if err := json.Unmarshal([]byte(`{"access_token":"abc","token_type":"bearer"}`), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.AccessToken != "abc" || resp.TokenType != "bearer" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestLoginResponse_BearerToken(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"access_token":"abc","token_type":"bearer"}`, "abc"},
		{`{"token":"abc"}`, "abc"},
		{`{"access_token":"abc","token":"other"}`, "abc"},
		{`{}`, ""},
	}
	for _, tt := range tests {
		var resp LoginResponse
		if err := json.Unmarshal([]byte(tt.body), &resp); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.body, err)
		}
		if got := resp.BearerToken(); got != tt.want {
			t.Fatalf("%s: got %q, want %q", tt.body, got, tt.want)
		}
	}

	var nilResp *LoginResponse
	if nilResp.BearerToken() != "" {
		t.Fatal("nil response should carry no token")
	}
}
