package basicauth

import "testing"

func TestToken(t *testing.T) {
	if got, want := Token("admin", "password"), "YWRtaW46cGFzc3dvcmQ="; got != want {
		t.Errorf("Token() = %q, want %q", got, want)
	}
}

func TestChallenge(t *testing.T) {
	if got, want := Challenge("auth-mock"), `Basic realm="auth-mock"`; got != want {
		t.Errorf("Challenge() = %q, want %q", got, want)
	}
}

func TestCredential_Match(t *testing.T) {
	cred := NewCredential("admin", "password")

	tests := []struct {
		name   string
		header string
		want   bool
	}{
		{"exact", "Basic YWRtaW46cGFzc3dvcmQ=", true},
		{"surrounding whitespace", "Basic   YWRtaW46cGFzc3dvcmQ=  ", true},
		{"built by Encode", Encode("admin", "password"), true},
		{"empty", "", false},
		{"prefix only", "Basic ", false},
		{"lowercase scheme", "basic YWRtaW46cGFzc3dvcmQ=", false},
		{"no space after scheme", "BasicYWRtaW46cGFzc3dvcmQ=", false},
		{"bearer", "Bearer YWRtaW46cGFzc3dvcmQ=", false},
		{"wrong password", Encode("admin", "hunter2"), false},
		{"wrong user", Encode("root", "password"), false},
		{"raw credentials", "Basic admin:password", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cred.Match(tt.header); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}
