package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/elffinance/microfin-gateway/internal/core/domain"
	"github.com/elffinance/microfin-gateway/internal/core/ports"
)

func newAuthSvc(client *stubAuthClient, tokens *stubTokens) *AuthService {
	return NewAuthService(client, tokens, "+91", zerolog.Nop())
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "9999999999", want: "+919999999999"},
		{in: "+919999999999", want: "+919999999999"},
		{in: "  9876543210 ", want: "+919876543210"},
		{in: "999999999", wantErr: true},
		{in: "99999999999", wantErr: true},
		{in: "+91999999999", wantErr: true},
		{in: "99999abcde", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := NormalizePhone(tc.in, "+91")
		if tc.wantErr {
			if !errors.Is(err, domain.ErrInvalidPhone) {
				t.Errorf("NormalizePhone(%q): expected ErrInvalidPhone, got %v", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestAuthService_Login_ValidationNeverCallsUpstream(t *testing.T) {
	client := &stubAuthClient{}
	svc := newAuthSvc(client, newStubTokens())

	if _, err := svc.Login(context.Background(), "dev-1", "12345", "secret1"); !errors.Is(err, domain.ErrInvalidPhone) {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "dev-1", "9999999999", ""); !errors.Is(err, domain.ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}
	if client.loginCalls != 0 {
		t.Fatalf("expected no upstream call, got %d", client.loginCalls)
	}
}

func TestAuthService_Login_CollectorScenario(t *testing.T) {
	tokens := newStubTokens()
	client := &stubAuthClient{
		loginFn: func(_ context.Context, phone, password string) (ports.AuthResult, error) {
			if phone != "+919999999999" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", phone, password)
			}
			return ports.AuthResult{AccessToken: "at-1", RefreshToken: "rt-1", UserName: "Ravi", RoleName: "Collector"}, nil
		},
	}
	svc := newAuthSvc(client, tokens)

	creds, err := svc.Login(context.Background(), "dev-1", "+919999999999", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if creds.Role != domain.RoleCollector {
		t.Fatalf("expected collector, got %s", creds.Role)
	}
	if creds.AccessToken != "at-1" || creds.UserName != "Ravi" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
	if tokens.tokens["dev-1"] != "rt-1" {
		t.Fatalf("expected refresh token persisted, got %q", tokens.tokens["dev-1"])
	}
}

func TestAuthService_Login_UnknownRoleMapsToNone(t *testing.T) {
	client := &stubAuthClient{
		loginFn: func(context.Context, string, string) (ports.AuthResult, error) {
			return ports.AuthResult{AccessToken: "at", RefreshToken: "rt", RoleName: "auditor"}, nil
		},
	}
	svc := newAuthSvc(client, newStubTokens())

	creds, err := svc.Login(context.Background(), "dev-1", "9999999999", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if creds.Role != domain.RoleNone {
		t.Fatalf("expected no role, got %s", creds.Role)
	}
}

func TestAuthService_Login_UpstreamRejection(t *testing.T) {
	tokens := newStubTokens()
	cases := []struct {
		name    string
		err     error
		kind    error
		message string
	}{
		{name: "server message", err: &domain.UpstreamError{Status: 401, Message: "Invalid phone or password"}, kind: domain.ErrAuthFailed, message: "Invalid phone or password"},
		{name: "no message", err: &domain.UpstreamError{Status: 500}, kind: domain.ErrAuthFailed, message: "Login failed"},
		{name: "transport", err: errors.New("dial tcp: refused"), kind: domain.ErrNetwork, message: "Network error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := &stubAuthClient{
				loginFn: func(context.Context, string, string) (ports.AuthResult, error) {
					return ports.AuthResult{}, tc.err
				},
			}
			_, err := newAuthSvc(client, tokens).Login(context.Background(), "dev-1", "9999999999", "pw")

			var ae *domain.AuthError
			if !errors.As(err, &ae) {
				t.Fatalf("expected AuthError, got %v", err)
			}
			if !errors.Is(err, tc.kind) || ae.Message != tc.message {
				t.Fatalf("got kind=%v message=%q", ae.Kind, ae.Message)
			}
		})
	}

	if len(tokens.tokens) != 0 {
		t.Fatalf("nothing should be persisted on failure")
	}
}

func TestAuthService_Refresh_EmptyTokenFailsFast(t *testing.T) {
	client := &stubAuthClient{}
	svc := newAuthSvc(client, newStubTokens())

	_, err := svc.Refresh(context.Background(), "")
	if !errors.Is(err, domain.ErrMissingRefreshToken) {
		t.Fatalf("expected ErrMissingRefreshToken, got %v", err)
	}
	if client.refreshCalls != 0 {
		t.Fatalf("expected no upstream call")
	}
}

func TestAuthService_Refresh_DoesNotPersist(t *testing.T) {
	tokens := newStubTokens()
	client := &stubAuthClient{
		refreshFn: func(_ context.Context, token string) (ports.AuthResult, error) {
			return ports.AuthResult{AccessToken: "at-2", RefreshToken: "rotated", UserName: "Asha", RoleName: "collectioner"}, nil
		},
	}
	svc := newAuthSvc(client, tokens)

	creds, err := svc.Refresh(context.Background(), "rt-1")
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if creds.Role != domain.RoleCollector || creds.AccessToken != "at-2" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
	if creds.RefreshToken != "" {
		t.Fatalf("refresh must not hand back a refresh token")
	}
	if len(tokens.tokens) != 0 {
		t.Fatalf("refresh must not persist anything")
	}
}

func TestAuthService_Refresh_Rejected(t *testing.T) {
	client := &stubAuthClient{
		refreshFn: func(context.Context, string) (ports.AuthResult, error) {
			return ports.AuthResult{}, &domain.UpstreamError{Status: 401, Message: "Token expired"}
		},
	}
	_, err := newAuthSvc(client, newStubTokens()).Refresh(context.Background(), "rt-1")

	if !errors.Is(err, domain.ErrRefreshFailed) {
		t.Fatalf("expected ErrRefreshFailed, got %v", err)
	}
	if err.Error() != "Token expired" {
		t.Fatalf("expected upstream message, got %q", err.Error())
	}
}
