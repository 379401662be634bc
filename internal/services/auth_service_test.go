package services

import (
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(store *stubStore) *AuthService {
	svc := NewAuthService(store, func(uid, email, name string, admin bool, ttl time.Duration) (string, error) {
		return fmt.Sprintf("token-%s-%v", uid, admin), nil
	})
	svc.now = func() time.Time { return testTime }
	n := 0
	svc.idGen = func(prefix string, _ int) string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
	return svc
}

func TestRegister(t *testing.T) {
	store := newStubStore(mustCatalog(t))
	svc := newTestAuthService(store)

	res, err := svc.Register("New@Example.com", "  Ada  ", "hunter2")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.User.Email != "new@example.com" {
		t.Fatalf("email not normalized: %q", res.User.Email)
	}
	if res.User.Name != "Ada" {
		t.Fatalf("name = %q", res.User.Name)
	}
	if res.User.Admin {
		t.Fatal("new accounts must not be admin")
	}
	if res.Token != "token-u1-false" {
		t.Fatalf("token = %q", res.Token)
	}
	if err := bcrypt.CompareHashAndPassword(res.User.PassHash, []byte("hunter2")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if store.users["new@example.com"] == nil {
		t.Fatal("user not persisted")
	}
}

func TestRegisterDefaultsNameToEmail(t *testing.T) {
	store := newStubStore(mustCatalog(t))
	svc := newTestAuthService(store)

	res, err := svc.Register("anon@example.com", "", "pw")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.User.Name != "anon@example.com" {
		t.Fatalf("name = %q", res.User.Name)
	}
}

func TestRegisterConflict(t *testing.T) {
	store := newStubStore(mustCatalog(t))
	svc := newTestAuthService(store)

	if _, err := svc.Register("dup@example.com", "", "pw"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register("DUP@example.com", "", "pw")
	wantCode(t, err, ErrorConflict)
}

func TestRegisterRequiresFields(t *testing.T) {
	store := newStubStore(mustCatalog(t))
	svc := newTestAuthService(store)

	if _, err := svc.Register("", "", "pw"); err == nil {
		t.Fatal("expected error for empty email")
	}
	if _, err := svc.Register("a@example.com", "", "   "); err == nil {
		t.Fatal("expected error for blank password")
	}
}

func TestLogin(t *testing.T) {
	store := newStubStore(mustCatalog(t))
	svc := newTestAuthService(store)

	if _, err := svc.Register("ada@example.com", "Ada", "hunter2"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	res, err := svc.Login("ADA@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.User.Email != "ada@example.com" || res.Token == "" {
		t.Fatalf("unexpected login result: %+v", res)
	}

	_, err = svc.Login("ada@example.com", "wrong")
	wantCode(t, err, ErrorUnauthorized)

	_, err = svc.Login("nobody@example.com", "hunter2")
	wantCode(t, err, ErrorUnauthorized)
}
