// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/kirana-ledger/models"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestPrincipalCtxKey(t *testing.T) {
	if PrincipalCtxKey.String() != "principal" {
		t.Errorf("expected 'principal', got '%s'", PrincipalCtxKey.String())
	}
}

func TestPrincipalFromContext_Success(t *testing.T) {
	want := models.Principal{Name: "alice", Authority: models.AuthorityUser}
	ctx := WithPrincipal(context.Background(), want)

	got, ok := PrincipalFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestPrincipalFromContext_Missing(t *testing.T) {
	_, ok := PrincipalFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
}

func TestPrincipalFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), PrincipalCtxKey, "alice")

	_, ok := PrincipalFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestPrincipalFromContext_ZeroValue(t *testing.T) {
	ctx := WithPrincipal(context.Background(), models.Principal{})

	_, ok := PrincipalFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false for zero principal, got true")
	}
}

func TestPrincipalFromContext_DifferentKey(t *testing.T) {
	otherKey := contextKey("otherKey")
	ctx := context.WithValue(context.Background(), otherKey, models.Principal{Name: "x"})

	_, ok := PrincipalFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false for different key, got true")
	}
}

func TestClientIPFromContext(t *testing.T) {
	if ip := ClientIPFromContext(context.Background()); ip != "" {
		t.Fatalf("expected empty ip, got %q", ip)
	}

	ctx := WithClientIP(context.Background(), "10.0.0.7")
	if ip := ClientIPFromContext(ctx); ip != "10.0.0.7" {
		t.Fatalf("expected 10.0.0.7, got %q", ip)
	}
}
