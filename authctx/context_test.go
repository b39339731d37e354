package authctx

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/lerpz-com/lerpz-auth/token"
	"github.com/lerpz-com/lerpz-auth/user"
)

func TestSetGet(t *testing.T) {
	u := token.TokenUser{ID: uuid.New(), Username: "alice", Role: user.RoleUser}
	ctx := Set(context.Background(), u)

	got, ok := Get(ctx)
	if !ok || got != u {
		t.Fatalf("expected stored user back, got %+v (ok=%v)", got, ok)
	}
}

func TestGet_Missing(t *testing.T) {
	if _, ok := Get(context.Background()); ok {
		t.Fatal("expected no user in empty context")
	}
	if _, err := GetOrError(context.Background()); !errors.Is(err, ErrNoUser) {
		t.Fatalf("expected ErrNoUser, got %v", err)
	}
}

func TestMustGet_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected MustGet to panic on empty context")
		}
	}()
	MustGet(context.Background())
}
