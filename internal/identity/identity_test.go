package identity_test

import (
	"context"
	"testing"

	"github.com/SergeyBogomolovv/order-service/internal/identity"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	testCases := []struct {
		name string
		ac   *identity.AuthContext
		want identity.Identity
	}{
		{
			name: "nil context",
			ac:   nil,
			want: identity.Identity{SubjectID: identity.Unknown},
		},
		{
			name: "preferred username wins",
			ac: &identity.AuthContext{
				Principal:         "f3a1-uuid",
				PreferredUsername: "alice",
			},
			want: identity.Identity{SubjectID: "alice"},
		},
		{
			name: "fallback to principal",
			ac:   &identity.AuthContext{Principal: "f3a1-uuid"},
			want: identity.Identity{SubjectID: "f3a1-uuid"},
		},
		{
			name: "empty context",
			ac:   &identity.AuthContext{},
			want: identity.Identity{SubjectID: identity.Unknown},
		},
		{
			name: "admin",
			ac: &identity.AuthContext{
				PreferredUsername: "root",
				Authorities:       []string{"CLIENT", "ADMIN"},
			},
			want: identity.Identity{SubjectID: "root", IsAdmin: true},
		},
		{
			name: "admin match is exact",
			ac: &identity.AuthContext{
				PreferredUsername: "bob",
				Authorities:       []string{"ROLE_ADMIN", "admin", "ADMINISTRATOR"},
			},
			want: identity.Identity{SubjectID: "bob"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, identity.Resolve(tc.ac))
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, identity.FromContext(ctx))
	assert.Empty(t, identity.BearerToken(ctx))

	ac := &identity.AuthContext{Principal: "alice", Token: "tkn"}
	ctx = identity.WithAuthContext(ctx, ac)

	assert.Same(t, ac, identity.FromContext(ctx))
	assert.Equal(t, "tkn", identity.BearerToken(ctx))
}
