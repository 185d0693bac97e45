package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name        string
		index       int
		size        int
		total       int
		wantPages   int
		wantPrev    bool
		wantNext    bool
		wantInRange bool
		wantOffset  int
	}{
		{name: "first of two", index: 1, size: 30, total: 35, wantPages: 2, wantNext: true, wantInRange: true},
		{name: "last of two", index: 2, size: 30, total: 35, wantPages: 2, wantPrev: true, wantInRange: true, wantOffset: 30},
		{name: "exact multiple", index: 2, size: 30, total: 60, wantPages: 2, wantPrev: true, wantInRange: true, wantOffset: 30},
		{name: "beyond last", index: 5, size: 30, total: 35, wantPages: 2, wantPrev: true, wantOffset: 120},
		{name: "zero index", index: 0, size: 30, total: 35, wantPages: 2},
		{name: "negative index", index: -3, size: 30, total: 35, wantPages: 2},
		{name: "empty collection", index: 1, size: 30, total: 0, wantPages: 0},
		{name: "default size", index: 1, size: 0, total: 31, wantPages: 2, wantNext: true, wantInRange: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage(tt.index, tt.size, tt.total)

			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.wantPrev, p.HasPrevious)
			assert.Equal(t, tt.wantNext, p.HasNext)
			assert.Equal(t, tt.wantInRange, p.InRange())
			assert.Equal(t, tt.wantOffset, p.Offset())
			assert.NotNil(t, p.Users)
			assert.Empty(t, p.Users)
		})
	}
}

func TestUserUpdate_Apply(t *testing.T) {
	name := "New Name"
	u := User{ID: 7, Name: "Old", Email: "old@example.com", PasswordHash: "h"}

	got := UserUpdate{Name: &name}.Apply(u)

	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, "old@example.com", got.Email)
	assert.Equal(t, "h", got.PasswordHash)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "Old", u.Name, "original must not be modified")
}

func TestUserUpdate_IsEmpty(t *testing.T) {
	email := "a@b.c"
	assert.True(t, UserUpdate{}.IsEmpty())
	assert.False(t, UserUpdate{Email: &email}.IsEmpty())
}

func TestOutcomeKind_String(t *testing.T) {
	assert.Equal(t, "require_signin", OutcomeRequireSignIn.String())
	assert.Equal(t, "unknown", OutcomeKind(0).String())
	assert.True(t, OutcomeRedirectToShow.IsRedirect())
	assert.False(t, OutcomeRenderNew.IsRedirect())
}
