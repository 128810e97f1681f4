package buildsession_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/tara-lang/tarac/internal/buildsession"
	"github.com/tara-lang/tarac/internal/config"
)

func TestNewSessionsHaveDistinctIDs(t *testing.T) {
	a := buildsession.New()
	b := buildsession.New()
	if a.ID == b.ID {
		t.Fatalf("two sessions minted the same ID %s", a.ID)
	}
	if a.String() != a.ID.String() {
		t.Errorf("String() %q does not match ID.String() %q", a.String(), a.ID.String())
	}
}

func TestNewUnderTestModeMintsFixedID(t *testing.T) {
	config.IsTestMode = true
	defer func() { config.IsTestMode = false }()

	a := buildsession.New()
	b := buildsession.New()
	if a.ID != uuid.Nil || b.ID != uuid.Nil {
		t.Fatalf("got IDs %s and %s under IsTestMode, want both %s", a.ID, b.ID, uuid.Nil)
	}
}
