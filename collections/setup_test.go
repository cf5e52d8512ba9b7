package collections_test

import (
	"testing"

	"quotedesk/collections"
	"quotedesk/persistence"
	"quotedesk/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

func TestSetup_StateCollectionExists(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, err := app.FindCollectionByNameOrId(persistence.StateCollection)
	if err != nil {
		t.Fatalf("collection %q not found after Setup(): %v", persistence.StateCollection, err)
	}
	if col.Name != persistence.StateCollection {
		t.Errorf("expected collection name %q, got %q", persistence.StateCollection, col.Name)
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	col, _ := app.FindCollectionByNameOrId(persistence.StateCollection)
	id := col.Id

	if err := collections.Setup(app); err != nil {
		t.Fatalf("second Setup() error: %v", err)
	}

	again, err := app.FindCollectionByNameOrId(persistence.StateCollection)
	if err != nil {
		t.Fatalf("collection missing after second Setup(): %v", err)
	}
	if again.Id != id {
		t.Errorf("collection id changed after second Setup(): %s -> %s", id, again.Id)
	}
}

func TestSetup_StateFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId(persistence.StateCollection)

	for _, f := range []string{"key", "data", "created", "updated"} {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("app_state: missing field %q", f)
		}
	}

	if tf, ok := col.Fields.GetByName("key").(*core.TextField); ok {
		if !tf.Required {
			t.Error("app_state.key: expected Required=true")
		}
	} else {
		t.Error("app_state.key is not a TextField")
	}

	if _, ok := col.Fields.GetByName("data").(*core.JSONField); !ok {
		t.Error("app_state.data is not a JSONField")
	}

	if col.GetIndex("idx_app_state_key") == "" {
		t.Error("app_state: missing unique key index")
	}
}
