package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase/core"

	"quotedesk/persistence"
)

// maxDocumentSize bounds the stored application document, logos included.
const maxDocumentSize = 16 << 20

// Setup programmatically creates/ensures the app_state collection exists.
func Setup(app core.App) error {
	_, err := ensureCollection(app, persistence.StateCollection, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "key", Required: true, Max: 100})
		c.Fields.Add(&core.JSONField{Name: "data", MaxSize: maxDocumentSize})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_app_state_key", true, "`key`", "")
	})
	return err
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app core.App, name string, addFields func(*core.Collection)) (*core.Collection, error) {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("collections: %q already exists, skipping creation", name)
		return existing, nil
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		return nil, fmt.Errorf("create collection %q: %w", name, err)
	}

	log.Printf("collections: created %q (id=%s)", name, collection.Id)
	return collection, nil
}
