package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

// StateCollection is the PocketBase collection holding key/document rows.
const StateCollection = "app_state"

// PocketBase stores the document in one record of StateCollection.
type PocketBase struct {
	app core.App
	key string
}

var _ Backend = (*PocketBase)(nil)

func NewPocketBase(app core.App, key string) *PocketBase {
	return &PocketBase{app: app, key: key}
}

func (p *PocketBase) find() (*core.Record, error) {
	rec, err := p.app.FindFirstRecordByData(StateCollection, "key", p.key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", p.key, err)
	}
	return rec, nil
}

func (p *PocketBase) Load(ctx context.Context) ([]byte, error) {
	rec, err := p.find()
	if err != nil {
		return nil, err
	}
	raw, _ := rec.Get("data").(types.JSONRaw)
	if len(raw) == 0 {
		return nil, ErrNotFound
	}
	return []byte(raw), nil
}

func (p *PocketBase) Save(ctx context.Context, data []byte) error {
	rec, err := p.find()
	if errors.Is(err, ErrNotFound) {
		col, cerr := p.app.FindCollectionByNameOrId(StateCollection)
		if cerr != nil {
			return fmt.Errorf("find collection %s: %w", StateCollection, cerr)
		}
		rec = core.NewRecord(col)
		rec.Set("key", p.key)
	} else if err != nil {
		return err
	}

	rec.Set("data", types.JSONRaw(data))
	if err := p.app.SaveWithContext(ctx, rec); err != nil {
		return fmt.Errorf("save %s: %w", p.key, err)
	}
	return nil
}

func (p *PocketBase) Clear(ctx context.Context) error {
	rec, err := p.find()
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := p.app.DeleteWithContext(ctx, rec); err != nil {
		return fmt.Errorf("delete %s: %w", p.key, err)
	}
	return nil
}
