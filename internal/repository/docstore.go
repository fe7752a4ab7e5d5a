package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"gorm.io/gorm"
)

// DocumentStore keeps every collection as schemaless JSON rows in a
// single documents table. Primary keys are 24-hex strings generated
// here; nothing above this layer ever sees the storage row.
type DocumentStore struct {
	db *gorm.DB
}

func NewDocumentStore(db *gorm.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

func (s *DocumentStore) Collection(name string) (Collection, bool) {
	if !knownCollection(name) {
		return nil, false
	}
	fk := foreignKeys[name]
	return &documentCollection{db: s.db, name: name, fk: fk}, true
}

func (s *DocumentStore) Counts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(Collections))
	for _, name := range Collections {
		var n int64
		err := s.db.WithContext(ctx).
			Table("documents").
			Where("collection = ?", name).
			Count(&n).Error
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", name, err)
		}
		counts[name] = n
	}
	return counts, nil
}

type documentCollection struct {
	db   *gorm.DB
	name string
	fk   string
}

type documentRow struct {
	ID   string
	Body string
}

func (c *documentCollection) ValidID(id string) bool {
	if len(id) != 24 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}

func (c *documentCollection) Find(ctx context.Context, limit int) ([]map[string]any, error) {
	var rows []documentRow
	err := c.db.WithContext(ctx).Raw(
		`SELECT id, body FROM documents WHERE collection = ? ORDER BY seq LIMIT ?`,
		c.name, limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return decodeRows(rows)
}

func (c *documentCollection) FindByID(ctx context.Context, id string) (map[string]any, error) {
	if !c.ValidID(id) {
		return nil, ErrInvalidID
	}
	var rows []documentRow
	err := c.db.WithContext(ctx).Raw(
		`SELECT id, body FROM documents WHERE collection = ? AND id = ?`,
		c.name, id,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return decodeRow(rows[0])
}

func (c *documentCollection) FindByKey(ctx context.Context, value string) ([]map[string]any, error) {
	if c.fk == "" {
		return []map[string]any{}, nil
	}
	var rows []documentRow
	err := c.db.WithContext(ctx).Raw(
		`SELECT id, body FROM documents WHERE collection = ? AND parent_id = ? ORDER BY seq`,
		c.name, value,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	docs, err := decodeRows(rows)
	if err != nil {
		return nil, err
	}
	// Work orders sort by their number so reports print SPK sections in
	// numbering order; the body is schemaless, so the sort happens here.
	if c.name == CollectionWorkOrders {
		sort.SliceStable(docs, func(i, j int) bool {
			return docString(docs[i], "no_spk") < docString(docs[j], "no_spk")
		})
	}
	return docs, nil
}

func (c *documentCollection) Create(ctx context.Context, payload map[string]any) (string, error) {
	doc := cloneWithoutID(payload)
	id, err := newObjectID()
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}

	err = c.db.WithContext(ctx).Exec(
		`INSERT INTO documents (collection, id, parent_id, body) VALUES (?, ?, ?, ?)`,
		c.name, id, c.parentValue(doc), string(body),
	).Error
	if err != nil {
		return "", err
	}
	return id, nil
}

func (c *documentCollection) Update(ctx context.Context, id string, patch map[string]any) (int64, error) {
	if !c.ValidID(id) {
		return 0, ErrInvalidID
	}

	var rows []documentRow
	err := c.db.WithContext(ctx).Raw(
		`SELECT id, body FROM documents WHERE collection = ? AND id = ?`,
		c.name, id,
	).Scan(&rows).Error
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, ErrNotFound
	}

	var current map[string]any
	if err := json.Unmarshal([]byte(rows[0].Body), &current); err != nil {
		return 0, fmt.Errorf("corrupt document %s/%s: %w", c.name, id, err)
	}

	merged := mergePatch(current, patch)
	if reflect.DeepEqual(current, merged) {
		return 0, nil
	}

	body, err := json.Marshal(merged)
	if err != nil {
		return 0, err
	}

	err = c.db.WithContext(ctx).Exec(
		`UPDATE documents SET body = ?, parent_id = ? WHERE collection = ? AND id = ?`,
		string(body), c.parentValue(merged), c.name, id,
	).Error
	if err != nil {
		return 0, err
	}
	return 1, nil
}

func (c *documentCollection) Delete(ctx context.Context, id string) (int64, error) {
	if !c.ValidID(id) {
		return 0, ErrInvalidID
	}
	res := c.db.WithContext(ctx).Exec(
		`DELETE FROM documents WHERE collection = ? AND id = ?`,
		c.name, id,
	)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	return res.RowsAffected, nil
}

func (c *documentCollection) parentValue(doc map[string]any) any {
	if c.fk == "" {
		return nil
	}
	if v, ok := doc[c.fk].(string); ok && v != "" {
		return v
	}
	return nil
}

// mergePatch applies a shallow merge, never touching the primary key.
func mergePatch(current, patch map[string]any) map[string]any {
	merged := make(map[string]any, len(current)+len(patch))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range patch {
		if k == "id" || k == "_id" {
			continue
		}
		merged[k] = v
	}
	return merged
}

func cloneWithoutID(payload map[string]any) map[string]any {
	doc := make(map[string]any, len(payload))
	for k, v := range payload {
		if k == "id" || k == "_id" {
			continue
		}
		doc[k] = v
	}
	return doc
}

func decodeRows(rows []documentRow) ([]map[string]any, error) {
	docs := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		doc, err := decodeRow(row)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func decodeRow(row documentRow) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(row.Body), &doc); err != nil {
		return nil, fmt.Errorf("corrupt document %s: %w", row.ID, err)
	}
	doc["id"] = row.ID
	return doc, nil
}

func newObjectID() (string, error) {
	raw := make([]byte, 12)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}
