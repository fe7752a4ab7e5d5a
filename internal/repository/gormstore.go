package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RelationalStore is the typed-table backend. Ownership scoping happens
// inside the store itself: contract reads are filtered to the owner bound
// to the context, mirroring the row-level security the relational
// deployment relies on.
type RelationalStore struct {
	db *gorm.DB
}

func NewRelationalStore(db *gorm.DB) *RelationalStore {
	return &RelationalStore{db: db}
}

var relationalTables = map[string]string{
	CollectionContracts:     "kontrak_payung",
	CollectionWorkOrders:    "spk",
	CollectionNotifications: "notifikasi",
	CollectionProfiles:      "profiles",
}

// Patch and insert payloads are filtered to known columns; unknown keys
// are dropped rather than erroring, matching the schemaless backend's
// tolerance of extra fields.
var relationalColumns = map[string][]string{
	CollectionContracts: {
		"owner", "nama_kontrak_payung", "nomor_oas", "waktu_perjanjian",
		"periode_kontrak", "nilai_kontrak", "created_at", "updated_at",
	},
	CollectionWorkOrders: {
		"kontrak_payung_id", "no_spk", "judul_spk", "durasi_spk",
		"nilai_rekapitulasi_estimasi_biaya", "realisasi_spk",
		"progress_percentage", "keterangan",
		"image_url_1", "image_url_2", "image_url_3",
		"pdf_url_1", "pdf_url_2", "pdf_url_3",
		"created_at", "updated_at",
	},
	CollectionNotifications: {
		"spk_id", "no_notif", "judul_notifikasi", "lokasi",
		"image_url", "pdf_url", "created_at", "updated_at",
	},
	CollectionProfiles: {
		"user_id", "full_name", "role", "created_at",
	},
}

func (s *RelationalStore) Collection(name string) (Collection, bool) {
	table, ok := relationalTables[name]
	if !ok {
		return nil, false
	}
	return &relationalCollection{
		db:      s.db,
		name:    name,
		table:   table,
		fk:      foreignKeys[name],
		columns: relationalColumns[name],
	}, true
}

func (s *RelationalStore) Counts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(Collections))
	for _, name := range Collections {
		var n int64
		err := s.db.WithContext(ctx).Table(relationalTables[name]).Count(&n).Error
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", name, err)
		}
		counts[name] = n
	}
	return counts, nil
}

type relationalCollection struct {
	db      *gorm.DB
	name    string
	table   string
	fk      string
	columns []string
}

func (c *relationalCollection) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (c *relationalCollection) scoped(ctx context.Context) *gorm.DB {
	tx := c.db.WithContext(ctx).Table(c.table)
	if c.name == CollectionContracts {
		if owner := ownerFrom(ctx); owner != "" {
			tx = tx.Where("owner = ?", owner)
		}
	}
	return tx
}

func (c *relationalCollection) Find(ctx context.Context, limit int) ([]map[string]any, error) {
	var rows []map[string]any
	err := c.scoped(ctx).
		Order("created_at, id").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return normalizeRows(rows), nil
}

func (c *relationalCollection) FindByID(ctx context.Context, id string) (map[string]any, error) {
	if !c.ValidID(id) {
		return nil, ErrInvalidID
	}
	var rows []map[string]any
	err := c.scoped(ctx).Where("id = ?", id).Limit(1).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return normalizeRow(rows[0]), nil
}

// Work orders come back sorted by their number so reports print SPK
// sections in numbering order regardless of entry order; every other
// collection keeps arrival order.
func (c *relationalCollection) keyOrder() string {
	if c.name == CollectionWorkOrders {
		return "no_spk, created_at, id"
	}
	return "created_at, id"
}

func (c *relationalCollection) FindByKey(ctx context.Context, value string) ([]map[string]any, error) {
	if c.fk == "" {
		return []map[string]any{}, nil
	}
	var rows []map[string]any
	err := c.scoped(ctx).
		Where(c.fk+" = ?", value).
		Order(c.keyOrder()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return normalizeRows(rows), nil
}

func (c *relationalCollection) Create(ctx context.Context, payload map[string]any) (string, error) {
	record := c.filterColumns(payload)
	record["id"] = uuid.NewString()

	err := c.db.WithContext(ctx).Table(c.table).Create(record).Error
	if err != nil {
		return "", err
	}
	return record["id"].(string), nil
}

func (c *relationalCollection) Update(ctx context.Context, id string, patch map[string]any) (int64, error) {
	if !c.ValidID(id) {
		return 0, ErrInvalidID
	}

	current, err := c.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}

	changed := map[string]any{}
	for col, v := range c.filterColumns(patch) {
		if !sameScalar(current[col], v) {
			changed[col] = v
		}
	}
	if len(changed) == 0 {
		return 0, nil
	}

	err = c.db.WithContext(ctx).Table(c.table).Where("id = ?", id).Updates(changed).Error
	if err != nil {
		return 0, err
	}
	return 1, nil
}

func (c *relationalCollection) Delete(ctx context.Context, id string) (int64, error) {
	if !c.ValidID(id) {
		return 0, ErrInvalidID
	}
	res := c.db.WithContext(ctx).Exec(
		fmt.Sprintf("DELETE FROM %s WHERE id = ?", c.table), id,
	)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	return res.RowsAffected, nil
}

func (c *relationalCollection) filterColumns(payload map[string]any) map[string]any {
	record := map[string]any{}
	for _, col := range c.columns {
		if v, ok := payload[col]; ok {
			record[col] = v
		}
	}
	return record
}

// sameScalar compares a stored value with a patch value loosely; the
// driver may hand back int64 where the patch carries float64.
func sameScalar(stored, patched any) bool {
	if stored == nil || patched == nil {
		return stored == patched
	}
	return fmt.Sprintf("%v", stored) == fmt.Sprintf("%v", patched)
}

func normalizeRows(rows []map[string]any) []map[string]any {
	for i := range rows {
		rows[i] = normalizeRow(rows[i])
	}
	return rows
}

// normalizeRow keeps the driver's native id type from leaking upward.
func normalizeRow(row map[string]any) map[string]any {
	if id, ok := row["id"]; ok {
		row["id"] = fmt.Sprintf("%v", id)
	}
	return row
}
