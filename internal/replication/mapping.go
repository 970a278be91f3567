package replication

import "sort"

// Record is one row in store-neutral form, keyed by column name. The engine
// moves records between the two stores without knowing their Go struct types;
// the per-type Mapping below is the single place that knows how the two
// schemas differ.
type Record map[string]any

// Clone returns a shallow copy. Mappings never mutate their input.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Direction of replication for one entity type.
type Direction int

const (
	// Download: central -> local, for slowly-changing reference data. The
	// local copy is a mirror and is written already marked synced.
	Download Direction = iota
	// Upload: local -> central, for all transactional data.
	Upload
)

func (d Direction) String() string {
	if d == Download {
		return "download"
	}
	return "upload"
}

// Mapping declares, per entity type, the identity column, the foreign-key
// renames crossing stores, the sync direction and the dependency rank. It is
// the single source of truth for schema translation; no other component may
// hand-translate a column name.
type Mapping struct {
	Type         string // logical name, also the pass summary key
	LocalTable   string
	CentralTable string
	Identity     string            // local column holding the logical identity
	ForeignKeys  map[string]string // local column -> central column, all required
	Direction    Direction
	Rank         int // lower ranks sync first (foreign-key dependency order)
}

// CentralIdentity resolves the identity column name on the central side.
func (m Mapping) CentralIdentity() string {
	if renamed, ok := m.ForeignKeys[m.Identity]; ok {
		return renamed
	}
	return m.Identity
}

// SourceTable / TargetTable pick the read and write side for the mapping's
// direction.
func (m Mapping) SourceTable() string {
	if m.Direction == Download {
		return m.CentralTable
	}
	return m.LocalTable
}

func (m Mapping) TargetTable() string {
	if m.Direction == Download {
		return m.LocalTable
	}
	return m.CentralTable
}

// SourceIdentity / TargetIdentity are the identity column names on each side.
func (m Mapping) SourceIdentity() string {
	if m.Direction == Download {
		return m.CentralIdentity()
	}
	return m.Identity
}

func (m Mapping) TargetIdentity() string {
	if m.Direction == Download {
		return m.Identity
	}
	return m.CentralIdentity()
}

// MapToCentral translates a local-shaped record to the central shape. Scalar
// columns carry through unchanged; declared foreign keys are renamed. A
// declared foreign key absent from the record is a configuration error.
func (m Mapping) MapToCentral(rec Record) (Record, error) {
	out := rec.Clone()
	for local, central := range m.ForeignKeys {
		v, ok := out[local]
		if !ok {
			return nil, &MappingError{Type: m.Type, Field: local}
		}
		delete(out, local)
		out[central] = v
	}
	return out, nil
}

// MapToLocal is the inverse of MapToCentral.
func (m Mapping) MapToLocal(rec Record) (Record, error) {
	out := rec.Clone()
	for local, central := range m.ForeignKeys {
		v, ok := out[central]
		if !ok {
			return nil, &MappingError{Type: m.Type, Field: central}
		}
		delete(out, central)
		out[local] = v
	}
	return out, nil
}

// MapToTarget applies the translation matching the mapping's direction.
func (m Mapping) MapToTarget(rec Record) (Record, error) {
	if m.Direction == Download {
		return m.MapToLocal(rec)
	}
	return m.MapToCentral(rec)
}

// Registry returns the full set of entity mappings in ascending rank order:
// reference data first, then parents, then transaction headers, then their
// line and payment children.
func Registry() []Mapping {
	mappings := []Mapping{
		{
			Type: "warehouses", LocalTable: "warehouses", CentralTable: "warehouses_online",
			Identity: "warehouse_code", Direction: Download, Rank: 0,
		},
		{
			Type: "users", LocalTable: "users", CentralTable: "users_online",
			Identity: "username", Direction: Download, Rank: 1,
			ForeignKeys: map[string]string{"warehouse_id": "warehouse_ref"},
		},
		{
			Type: "receipt_settings", LocalTable: "receipt_settings", CentralTable: "receipt_settings_online",
			Identity: "warehouse_id", Direction: Upload, Rank: 2,
			ForeignKeys: map[string]string{"warehouse_id": "warehouse_ref"},
		},
		{
			Type: "products", LocalTable: "products", CentralTable: "products_online",
			Identity: "id", Direction: Upload, Rank: 3,
			ForeignKeys: map[string]string{"warehouse_id": "warehouse_ref"},
		},
		{
			Type: "customers", LocalTable: "customers", CentralTable: "customers_online",
			Identity: "id", Direction: Upload, Rank: 4,
			ForeignKeys: map[string]string{"warehouse_id": "warehouse_ref"},
		},
		{
			Type: "suppliers", LocalTable: "suppliers", CentralTable: "suppliers_online",
			Identity: "id", Direction: Upload, Rank: 5,
			ForeignKeys: map[string]string{"warehouse_id": "warehouse_ref"},
		},
		{
			Type: "sales", LocalTable: "sales", CentralTable: "sales_online",
			Identity: "invoice_no", Direction: Upload, Rank: 6,
			ForeignKeys: map[string]string{
				"warehouse_id": "warehouse_ref",
				"customer_id":  "customer_ref",
			},
		},
		{
			Type: "purchases", LocalTable: "purchases", CentralTable: "purchases_online",
			Identity: "reference_no", Direction: Upload, Rank: 7,
			ForeignKeys: map[string]string{
				"warehouse_id": "warehouse_ref",
				"supplier_id":  "supplier_ref",
			},
		},
		{
			Type: "sale_items", LocalTable: "sale_items", CentralTable: "sale_items_online",
			Identity: "id", Direction: Upload, Rank: 8,
			ForeignKeys: map[string]string{
				"warehouse_id": "warehouse_ref",
				"sale_id":      "sale_ref",
				"product_id":   "product_ref",
				"customer_id":  "customer_ref",
			},
		},
		{
			Type: "purchase_items", LocalTable: "purchase_items", CentralTable: "purchase_items_online",
			Identity: "id", Direction: Upload, Rank: 9,
			ForeignKeys: map[string]string{
				"warehouse_id": "warehouse_ref",
				"purchase_id":  "purchase_ref",
				"product_id":   "product_ref",
			},
		},
		{
			Type: "payment_methods", LocalTable: "payment_methods", CentralTable: "payment_methods_online",
			Identity: "id", Direction: Upload, Rank: 10,
			ForeignKeys: map[string]string{
				"warehouse_id": "warehouse_ref",
				"sale_id":      "sale_ref",
			},
		},
	}

	sort.Slice(mappings, func(i, j int) bool { return mappings[i].Rank < mappings[j].Rank })
	return mappings
}

// MappingFor looks up one mapping by its logical type name.
func MappingFor(entityType string) (Mapping, bool) {
	for _, m := range Registry() {
		if m.Type == entityType {
			return m, true
		}
	}
	return Mapping{}, false
}
