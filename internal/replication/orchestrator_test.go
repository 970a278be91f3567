package replication

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrchestrator(local, central *memStore) *Orchestrator {
	return NewOrchestrator(local, central, NewRunner(NewExecutor(), DefaultConcurrency))
}

func TestRunPassAbortsWhenStoreUnreachable(t *testing.T) {
	tests := []struct {
		name  string
		store string
	}{
		{"local unreachable", "local"},
		{"central unreachable", "central"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local, central := newMemStore(), newMemStore()
			if tt.store == "local" {
				local.pingErr = errors.New("dial refused")
			} else {
				central.pingErr = errors.New("dial refused")
			}

			summary, err := testOrchestrator(local, central).RunPass(context.Background())
			assert.Nil(t, summary)

			var connErr *ConnectivityError
			require.ErrorAs(t, err, &connErr)
			assert.Equal(t, tt.store, connErr.Store)
			// nothing was fetched, let alone written
			assert.Empty(t, local.fetched)
			assert.Empty(t, central.fetched)
		})
	}
}

func TestRunPassWalksTypesInDependencyOrder(t *testing.T) {
	local, central := newMemStore(), newMemStore()

	_, err := testOrchestrator(local, central).RunPass(context.Background())
	require.NoError(t, err)

	// downloads read the central tables, uploads read the local ones,
	// interleaved strictly by rank
	assert.Equal(t, []string{"warehouses_online", "users_online"}, central.fetched)
	assert.Equal(t, []string{
		"receipt_settings", "products", "customers", "suppliers",
		"sales", "purchases", "sale_items", "purchase_items", "payment_methods",
	}, local.fetched)
}

func TestRunPassMovesDirtyRecordsBothWays(t *testing.T) {
	local, central := newMemStore(), newMemStore()
	central.seed("warehouses_online", Record{
		"warehouse_code": "WH-01", "name": "Main Street", "sync": false, "synced_at": nil,
	})
	local.seed("products", Record{
		"id": "prod-1", "warehouse_id": "WH-01", "name": "Beans 1kg",
		"quantity": int64(15), "sync": false, "synced_at": nil,
	})

	summary, err := testOrchestrator(local, central).RunPass(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Zero(t, summary.Failed)
	assert.Empty(t, summary.Errors)
	assert.Equal(t, 1, summary.PerType["warehouses"])
	assert.Equal(t, 1, summary.PerType["products"])
	assert.Equal(t, 0, summary.PerType["sales"])

	// the warehouse came down as an already-acknowledged mirror row
	mirror := local.row("warehouses", "warehouse_code", "WH-01")
	require.NotNil(t, mirror)
	assert.Equal(t, "Main Street", mirror["name"])
	assert.Equal(t, true, mirror["sync"])

	// and the central original was acknowledged too
	origin := central.row("warehouses_online", "warehouse_code", "WH-01")
	assert.Equal(t, true, origin["sync"])

	// the product went up with its reference column renamed
	uploaded := central.row("products_online", "id", "prod-1")
	require.NotNil(t, uploaded)
	assert.Equal(t, "WH-01", uploaded["warehouse_ref"])
	assert.NotContains(t, uploaded, "warehouse_id")
	assert.Equal(t, int64(15), uploaded["quantity"])
	assert.Equal(t, true, uploaded["sync"])

	assert.Equal(t, true, local.row("products", "id", "prod-1")["sync"])
}

func TestRunPassConvergesToZero(t *testing.T) {
	local, central := newMemStore(), newMemStore()
	central.seed("warehouses_online", Record{"warehouse_code": "WH-01", "sync": false})
	local.seed("products", Record{"id": "prod-1", "warehouse_id": "WH-01", "sync": false})
	o := testOrchestrator(local, central)

	first, err := o.RunPass(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, first.Total)

	second, err := o.RunPass(context.Background())
	require.NoError(t, err)
	assert.Zero(t, second.Total)
	assert.Zero(t, second.Failed)
	assert.Equal(t, 1, central.count("products_online"))
}

func TestRunPassReplicatesDeletions(t *testing.T) {
	local, central := newMemStore(), newMemStore()
	central.seed("products_online", Record{
		"id": "prod-1", "warehouse_ref": "WH-01", "is_deleted": false, "sync": true,
	})
	local.seed("products", Record{
		"id": "prod-1", "warehouse_id": "WH-01", "is_deleted": true, "sync": false,
	})

	summary, err := testOrchestrator(local, central).RunPass(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, true, central.row("products_online", "id", "prod-1")["is_deleted"])
	assert.Equal(t, true, local.row("products", "id", "prod-1")["sync"])
}

func TestRunPassContinuesPastBrokenType(t *testing.T) {
	local, central := newMemStore(), newMemStore()
	// no warehouse reference: the whole products batch is misconfigured
	local.seed("products", Record{"id": "prod-1", "sync": false})
	local.seed("customers", Record{"id": "cust-1", "warehouse_id": "WH-01", "sync": false})

	summary, err := testOrchestrator(local, central).RunPass(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Errors, 1)
	assert.Equal(t, "products", summary.Errors[0].Type)
	assert.Equal(t, 0, summary.PerType["products"])

	// customers ranked after products still replicated
	assert.Equal(t, 1, summary.PerType["customers"])
	assert.Equal(t, 1, central.count("customers_online"))

	// the broken record is still dirty and will be retried
	assert.Equal(t, false, local.row("products", "id", "prod-1")["sync"])
}

func TestRunPassIsolatesRecordFailure(t *testing.T) {
	local, central := newMemStore(), newMemStore()
	central.seed("products_online", Record{
		"id": "prod-1", "warehouse_ref": "WH-01", "quantity": "twenty", "sync": true,
	})
	local.seed("products",
		Record{"id": "prod-1", "warehouse_id": "WH-01", "quantity": int64(20), "sync": false},
		Record{"id": "prod-2", "warehouse_id": "WH-01", "quantity": int64(5), "sync": false},
	)

	summary, err := testOrchestrator(local, central).RunPass(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.PerType["products"])
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, "prod-1", summary.Failures[0].Identity)

	var conflict *ConflictError
	assert.ErrorAs(t, summary.Failures[0].Err, &conflict)

	// conflicting record stays dirty, its sibling is done
	assert.Equal(t, false, local.row("products", "id", "prod-1")["sync"])
	assert.Equal(t, true, local.row("products", "id", "prod-2")["sync"])
}

func TestStatusCountsOutstandingWork(t *testing.T) {
	local, central := newMemStore(), newMemStore()
	local.seed("products",
		Record{"id": "prod-1", "sync": false},
		Record{"id": "prod-2", "sync": true},
		Record{"id": "prod-3", "is_deleted": true, "sync": false},
	)
	local.seed("sales", Record{"invoice_no": "INV-001", "sync": false})

	status, err := testOrchestrator(local, central).Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), status.PerType["products"])
	assert.Equal(t, int64(1), status.PerType["sales"])
	assert.Equal(t, int64(0), status.PerType["customers"])
	assert.Equal(t, int64(3), status.Total)
}
