package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nodeDropDriver serves one network-node row and then fails, standing in for
// a connection lost while the node result set is still streaming.
var errNodeConnDropped = errors.New("driver: connection dropped")

type nodeDropDriver struct{}

func (nodeDropDriver) Open(string) (driver.Conn, error) { return nodeDropConn{}, nil }

type nodeDropConn struct{}

func (nodeDropConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}
func (nodeDropConn) Close() error              { return nil }
func (nodeDropConn) Begin() (driver.Tx, error) { return nil, errors.New("begin not supported") }

func (nodeDropConn) QueryContext(context.Context, string, []driver.NamedValue) (driver.Rows, error) {
	return &nodeDropRows{}, nil
}

type nodeDropRows struct{ served int }

func (*nodeDropRows) Columns() []string {
	return []string{"substation_id", "substation_name", "latitude", "longitude",
		"capacity_mw", "current_load", "load_percent"}
}
func (*nodeDropRows) Close() error { return nil }

func (r *nodeDropRows) Next(dest []driver.Value) error {
	if r.served > 0 {
		return errNodeConnDropped
	}
	r.served++
	dest[0] = int64(1)
	dest[1] = "Central"
	dest[2] = 50.45
	dest[3] = 30.52
	dest[4] = 200.0
	dest[5] = 120.0
	dest[6] = 60.0
	return nil
}

func TestFullNetworkMapSurfacesMidIterationFailure(t *testing.T) {
	sql.Register("store-node-dropping", nodeDropDriver{})
	db, err := sql.Open("store-node-dropping", "")
	require.NoError(t, err)
	defer db.Close()

	_, err = NewReader(db).FullNetworkMap(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errNodeConnDropped)
	assert.Contains(t, err.Error(), "network nodes")
}
