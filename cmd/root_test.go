package main

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/ppanel/ppadmin/internal/dao"
	"github.com/ppanel/ppadmin/internal/grid"
	"github.com/ppanel/ppadmin/internal/logger"
	"github.com/ppanel/ppadmin/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nodeList = `{"list":[{"id":1,"name":"tokyo","group_id":2,"enable":true}],"total":1}`

// listConn answers list calls from canned payloads or fails them.
type listConn struct {
	mx      sync.Mutex
	replies map[string]string
	errs    map[string]error
}

func (c *listConn) Get(_ context.Context, path string, _ map[string]string, out any) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if err := c.errs[path]; err != nil {
		return err
	}
	if raw, ok := c.replies[path]; ok && out != nil {
		return json.Unmarshal([]byte(raw), out)
	}
	return nil
}

func (*listConn) Post(context.Context, string, any, any) error   { return nil }
func (*listConn) Put(context.Context, string, any, any) error    { return nil }
func (*listConn) Delete(context.Context, string, any, any) error { return nil }
func (*listConn) ConnectionOK() bool                             { return true }
func (*listConn) ActiveProfile() string                          { return "test" }
func (*listConn) Endpoint() string                               { return "http://ppanel.test" }
func (*listConn) ProfileNames() []string                         { return []string{"test"} }
func (*listConn) SwitchProfile(context.Context, string) error    { return nil }

func resetExportOpts(t *testing.T) {
	t.Helper()
	saved := exportOpts
	t.Cleanup(func() { exportOpts = saved })
	exportOpts.filters, exportOpts.search, exportOpts.size, exportOpts.page = nil, "", 0, 1
}

func TestExportView(t *testing.T) {
	t.Run("Should snapshot the loaded page", func(t *testing.T) {
		resetExportOpts(t)
		conn := &listConn{replies: map[string]string{"/v1/admin/server/list": nodeList}}

		v, err := exportView(context.Background(), dao.NewFactory(conn), grid.DefaultOptions(), logger.NewForTests(), view.NodeView)

		require.NoError(t, err)
		assert.Len(t, v.Rows, 1)
	})

	t.Run("Should fail when the page does not load", func(t *testing.T) {
		resetExportOpts(t)
		conn := &listConn{errs: map[string]error{"/v1/admin/server/list": errors.New("502 bad gateway")}}

		v, err := exportView(context.Background(), dao.NewFactory(conn), grid.DefaultOptions(), logger.NewForTests(), view.NodeView)

		require.Error(t, err)
		assert.ErrorContains(t, err, "502 bad gateway")
		assert.Empty(t, v.Rows)
	})

	t.Run("Should fail when a later step does not load", func(t *testing.T) {
		resetExportOpts(t)
		exportOpts.size = 20
		conn := &listConn{replies: map[string]string{"/v1/admin/server/list": nodeList}}
		var (
			fe        fetchErrors
			breakNext sync.Once
		)
		res, err := view.BuildGrid(context.Background(), view.NodeView, view.GridDeps{
			Factory:  dao.NewFactory(conn),
			Logger:   logger.NewForTests(),
			ReadOnly: true,
			Fetched: func(err error) {
				fe.record(err)
				breakNext.Do(func() {
					conn.mx.Lock()
					conn.errs = map[string]error{"/v1/admin/server/list": errors.New("timeout")}
					conn.mx.Unlock()
				})
			},
		})
		require.NoError(t, err)

		_, err = snapshot(context.Background(), res.Table, fe.err)

		assert.ErrorContains(t, err, "timeout")
	})
}
