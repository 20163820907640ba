package phys

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opsmesh/fabinv/mo"
	"github.com/opsmesh/fabinv/report"
)

func TestLinecardTable(t *testing.T) {
	assert := require.New(t)

	linecards := []*Linecard{
		{Module: Module{Slot: "10", Model: "M2", OperSt: "online", Serial: "S2"}},
		{Module: Module{Slot: "2", Model: "M1", OperSt: "online", Serial: "S1"}},
	}

	table := LinecardTable(linecards, "switch ")
	assert.Equal("switch Linecards", table.Title)
	assert.Len(table.Headers, 10)
	assert.Len(table.Rows, 2)
	// slots sort numerically, 2 before 10
	assert.Equal("2", table.Rows[0][0])
	assert.Equal("10", table.Rows[1][0])

	var buf bytes.Buffer
	report.Render(&buf, table)
	assert.Contains(buf.String(), "M1")
	assert.Contains(buf.String(), "Oper St")
}

func TestFantrayTable(t *testing.T) {
	assert := require.New(t)

	fantrays := []*Fantray{{
		Module: Module{Slot: "1", Model: "FT-M", Serial: "TRAY1"},
		Name:   "FT-1",
		Fans: []*Fan{
			{ID: "2", OperSt: "operational", Speed: "9000", Serial: "F2"},
			{ID: "1", OperSt: "operational", Speed: "8500", Serial: "F1"},
		},
	}}

	table := FantrayTable(fantrays, "")
	assert.Len(table.Rows, 2)
	// one row per fan, fans ordered by id
	assert.Equal("fan-1", table.Rows[0][4])
	assert.Equal("fan-2", table.Rows[1][4])
	assert.Equal("TRAY1", table.Rows[0][3])
}

func TestNodeTable(t *testing.T) {
	assert := require.New(t)

	nodes := []*Node{{
		Name: "leaf1", Pod: "1", NodeID: "101", Serial: "SAL1", Model: "N9K-C9396PX",
		Role: "leaf", FabricSt: "active", State: "in-service",
		NumPorts: 48, NumLcSlots: 1, NumLcModules: 1, NumSupSlots: 1, NumSupModules: 1,
		NumFanSlots: 3, NumFanModules: 2, NumPsSlots: 2, NumPsModules: 2,
		SystemUptime: "05:00:00:00.000", LoadBalancingMode: "normal",
	}}

	table := NodeTable(nodes, "")
	assert.Len(table.Headers, 19)
	assert.Len(table.Rows, 1)
	row := table.Rows[0]
	assert.Equal("leaf1", row[0])
	assert.Equal("48", row[12])
	assert.Equal("1(1)", row[13])
	assert.Equal("3(2)", row[15])
}

func TestVnidTable(t *testing.T) {
	assert := require.New(t)

	w := mo.New()
	w.Ingest([]mo.Record{
		record("l3Ctx", "sys/ctx-[vxlan-12]", map[string]string{"encap": "vxlan-12", "name": "prod"}),
		record("l2BD", "sys/ctx-[vxlan-12]/bd-[vxlan-5]", map[string]string{"fabEncap": "vxlan-5", "name": "uni/tn-X:web"}),
	})

	table := VnidTable(w, "")
	assert.Len(table.Rows, 2)
	// ordered numerically by vnid
	assert.Equal([]string{"5", "web", "bd", "prod"}, table.Rows[0])
	assert.Equal([]string{"12", "prod", "context", ""}, table.Rows[1])
}
