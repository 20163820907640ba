package phys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opsmesh/fabinv/mo"
)

func linkAttrs(n1, s1, p1, n2, s2, p2 string) map[string]string {
	return map[string]string{
		"linkState": "active", "status": "", "modTs": "2026-01-02T03:04:05",
		"n1": n1, "s1": s1, "p1": p1, "n2": n2, "s2": s2, "p2": p2,
	}
}

func TestGetLinks(t *testing.T) {
	assert := require.New(t)

	getter := &fakeGetter{responses: map[string][]mo.Record{
		"/api/node/class/fabricLink.json?query-target=self": {
			record("fabricLink", "topology/pod-1/lnk-18", linkAttrs("101", "1", "1", "201", "1", "3")),
		},
	}}

	links, err := GetLinks(context.Background(), getter)
	assert.NoError(err)
	assert.Len(links, 1)

	l := links[0]
	assert.Equal("1", l.Pod)
	assert.Equal("18", l.Link)
	assert.Equal("1/101/1/1", l.PortID1())
	assert.Equal("1/201/1/3", l.PortID2())
}

func TestLinkEndpointResolution(t *testing.T) {
	assert := require.New(t)

	leafDN := "topology/pod-1/node-101"
	spineDN := "topology/pod-1/node-201"
	leaf := &Node{Dn: leafDN, NodeID: "101", ID: "101", Role: "leaf"}
	spine := &Node{Dn: spineDN, NodeID: "201", ID: "201", Role: "spine"}

	leafLC := &Linecard{Module: Module{Dn: leafDN + "/sys/ch/lcslot-1/lc", Slot: "1"}}
	spineLC := &Linecard{Module: Module{Dn: spineDN + "/sys/ch/lcslot-1/lc", Slot: "1"}}
	leafPort := &Interface{Dn: leafDN + "/sys/intf/phys-[eth1/1]", ID: "eth1/1", ModuleID: "1", Port: "1"}

	topo := &Topology{Arena: NewArena(), Nodes: []*Node{leaf, spine}}
	assert.NoError(topo.Arena.Add(leaf))
	assert.NoError(topo.Arena.Add(spine))
	assert.NoError(topo.Arena.AddChild(leafDN, leafLC))
	assert.NoError(topo.Arena.AddChild(spineDN, spineLC))
	assert.NoError(topo.Arena.AddChild(leafLC.Dn, leafPort))

	l := &Link{Pod: "1", Link: "18", Node1: "101", Slot1: "1", Port1: "1", Node2: "201", Slot2: "1", Port2: "3"}

	assert.Equal(leaf, l.GetNode1(topo))
	assert.Equal(spine, l.GetNode2(topo))
	assert.Equal(leafLC, l.GetSlot1(topo))
	assert.Equal(spineLC, l.GetSlot2(topo))
	assert.Equal(leafPort, l.GetPort1(topo))
	// the spine's port was never read in
	assert.Nil(l.GetPort2(topo))

	// unknown node id resolves to nothing at any level
	missing := &Link{Node1: "999", Slot1: "1", Port1: "1"}
	assert.Nil(missing.GetNode1(topo))
	assert.Nil(missing.GetSlot1(topo))
	assert.Nil(missing.GetPort1(topo))
}
