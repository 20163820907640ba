package phys

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opsmesh/fabinv/mo"
)

// fakeGetter serves canned records per path and remembers what was asked.
// Fan speed fetches run concurrently, so the request log is locked.
type fakeGetter struct {
	mu        sync.Mutex
	responses map[string][]mo.Record
	requested []string
}

func (f *fakeGetter) Get(_ context.Context, path string) ([]mo.Record, error) {
	f.mu.Lock()
	f.requested = append(f.requested, path)
	f.mu.Unlock()
	return f.responses[path], nil
}

func record(class, dn string, attrs map[string]string) mo.Record {
	if attrs == nil {
		attrs = map[string]string{}
	}
	attrs["dn"] = dn
	return mo.Record{Class: class, Attributes: attrs}
}

func TestParseSlot(t *testing.T) {
	assert := require.New(t)

	for _, tc := range []struct {
		dn   string
		slot string
		ok   bool
	}{
		{"topology/pod-1/node-101/sys/ch/lcslot-2/lc", "2", true},
		{"topology/pod-1/node-101/sys/ch/supslot-1/sup", "1", true},
		{"topology/pod-1/node-101/sys/ch/psuslot-3/psu", "3", true},
		{"topology/pod-1/node-101/sys/ch", "", false},
	} {
		slot, err := parseSlot(tc.dn)
		if !tc.ok {
			assert.Error(err)
			continue
		}
		assert.NoError(err)
		assert.Equal(tc.slot, slot)
	}
}

func TestParseInterfaceDN(t *testing.T) {
	assert := require.New(t)

	for _, tc := range []struct {
		dn     string
		ifType string
		module string
		port   string
		ok     bool
	}{
		{"sys/intf/phys-[eth1/33]", "eth", "1", "33", true},
		{"sys/phys-[eth2/5]", "eth", "2", "5", true},
		{"sys/intf", "", "", "", false},
	} {
		ifType, module, port, err := parseInterfaceDN(tc.dn)
		if !tc.ok {
			assert.Error(err)
			continue
		}
		assert.NoError(err)
		assert.Equal(tc.ifType, ifType)
		assert.Equal(tc.module, module)
		assert.Equal(tc.port, port)
	}
}

func TestArena(t *testing.T) {
	nodeDN := "topology/pod-1/node-101"
	node := &Node{Dn: nodeDN}
	lc := &Linecard{Module: Module{Dn: nodeDN + "/sys/ch/lcslot-1/lc", Slot: "1"}}

	t.Run("add and get", func(t *testing.T) {
		assert := require.New(t)
		a := NewArena()
		assert.NoError(a.Add(node))
		e, ok := a.Get(nodeDN)
		assert.True(ok)
		assert.Equal(KindNode, e.Kind())
	})

	t.Run("empty dn rejected", func(t *testing.T) {
		assert := require.New(t)
		a := NewArena()
		assert.Error(a.Add(&Node{}))
	})

	t.Run("child edge", func(t *testing.T) {
		assert := require.New(t)
		a := NewArena()
		assert.NoError(a.Add(node))
		assert.NoError(a.AddChild(nodeDN, lc))

		parent, ok := a.Parent(lc.Dn)
		assert.True(ok)
		assert.Equal(nodeDN, parent.DN())

		children := a.Children(nodeDN, KindLinecard)
		assert.Len(children, 1)
		assert.Equal(lc.Dn, children[0].DN())
		assert.Empty(a.Children(nodeDN, KindFantray))
	})

	t.Run("unknown parent rejected", func(t *testing.T) {
		assert := require.New(t)
		a := NewArena()
		assert.Error(a.AddChild("topology/pod-1/node-999", lc))
	})

	t.Run("wrong parent kind rejected", func(t *testing.T) {
		assert := require.New(t)
		a := NewArena()
		ft := &Fantray{Module: Module{Dn: nodeDN + "/sys/ch/ftslot-1/ft", Slot: "1"}}
		assert.NoError(a.Add(node))
		assert.NoError(a.AddChild(nodeDN, ft))

		// a fan belongs to a fan tray, not directly to a node
		fan := &Fan{Dn: ft.Dn + "/fan-1", ID: "1"}
		assert.Error(a.AddChild(nodeDN, fan))
		assert.NoError(a.AddChild(ft.Dn, fan))
	})
}

func TestGetModulesURLs(t *testing.T) {
	assert := require.New(t)
	getter := &fakeGetter{responses: map[string][]mo.Record{}}

	_, err := getModules(context.Background(), getter, KindLinecard, "topology/pod-1/node-101")
	assert.NoError(err)
	_, err = getModules(context.Background(), getter, KindLinecard, "")
	assert.NoError(err)

	assert.Equal([]string{
		"/api/mo/topology/pod-1/node-101.json?query-target=subtree&target-subtree-class=eqptLC",
		"/api/node/class/eqptLC.json?query-target=self",
	}, getter.requested)
}

func TestLinecardPopulate(t *testing.T) {
	assert := require.New(t)

	lc := &Linecard{}
	err := lc.populate(record("eqptLC", "topology/pod-1/node-101/sys/ch/lcslot-2/lc", map[string]string{
		"ser": "SAL1234", "model": "N9K-X9564PX", "descr": "48x10G", "numP": "52",
		"hwVer": "V01", "rev": "1.0", "type": "linecard", "operSt": "online",
		"modTs": "2026-01-02T03:04:05",
	}))
	assert.NoError(err)
	assert.Equal("2", lc.Slot)
	assert.Equal("SAL1234", lc.Serial)
	assert.Equal("52", lc.NumPorts)
	assert.Equal("online", lc.OperSt)

	// a missing attribute is an error naming the key
	err = (&Linecard{}).populate(record("eqptLC", "topology/pod-1/node-101/sys/ch/lcslot-2/lc", map[string]string{
		"ser": "SAL1234",
	}))
	assert.Error(err)
	assert.Contains(err.Error(), "model")
}

func TestGetLinecards(t *testing.T) {
	assert := require.New(t)

	nodeDN := "topology/pod-1/node-101"
	lcDN := nodeDN + "/sys/ch/lcslot-1/lc"
	getter := &fakeGetter{responses: map[string][]mo.Record{
		"/api/mo/" + nodeDN + ".json?query-target=subtree&target-subtree-class=eqptLC": {
			record("eqptLC", lcDN, map[string]string{
				"ser": "SAL1", "model": "N9K-X9564PX", "descr": "", "numP": "52",
				"hwVer": "V01", "rev": "1.0", "type": "linecard", "operSt": "online",
				"modTs": "2026-01-02T03:04:05",
			}),
		},
		"/api/mo/" + lcDN + "/running.json?query-target=self": {
			record("firmwareCardRunning", lcDN+"/running", map[string]string{
				"version": "7.0(3)I7(1)", "biosVer": "07.61",
			}),
		},
	}}

	linecards, err := GetLinecards(context.Background(), getter, &Node{Dn: nodeDN})
	assert.NoError(err)
	assert.Len(linecards, 1)
	assert.Equal("7.0(3)I7(1)", linecards[0].Firmware)
	assert.Equal("07.61", linecards[0].Bios)
}

func TestGetFansSpeed(t *testing.T) {
	assert := require.New(t)

	trayDN := "topology/pod-1/node-101/sys/ch/ftslot-1/ft"
	fan1 := trayDN + "/fan-1"
	fan2 := trayDN + "/fan-2"
	fanAttrs := func(id string) map[string]string {
		return map[string]string{
			"id": id, "descr": "", "operSt": "operational", "dir": "front2back",
			"model": "NXA-FAN-30CFM-F", "ser": "FAN" + id,
		}
	}
	statsURL := func(dn string) string {
		return "/api/mo/" + dn + ".json?rsp-subtree-include=stats&rsp-subtree-class=eqptFanStats5min"
	}

	getter := &fakeGetter{responses: map[string][]mo.Record{
		"/api/mo/" + trayDN + ".json?query-target=subtree&target-subtree-class=eqptFan": {
			record("eqptFan", fan1, fanAttrs("1")),
			record("eqptFan", fan2, fanAttrs("2")),
		},
		statsURL(fan1): {
			{Class: "eqptFan", Attributes: map[string]string{"dn": fan1}, Children: []mo.Record{
				{Class: "eqptFanStats5min", Attributes: map[string]string{"speedLast": "9000"}},
			}},
		},
		// fan 2 has no stats child, its speed is unknown
		statsURL(fan2): {record("eqptFan", fan2, nil)},
	}}

	fans, err := GetFans(context.Background(), getter, &Fantray{Module: Module{Dn: trayDN, Slot: "1"}})
	assert.NoError(err)
	assert.Len(fans, 2)

	byID := map[string]*Fan{}
	for _, fan := range fans {
		byID[fan.ID] = fan
	}
	assert.Equal("9000", byID["1"].Speed)
	assert.Equal("unknown", byID["2"].Speed)
}
