package phys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opsmesh/fabinv/mo"
)

func physIfAttrs(id string) map[string]string {
	return map[string]string{
		"id": id, "name": "", "descr": "", "portT": "leaf", "adminSt": "up",
		"speed": "10G", "mtu": "1500", "layer": "Layer2", "usage": "discovery",
		"monPolDn": "uni/fabric/monfab-default",
	}
}

func TestGetInterfaces(t *testing.T) {
	assert := require.New(t)

	if1 := "sys/intf/phys-[eth1/1]"
	if2 := "sys/intf/phys-[eth1/2]"
	getter := &fakeGetter{responses: map[string][]mo.Record{
		"/api/node/class/cdpIfPol.json?query-target=self": {
			record("cdpIfPol", "sys/cdp/if-default", map[string]string{
				"name": "default", "adminSt": "enabled",
			}),
		},
		"/api/node/class/lldpIfPol.json?query-target=self": {
			record("lldpIfPol", "sys/lldp/if-default", map[string]string{
				"name": "default", "adminTxSt": "disabled",
			}),
		},
		"/api/node/class/l1PhysIf.json?query-target=self": {
			record("l1PhysIf", if1, physIfAttrs("eth1/1")),
			record("l1PhysIf", if2, physIfAttrs("eth1/2")),
		},
		"/api/node/class/ethpmPhysIf.json?query-target=self": {
			// only eth1/1 carries operational state
			record("ethpmPhysIf", if1+"/phys", map[string]string{"operSt": "up"}),
		},
		"/api/node/class/l1PhysIf.json?query-target=subtree&target-subtree-class=l1RsCdpIfPolCons": {
			record("l1RsCdpIfPolCons", if1+"/rscdpIfPolCons", map[string]string{
				"tDn": "sys/cdp/cdpIfP-default",
			}),
		},
		"/api/node/class/l1PhysIf.json?query-target=subtree&target-subtree-class=l1RsLldpIfPolCons": {
			record("l1RsLldpIfPolCons", if1+"/rslldpIfPolCons", map[string]string{
				"tDn": "sys/lldp/lldpIfP-default",
			}),
		},
	}}

	interfaces, err := GetInterfaces(context.Background(), getter, "")
	assert.NoError(err)
	assert.Len(interfaces, 2)

	byID := map[string]*Interface{}
	for _, intf := range interfaces {
		byID[intf.ID] = intf
	}

	first := byID["eth1/1"]
	assert.Equal("eth", first.InterfaceType)
	assert.Equal("1", first.ModuleID)
	assert.Equal("1", first.Port)
	assert.Equal("up", first.OperSt)
	assert.True(first.CDPEnabled())
	assert.False(first.LLDPEnabled())
	assert.Equal("disabled", first.LLDP)

	// no ethpm record and no bound policies
	second := byID["eth1/2"]
	assert.Equal("-", second.OperSt)
	assert.Empty(second.CDP)
	assert.Empty(second.LLDP)
}

func TestGetInterfacesSinglePort(t *testing.T) {
	assert := require.New(t)

	dn := "sys/intf/phys-[eth1/33]"
	getter := &fakeGetter{responses: map[string][]mo.Record{
		"/api/node/class/cdpIfPol.json?query-target=self":  nil,
		"/api/node/class/lldpIfPol.json?query-target=self": nil,
		"/api/mo/" + dn + ".json?query-target=self": {
			record("l1PhysIf", dn, physIfAttrs("eth1/33")),
		},
		"/api/mo/" + dn + "/phys.json?query-target=self": {
			record("ethpmPhysIf", dn+"/phys", map[string]string{"operSt": "down"}),
		},
		"/api/node/class/l1PhysIf.json?query-target=subtree&target-subtree-class=l1RsCdpIfPolCons":  nil,
		"/api/node/class/l1PhysIf.json?query-target=subtree&target-subtree-class=l1RsLldpIfPolCons": nil,
	}}

	interfaces, err := GetInterfaces(context.Background(), getter, "eth1/33")
	assert.NoError(err)
	assert.Len(interfaces, 1)
	assert.Equal("eth1/33", interfaces[0].ID)
	assert.Equal("down", interfaces[0].OperSt)
}
