package phys

import (
	"context"

	"github.com/pkg/errors"

	"github.com/opsmesh/fabinv/mo"
)

// Powersupply is a power supply in a switch chassis slot.
type Powersupply struct {
	Module
	Status        string
	VoltageSource string
	FanStatus     string
}

// Kind implements Entity.
func (ps *Powersupply) Kind() Kind {
	return KindPowersupply
}

func (ps *Powersupply) populate(r mo.Record) error {
	for _, f := range []struct {
		dst *string
		key string
	}{
		{&ps.Serial, "ser"},
		{&ps.Model, "model"},
		{&ps.Dn, "dn"},
		{&ps.Descr, "descr"},
		{&ps.OperSt, "operSt"},
		{&ps.FanStatus, "fanOpSt"},
		{&ps.VoltageSource, "vSrc"},
		{&ps.HardwareVersion, "hwVer"},
		{&ps.HardwareRevision, "rev"},
		{&ps.Status, "status"},
		{&ps.ModifyTime, "modTs"},
	} {
		v, err := r.Attr(f.key)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	slot, err := parseSlot(ps.Dn)
	if err != nil {
		return err
	}
	ps.Slot = slot
	return nil
}

// GetPowersupplies returns the power supplies known to the switch, optionally
// scoped to one parent node. Power supplies have no readable firmware.
func GetPowersupplies(ctx context.Context, getter mo.Getter, parent *Node) ([]*Powersupply, error) {
	parentDN := ""
	if parent != nil {
		parentDN = parent.Dn
	}
	records, err := getModules(ctx, getter, KindPowersupply, parentDN)
	if err != nil {
		return nil, err
	}

	supplies := make([]*Powersupply, 0, len(records))
	for _, r := range records {
		if r.Class != "eqptPsu" {
			continue
		}
		ps := &Powersupply{}
		if err := ps.populate(r); err != nil {
			return nil, errors.Wrap(err, "populate powersupply")
		}
		supplies = append(supplies, ps)
	}
	return supplies, nil
}
