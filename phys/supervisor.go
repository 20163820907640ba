package phys

import (
	"context"

	"github.com/pkg/errors"

	"github.com/opsmesh/fabinv/mo"
)

// Supervisorcard is the supervisor card of a switch.
type Supervisorcard struct {
	Module
	NumPorts string
}

// Kind implements Entity.
func (sc *Supervisorcard) Kind() Kind {
	return KindSupervisor
}

func (sc *Supervisorcard) populate(r mo.Record) error {
	for _, f := range []struct {
		dst *string
		key string
	}{
		{&sc.Serial, "ser"},
		{&sc.Model, "model"},
		{&sc.Dn, "dn"},
		{&sc.Descr, "descr"},
		{&sc.Type, "type"},
		{&sc.NumPorts, "numP"},
		{&sc.HardwareVersion, "hwVer"},
		{&sc.HardwareRevision, "rev"},
		{&sc.OperSt, "operSt"},
		{&sc.ModifyTime, "modTs"},
	} {
		v, err := r.Attr(f.key)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	slot, err := parseSlot(sc.Dn)
	if err != nil {
		return err
	}
	sc.Slot = slot
	return nil
}

// GetSupervisors returns the supervisor cards known to the switch, optionally
// scoped to one parent node.
func GetSupervisors(ctx context.Context, getter mo.Getter, parent *Node) ([]*Supervisorcard, error) {
	parentDN := ""
	if parent != nil {
		parentDN = parent.Dn
	}
	records, err := getModules(ctx, getter, KindSupervisor, parentDN)
	if err != nil {
		return nil, err
	}

	supervisors := make([]*Supervisorcard, 0, len(records))
	for _, r := range records {
		if r.Class != "eqptSupC" {
			continue
		}
		sc := &Supervisorcard{}
		if err := sc.populate(r); err != nil {
			return nil, errors.Wrap(err, "populate supervisor")
		}
		if sc.Firmware, sc.Bios, err = getFirmware(ctx, getter, sc.Dn); err != nil {
			return nil, errors.Wrapf(err, "supervisor %q firmware", sc.Dn)
		}
		supervisors = append(supervisors, sc)
	}
	return supervisors, nil
}
