package phys

import (
	"context"

	"github.com/pkg/errors"

	"github.com/opsmesh/fabinv/mo"
)

// Linecard is a line card in a switch chassis slot.
type Linecard struct {
	Module
	NumPorts string
}

// Kind implements Entity.
func (lc *Linecard) Kind() Kind {
	return KindLinecard
}

func (lc *Linecard) populate(r mo.Record) error {
	for _, f := range []struct {
		dst *string
		key string
	}{
		{&lc.Serial, "ser"},
		{&lc.Model, "model"},
		{&lc.Descr, "descr"},
		{&lc.NumPorts, "numP"},
		{&lc.HardwareVersion, "hwVer"},
		{&lc.HardwareRevision, "rev"},
		{&lc.Type, "type"},
		{&lc.OperSt, "operSt"},
		{&lc.Dn, "dn"},
		{&lc.ModifyTime, "modTs"},
	} {
		v, err := r.Attr(f.key)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	slot, err := parseSlot(lc.Dn)
	if err != nil {
		return err
	}
	lc.Slot = slot
	return nil
}

// GetLinecards returns the linecards known to the switch. With a parent node
// only that node's linecards are returned. Firmware is read per module.
func GetLinecards(ctx context.Context, getter mo.Getter, parent *Node) ([]*Linecard, error) {
	parentDN := ""
	if parent != nil {
		parentDN = parent.Dn
	}
	records, err := getModules(ctx, getter, KindLinecard, parentDN)
	if err != nil {
		return nil, err
	}

	linecards := make([]*Linecard, 0, len(records))
	for _, r := range records {
		if r.Class != "eqptLC" {
			continue
		}
		lc := &Linecard{}
		if err := lc.populate(r); err != nil {
			return nil, errors.Wrap(err, "populate linecard")
		}
		if lc.Firmware, lc.Bios, err = getFirmware(ctx, getter, lc.Dn); err != nil {
			return nil, errors.Wrapf(err, "linecard %q firmware", lc.Dn)
		}
		linecards = append(linecards, lc)
	}
	return linecards, nil
}
