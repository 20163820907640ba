package phys

import (
	"context"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/packethost/pkg/env"
	"github.com/pkg/errors"

	"github.com/opsmesh/fabinv/mo"
)

// Fantray is a fan tray in a switch chassis slot.
type Fantray struct {
	Module
	Name   string
	Status string
	Fans   []*Fan
}

// Kind implements Entity.
func (ft *Fantray) Kind() Kind {
	return KindFantray
}

func (ft *Fantray) populate(r mo.Record) error {
	for _, f := range []struct {
		dst *string
		key string
	}{
		{&ft.Serial, "ser"},
		{&ft.Model, "model"},
		{&ft.Dn, "dn"},
		{&ft.Descr, "descr"},
		{&ft.OperSt, "operSt"},
		{&ft.Status, "status"},
		{&ft.ModifyTime, "modTs"},
	} {
		v, err := r.Attr(f.key)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	slot, err := parseSlot(ft.Dn)
	if err != nil {
		return err
	}
	ft.Slot = slot

	// the tray name attribute is optional on some platforms
	if name, ok := r.Attributes["fanName"]; ok && name != "" {
		ft.Name = name
	} else {
		ft.Name = "FT-" + ft.Slot
	}
	return nil
}

// GetFantrays returns the fan trays known to the switch, optionally scoped to
// one parent node. Each tray's fans are fetched along with it.
func GetFantrays(ctx context.Context, getter mo.Getter, parent *Node) ([]*Fantray, error) {
	parentDN := ""
	if parent != nil {
		parentDN = parent.Dn
	}
	records, err := getModules(ctx, getter, KindFantray, parentDN)
	if err != nil {
		return nil, err
	}

	fantrays := make([]*Fantray, 0, len(records))
	for _, r := range records {
		if r.Class != "eqptFt" {
			continue
		}
		ft := &Fantray{}
		if err := ft.populate(r); err != nil {
			return nil, errors.Wrap(err, "populate fantray")
		}
		if ft.Fans, err = GetFans(ctx, getter, ft); err != nil {
			return nil, errors.Wrapf(err, "fantray %q fans", ft.Dn)
		}
		fantrays = append(fantrays, ft)
	}
	return fantrays, nil
}

// Fan is one fan inside a fan tray.
type Fan struct {
	ID        string
	Descr     string
	OperSt    string
	Direction string
	Model     string
	Serial    string
	Speed     string
	Dn        string
}

// DN implements Entity.
func (f *Fan) DN() string {
	return f.Dn
}

// Kind implements Entity.
func (f *Fan) Kind() Kind {
	return KindFan
}

func (f *Fan) populate(r mo.Record) error {
	for _, fld := range []struct {
		dst *string
		key string
	}{
		{&f.Dn, "dn"},
		{&f.ID, "id"},
		{&f.Descr, "descr"},
		{&f.OperSt, "operSt"},
		{&f.Direction, "dir"},
		{&f.Model, "model"},
		{&f.Serial, "ser"},
	} {
		v, err := r.Attr(fld.key)
		if err != nil {
			return err
		}
		*fld.dst = v
	}
	return nil
}

// GetFans returns the fans of the switch, optionally scoped to one fan tray.
// Fan speed is only available through a per-fan stats query, so this is a
// fan-out of one request per fan, bounded by FABINV_CONCURRENT_FETCHES.
func GetFans(ctx context.Context, getter mo.Getter, parent *Fantray) ([]*Fan, error) {
	var (
		records []mo.Record
		err     error
	)
	if parent != nil {
		records, err = getModules(ctx, getter, KindFan, parent.Dn)
	} else {
		records, err = getModules(ctx, getter, KindFan, "")
	}
	if err != nil {
		return nil, err
	}

	fans := make([]*Fan, 0, len(records))
	for _, r := range records {
		if r.Class != "eqptFan" {
			continue
		}
		fan := &Fan{}
		if err := fan.populate(r); err != nil {
			return nil, errors.Wrap(err, "populate fan")
		}
		fans = append(fans, fan)
	}

	pool := workerpool.New(env.Int("FABINV_CONCURRENT_FETCHES", 4))
	var mu sync.Mutex
	var firstErr error
	for _, fan := range fans {
		fan := fan
		pool.Submit(func() {
			speed, err := getFanSpeed(ctx, getter, fan.Dn)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			fan.Speed = speed
		})
	}
	pool.StopWait()
	if firstErr != nil {
		return nil, errors.Wrap(firstErr, "fan speed")
	}

	return fans, nil
}

// getFanSpeed reads the monitored speed of one fan, "unknown" when the fan is
// not being monitored.
func getFanSpeed(ctx context.Context, getter mo.Getter, dn string) (string, error) {
	records, err := getter.Get(ctx, "/api/mo/"+dn+".json?rsp-subtree-include=stats&rsp-subtree-class=eqptFanStats5min")
	if err != nil {
		return "", err
	}
	for _, r := range records {
		if r.Class != "eqptFan" {
			continue
		}
		for _, child := range r.Children {
			if child.Class == "eqptFanStats5min" {
				return child.Attributes["speedLast"], nil
			}
		}
	}
	return "unknown", nil
}
