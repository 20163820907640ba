package phys

import (
	"context"

	"github.com/pkg/errors"

	"github.com/opsmesh/fabinv/mo"
)

// Link is an inter-switch fabric link. Endpoints are carried as raw node,
// slot and port ids; the resolver methods turn them into arena entities once
// the topology has been read in.
type Link struct {
	Node1      string
	Slot1      string
	Port1      string
	Node2      string
	Slot2      string
	Port2      string
	LinkState  string
	LinkStatus string
	Pod        string
	Link       string
	Dn         string
	ModifyTime string
}

// DN implements Entity.
func (l *Link) DN() string {
	return l.Dn
}

// Kind implements Entity.
func (l *Link) Kind() Kind {
	return KindLink
}

func (l *Link) populate(r mo.Record) error {
	for _, f := range []struct {
		dst *string
		key string
	}{
		{&l.LinkState, "linkState"},
		{&l.LinkStatus, "status"},
		{&l.Dn, "dn"},
		{&l.ModifyTime, "modTs"},
		{&l.Node1, "n1"},
		{&l.Slot1, "s1"},
		{&l.Port1, "p1"},
		{&l.Node2, "n2"},
		{&l.Slot2, "s2"},
		{&l.Port2, "p2"},
	} {
		v, err := r.Attr(f.key)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	pod, link, err := mo.ParseLinkDN(l.Dn)
	if err != nil {
		return err
	}
	l.Pod = pod
	l.Link = link
	return nil
}

// GetLinks returns the fabric links known to the switch.
func GetLinks(ctx context.Context, getter mo.Getter) ([]*Link, error) {
	records, err := getModules(ctx, getter, KindLink, "")
	if err != nil {
		return nil, err
	}

	links := make([]*Link, 0, len(records))
	for _, r := range records {
		if r.Class != "fabricLink" {
			continue
		}
		l := &Link{}
		if err := l.populate(r); err != nil {
			return nil, errors.Wrap(err, "populate link")
		}
		links = append(links, l)
	}
	return links, nil
}

// PortID1 returns the first endpoint in pod/node/slot/port form.
func (l *Link) PortID1() string {
	return l.Pod + "/" + l.Node1 + "/" + l.Slot1 + "/" + l.Port1
}

// PortID2 returns the second endpoint in pod/node/slot/port form.
func (l *Link) PortID2() string {
	return l.Pod + "/" + l.Node2 + "/" + l.Slot2 + "/" + l.Port2
}

// GetNode1 resolves the node at the first end of the link. The topology must
// already hold the node, nil is returned otherwise.
func (l *Link) GetNode1(t *Topology) *Node {
	return t.nodeByID(l.Node1)
}

// GetNode2 resolves the node at the second end of the link.
func (l *Link) GetNode2(t *Topology) *Node {
	return t.nodeByID(l.Node2)
}

// GetSlot1 resolves the linecard at the first end of the link.
func (l *Link) GetSlot1(t *Topology) *Linecard {
	return l.slot(t, l.GetNode1(t), l.Slot1)
}

// GetSlot2 resolves the linecard at the second end of the link.
func (l *Link) GetSlot2(t *Topology) *Linecard {
	return l.slot(t, l.GetNode2(t), l.Slot2)
}

func (l *Link) slot(t *Topology, node *Node, slot string) *Linecard {
	if node == nil {
		return nil
	}
	for _, e := range t.Arena.Children(node.Dn, KindLinecard) {
		if lc, ok := e.(*Linecard); ok && lc.Slot == slot {
			return lc
		}
	}
	return nil
}

// GetPort1 resolves the interface at the first end of the link.
func (l *Link) GetPort1(t *Topology) *Interface {
	return l.port(t, l.GetSlot1(t), l.Port1)
}

// GetPort2 resolves the interface at the second end of the link.
func (l *Link) GetPort2(t *Topology) *Interface {
	return l.port(t, l.GetSlot2(t), l.Port2)
}

func (l *Link) port(t *Topology, lc *Linecard, port string) *Interface {
	if lc == nil {
		return nil
	}
	for _, e := range t.Arena.Children(lc.Dn, KindInterface) {
		if intf, ok := e.(*Interface); ok && intf.Port == port {
			return intf
		}
	}
	return nil
}
