package phys

import (
	"context"

	"github.com/pkg/errors"

	"github.com/opsmesh/fabinv/mo"
)

// GetSystemName reads the switch's own system name from the system root
// managed object.
func GetSystemName(ctx context.Context, getter mo.Getter) (string, error) {
	records, err := getter.Get(ctx, "/api/mo/sys.json")
	if err != nil {
		return "", errors.Wrap(err, "get system")
	}
	for _, r := range records {
		if r.Class == "topSystem" {
			return r.Attributes["name"], nil
		}
	}
	return "", errors.New("no system record")
}

// Topology is the fully populated physical inventory: every node with its
// modules, registered in one arena with parent/child edges.
type Topology struct {
	Arena *Arena
	Nodes []*Node
	Links []*Link
}

// GetTopology reads the whole physical hierarchy: nodes first, then each
// node's working data and modules, then the fabric links. Modules register in
// the arena under their node.
func GetTopology(ctx context.Context, getter mo.Getter, options ...mo.Option) (*Topology, error) {
	t := &Topology{Arena: NewArena()}

	nodes, err := GetNodes(ctx, getter)
	if err != nil {
		return nil, errors.Wrap(err, "get nodes")
	}
	t.Nodes = nodes

	for _, node := range nodes {
		if err := t.Arena.Add(node); err != nil {
			return nil, err
		}
		w, err := node.WorkingData(ctx, getter, options...)
		if err != nil {
			return nil, err
		}
		node.Enrich(w)

		if err := t.addModules(ctx, getter, node); err != nil {
			return nil, errors.Wrapf(err, "node %q modules", node.Dn)
		}
	}

	links, err := GetLinks(ctx, getter)
	if err != nil {
		return nil, errors.Wrap(err, "get links")
	}
	t.Links = links
	for _, link := range links {
		if err := t.Arena.Add(link); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (t *Topology) addModules(ctx context.Context, getter mo.Getter, node *Node) error {
	linecards, err := GetLinecards(ctx, getter, node)
	if err != nil {
		return err
	}
	for _, lc := range linecards {
		if err := t.Arena.AddChild(node.Dn, lc); err != nil {
			return err
		}
	}

	supervisors, err := GetSupervisors(ctx, getter, node)
	if err != nil {
		return err
	}
	for _, sc := range supervisors {
		if err := t.Arena.AddChild(node.Dn, sc); err != nil {
			return err
		}
	}

	fantrays, err := GetFantrays(ctx, getter, node)
	if err != nil {
		return err
	}
	for _, ft := range fantrays {
		if err := t.Arena.AddChild(node.Dn, ft); err != nil {
			return err
		}
		for _, fan := range ft.Fans {
			if err := t.Arena.AddChild(ft.Dn, fan); err != nil {
				return err
			}
		}
	}

	supplies, err := GetPowersupplies(ctx, getter, node)
	if err != nil {
		return err
	}
	for _, ps := range supplies {
		if err := t.Arena.AddChild(node.Dn, ps); err != nil {
			return err
		}
	}

	return nil
}

// AttachInterfaces fetches the physical interfaces and registers each one
// under the node's linecard with the matching slot. Interface dns are
// switch-local, so the owning node must be named explicitly.
func (t *Topology) AttachInterfaces(ctx context.Context, getter mo.Getter, node *Node) error {
	interfaces, err := GetInterfaces(ctx, getter, "")
	if err != nil {
		return errors.Wrap(err, "get interfaces")
	}

	linecards := t.Arena.Children(node.Dn, KindLinecard)
	for _, intf := range interfaces {
		for _, e := range linecards {
			lc, ok := e.(*Linecard)
			if !ok || lc.Slot != intf.ModuleID {
				continue
			}
			if err := t.Arena.AddChild(lc.Dn, intf); err != nil {
				return err
			}
			break
		}
	}
	return nil
}

func (t *Topology) nodeByID(id string) *Node {
	for _, node := range t.Nodes {
		if node.NodeID == id || node.ID == id {
			return node
		}
	}
	return nil
}
